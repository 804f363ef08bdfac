package main

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureRun(t *testing.T, args []string) (stdout, stderr string, code int) {
	t.Helper()

	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	errR, errW, err := os.Pipe()
	require.NoError(t, err)

	code = run(args, outW, errW)
	require.NoError(t, outW.Close())
	require.NoError(t, errW.Close())

	outBytes, err := io.ReadAll(outR)
	require.NoError(t, err)
	errBytes, err := io.ReadAll(errR)
	require.NoError(t, err)

	return string(outBytes), string(errBytes), code
}

func TestRun_NoArgsPrintsUsage(t *testing.T) {
	t.Parallel()

	_, stderr, code := captureRun(t, []string{})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "usage: turing")
}

func TestRun_MalformedProgramReportsParseError(t *testing.T) {
	t.Parallel()

	_, stderr, code := captureRun(t, []string{"not a program"})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "parse program")
}

func TestRun_HaltingProgramPrintsSummary(t *testing.T) {
	t.Parallel()

	stdout, _, code := captureRun(t, []string{"1RB 1LB  1LA 1RH"})
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "marks 4 steps 6")
	assert.Contains(t, stdout, "reason Halt")
}

func TestRun_VerboseEmitsTrace(t *testing.T) {
	t.Parallel()

	stdout, _, code := captureRun(t, []string{"-v", "--limit", "10", "1RB 1LB  1LA 1RH"})
	assert.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Greater(t, len(lines), 1, "expected a per-step trace plus the summary line")
}

func TestRun_FileFlagReadsTabDelimitedProgram(t *testing.T) {
	t.Parallel()

	tmFile := "BB(2,2) champion, tab-delimited\n" +
		"\tA\tB\n" +
		"0\t1RB\t1LA\n" +
		"1\t1LB\t1RH\n"

	path := t.TempDir() + "/champion.tm"
	require.NoError(t, os.WriteFile(path, []byte(tmFile), 0o644))

	stdout, _, code := captureRun(t, []string{"-f", path})
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "marks 4 steps 6")
	assert.Contains(t, stdout, "reason Halt")
}

func TestRun_FileFlagMissingFileReportsError(t *testing.T) {
	t.Parallel()

	_, stderr, code := captureRun(t, []string{"--file", "/nonexistent/champion.tm"})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "read program file")
}

func TestRun_WritesToOutputFileArgument(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "turing-out-*.txt")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, _, code := captureRun(t, []string{"1RB 1LB  1LA 1RH", f.Name()})
	assert.Equal(t, 0, code)

	contents, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(contents), "marks 4 steps 6")
}
