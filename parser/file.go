package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/turinglab/go-turing"
)

// ReadFile reads a Turing program from a .tm file structured as follows:
//  1. Program comment section (ignored until the header row is found);
//  2. Header row: tab-delimited, first column blank, remaining columns the
//     state letters in order (A, B, C, ...);
//  3. One instruction row per symbol: tab-delimited, first column is the
//     symbol digit, remaining columns are three-character instruction
//     tokens (or "..." for undefined), one per state column.
//
// Example:
//
//	comment line, ignored
//		A	B
//	0	1RB	1LA
//	1	1LB	1RH
func ReadFile(path string) (*turing.Program, error) {
	clean := filepath.Clean(path)

	f, err := os.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", clean, err)
	}
	defer func() {
		_ = f.Close()
	}()

	return Read(f)
}

var (
	// ErrNoHeaderRow is returned when the file never presents a row of
	// state-letter columns to key off of.
	ErrNoHeaderRow = errors.New("no state header row found")

	// ErrNoInstructionRows is returned when a header row is found but no
	// instruction rows follow it.
	ErrNoInstructionRows = errors.New("no instruction rows")
)

var headerFieldPattern = regexp.MustCompile(`^[A-Z]$`)

// Read parses the .tm format from r. See ReadFile for the format.
func Read(r io.Reader) (*turing.Program, error) {
	scanner := bufio.NewScanner(r)

	var (
		states  []string
		inScope bool
		grid    [][]token
	)

	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Split(line, "\t")

		if !inScope {
			if isHeaderRow(fields) {
				states = fields[1:]
				inScope = true
			}
			continue
		}

		if len(fields) == 0 || strings.TrimSpace(fields[0]) == "" {
			continue
		}

		row := make([]token, 0, len(states))
		for i := 1; i < len(fields) && i-1 < len(states); i++ {
			field := strings.TrimSpace(fields[i])
			if field == "" {
				continue
			}
			tok, err := parseToken(field)
			if err != nil {
				return nil, err
			}
			row = append(row, tok)
		}
		grid = append(grid, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read program file: %w", err)
	}

	if !inScope {
		return nil, ErrNoHeaderRow
	}
	if len(grid) == 0 {
		return nil, ErrNoInstructionRows
	}

	return buildFromSymbolMajorGrid(states, grid)
}

func isHeaderRow(fields []string) bool {
	if len(fields) < 3 || fields[0] != "" {
		return false
	}
	for _, f := range fields[1:] {
		if !headerFieldPattern.MatchString(strings.TrimSpace(f)) {
			return false
		}
	}
	return true
}

// buildFromSymbolMajorGrid transposes the file's symbol-major grid (one row
// per symbol, one column per state) into the state-major entries map that
// turing.NewProgram expects (the program-string grammar in parser.go is
// already state-major).
func buildFromSymbolMajorGrid(states []string, grid [][]token) (*turing.Program, error) {
	numStates := len(states)
	numSymbols := len(grid)

	entries := make(map[turing.Action]*turing.Transition, numStates*numSymbols)
	for symIdx, row := range grid {
		if len(row) != numStates {
			return nil, fmt.Errorf("%w: symbol row %d has %d columns, expected %d", ErrRowWidthMismatch, symIdx, len(row), numStates)
		}
		for stateIdx, tok := range row {
			action := turing.Action{State: turing.State(stateIdx), Symbol: turing.Symbol(symIdx)}
			if tok.write == '.' {
				entries[action] = nil
				continue
			}

			next, err := stateFromLetter(tok.state, numStates)
			if err != nil {
				return nil, err
			}
			dir, err := directionFromLetter(tok.dir)
			if err != nil {
				return nil, err
			}
			sym := tok.write - '0'
			if int(sym) >= numSymbols {
				return nil, fmt.Errorf("%w: write symbol %q out of range for %d symbols", ErrMalformedToken, tok.write, numSymbols)
			}
			entries[action] = &turing.Transition{NextState: next, Write: turing.Symbol(sym), Dir: dir}
		}
	}

	return turing.NewProgram(numStates, numSymbols, entries)
}
