// Command turing runs one Turing machine program to completion and prints
// its trace and summary. It is a thin wrapper: all simulation logic lives
// in the turing and parser packages, and main just wires flags to them.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/turinglab/go-turing"
	"github.com/turinglab/go-turing/parser"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("turing", flag.ContinueOnError)
	fs.SetOutput(stderr)

	limit := fs.Int("limit", 10000, "number of steps to limit the run to")
	check := fs.Int("check", -1, "enable the recurrence/quasihalt check at this step threshold")
	blank := fs.Int("blank", -1, "enable blanking detection starting at this step")
	verbose := fs.Bool("v", false, "emit a per-step trace")
	fs.BoolVar(verbose, "verbose", false, "emit a per-step trace")
	parallel := fs.Bool("p", false, "run the recurrence check in parallel")
	fs.BoolVar(parallel, "parallel", false, "run the recurrence check in parallel")
	file := fs.String("f", "", "read the program from a tab-delimited .tm file instead of a positional program string")
	fs.StringVar(file, "file", "", "read the program from a tab-delimited .tm file instead of a positional program string")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	positional := fs.Args()

	var label string
	var program *turing.Program
	var outPath string

	if *file != "" {
		f, err := parser.ReadFile(*file)
		if err != nil {
			fmt.Fprintf(stderr, "turing: read program file: %v\n", err)
			return 1
		}
		label = *file
		program = f
		if len(positional) >= 1 {
			outPath = positional[0]
		}
	} else {
		if len(positional) < 1 {
			fmt.Fprintln(stderr, "usage: turing [flags] <program> [output]")
			fmt.Fprintln(stderr, "       turing [flags] -f <file.tm> [output]")
			return 1
		}
		label = positional[0]
		p, err := parser.Parse(label)
		if err != nil {
			fmt.Fprintf(stderr, "turing: parse program: %v\n", err)
			return 1
		}
		program = p
		if len(positional) >= 2 {
			outPath = positional[1]
		}
	}

	out := stdout
	if outPath != "" && outPath != "-" {
		f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "turing: open output: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	w := bufio.NewWriterSize(out, 1024)
	defer func() { _ = w.Flush() }()

	opts := []turing.Option{turing.WithLimit(*limit)}
	if *verbose {
		opts = append(opts, turing.WithTrace(w))
	}
	if *check >= 0 {
		opts = append(opts, turing.WithRecurrenceCheck(*check))
	}
	if *blank >= 0 {
		opts = append(opts, turing.WithBlankCheck(*blank))
	}
	if *parallel {
		opts = append(opts, turing.WithParallel(true))
	}

	m := turing.NewMachine(program, opts...)
	halt := m.Run(context.Background())

	fmt.Fprintf(w, "%s: marks %d steps %d reason %s\n", label, m.Marks(), halt.Steps, halt.String())

	return 0
}
