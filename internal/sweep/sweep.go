// Package sweep runs a batch of program strings concurrently against a
// bounded worker pool - the shape a Busy-Beaver search actually needs, as
// opposed to running one program per invocation. Each program gets its own
// Machine, and its own Tape/Beeps/Snapshots; only the already-parsed,
// read-only Program underneath is ever shared across goroutines.
package sweep

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/turinglab/go-turing"
	"github.com/turinglab/go-turing/parser"
)

// Result is one program's outcome in a sweep.
type Result struct {
	Program string
	Halt    turing.Halt
	Marks   int
	Err     error
}

// Options configures a sweep run. Zero value is a reasonable default: a
// 10,000-step limit, no recurrence/blank detection, sequential detector
// checks, unbounded worker concurrency.
type Options struct {
	Limit               int
	RecurrenceCheck     bool
	RecurrenceThreshold int
	BlankCheck          bool
	BlankThreshold      int
	Parallel            bool
	Concurrency         int // 0 means unbounded
}

// Run parses and runs every program string in progs, in a worker pool
// capped at opts.Concurrency (0 = unbounded), returning one Result per
// input program in the same order. A parse error or run is captured in
// that program's Result rather than aborting the sweep.
func Run(ctx context.Context, progs []string, opts Options) []Result {
	results := make([]Result, len(progs))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i, prog := range progs {
		i, prog := i, prog
		g.Go(func() error {
			results[i] = runOne(ctx, prog, opts)
			return nil
		})
	}
	_ = g.Wait() // runOne never returns an error; failures live in Result.Err

	return results
}

func runOne(ctx context.Context, prog string, opts Options) Result {
	program, err := parser.Parse(prog)
	if err != nil {
		return Result{Program: prog, Err: err}
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 10000
	}
	machineOpts := []turing.Option{turing.WithLimit(limit)}
	if opts.RecurrenceCheck {
		machineOpts = append(machineOpts, turing.WithRecurrenceCheck(opts.RecurrenceThreshold))
	}
	if opts.BlankCheck {
		machineOpts = append(machineOpts, turing.WithBlankCheck(opts.BlankThreshold))
	}
	if opts.Parallel {
		machineOpts = append(machineOpts, turing.WithParallel(true))
	}

	m := turing.NewMachine(program, machineOpts...)
	halt := m.Run(ctx)

	return Result{Program: prog, Halt: halt, Marks: m.Marks()}
}
