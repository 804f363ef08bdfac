package turing

import (
	"context"
	"fmt"
	"io"
)

// Option configures a Machine at construction time. It takes more optional
// knobs (trace sink, two independent thresholds, parallel flag, snapshot
// cap) than a positional constructor can comfortably express, so it
// follows the functional-options shape instead.
type Option func(*Machine)

// WithLimit sets the step budget. Defaults to 10,000, matching the CLI's
// default.
func WithLimit(limit int) Option {
	return func(m *Machine) { m.limit = limit }
}

// WithTrace enables per-step tracing to w.
func WithTrace(w io.Writer) Option {
	return func(m *Machine) { m.trace = w }
}

// WithRecurrenceCheck enables the recurrence/quasihalt detector, running it
// only once step >= threshold.
func WithRecurrenceCheck(threshold int) Option {
	return func(m *Machine) { m.recurThreshold = threshold; m.recurEnabled = true }
}

// WithBlankCheck enables blanking detection, running it only once
// step >= threshold.
func WithBlankCheck(threshold int) Option {
	return func(m *Machine) { m.blankThreshold = threshold; m.blankEnabled = true }
}

// WithParallel selects the fan-out recurrence check. Semantics are
// identical to the sequential path; only the bucket comparison work runs
// concurrently.
func WithParallel(parallel bool) Option {
	return func(m *Machine) { m.parallel = parallel }
}

// WithSnapshotCap bounds each detector bucket to its oldest n entries,
// trading completeness for a fixed memory ceiling. Zero (the default)
// leaves buckets unbounded, which is required for completeness over the
// full run.
func WithSnapshotCap(n int) Option {
	return func(m *Machine) { m.snapshotCap = n }
}

// Machine is a single-threaded Turing machine run: one Program, one Tape,
// driven step by step to a single Halt. It owns the recurrence detector's
// snapshot store, the beeps map and the deviations history for its one run.
type Machine struct {
	prog  *Program
	tape  *Tape
	state State

	origin     int
	beeps      map[State]int
	deviations []int
	detector   *recurrenceIndex

	halt *Halt

	limit          int
	trace          io.Writer
	recurEnabled   bool
	recurThreshold int
	blankEnabled   bool
	blankThreshold int
	parallel       bool
	snapshotCap    int
}

// NewMachine returns a Machine ready to run prog from its initial state on a
// fresh tape.
func NewMachine(prog *Program, opts ...Option) *Machine {
	m := &Machine{
		prog:  prog,
		tape:  NewTape(),
		state: Initial,
		beeps: make(map[State]int),
		limit: 10000,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.recurEnabled {
		m.detector = newRecurrenceIndex(m.snapshotCap)
	}
	return m
}

// Halt returns the run's terminal record, or nil if Run has not been called
// (or has not yet terminated).
func (m *Machine) Halt() *Halt { return m.halt }

// Marks returns the tape's current mark count.
func (m *Machine) Marks() int { return m.tape.Marks() }

// Tape returns the machine's current tape. After a recurrence or quasihalt
// halt, this is the historical tape the detector rewound to, so that the
// reported Steps and the observable tape describe the same moment.
func (m *Machine) Tape() *Tape { return m.tape }

// State returns the machine's current state.
func (m *Machine) State() State { return m.state }

func (m *Machine) commit(h Halt) Halt {
	m.halt = &h
	return h
}

func (m *Machine) traceStep(step int) {
	if m.trace == nil {
		return
	}
	fmt.Fprintf(m.trace, "%8d %s  %s\n", step, m.state, m.tape)
}

// Run executes the step engine to completion, in a fixed per-step order:
// trace, record deviation, recurrence/quasihalt check, beep, execute
// transition, blanking check, halt check. The configuration reached after
// the last budgeted step still gets the trace, deviation and
// recurrence/quasihalt check, but no transition is executed from it. It
// returns the terminal Halt; calling Run again on an already-halted Machine
// just returns the same record.
func (m *Machine) Run(ctx context.Context) Halt {
	if m.halt != nil {
		return *m.halt
	}

	for step := 0; step <= m.limit; step++ {
		if err := ctx.Err(); err != nil {
			return m.commit(Halt{Steps: step, Reason: ReasonXLimit})
		}

		m.traceStep(step)

		dev := m.tape.Head() - m.origin
		m.deviations = append(m.deviations, dev)

		action := Action{State: m.state, Symbol: m.tape.Read()}

		if m.detector != nil && step >= m.recurThreshold {
			var w *witness
			var matched bool
			if m.parallel {
				w, matched = m.detector.checkParallel(ctx, action, step, m.origin, dev, m.tape, m.deviations, m.beeps)
			} else {
				w, matched = m.detector.check(action, step, m.origin, dev, m.tape, m.deviations, m.beeps)
			}
			if matched {
				reason := recurrenceOutcome(w, m.beeps)
				m.tape = w.ptape.Clone()
				return m.commit(Halt{Steps: w.pstep, Reason: reason, Period: step - w.pstep})
			}
		}

		if step == m.limit {
			break
		}

		m.beeps[m.state] = step

		t, ok := m.prog.Instruction(action)
		if !ok {
			return m.commit(Halt{Steps: step + 1, Reason: ReasonUndefined, Descriptor: action.String()})
		}

		if m.tape.WriteAndStep(t.Dir, t.Write) {
			m.origin++
		}
		m.state = t.NextState

		if m.blankEnabled && step >= m.blankThreshold && m.tape.Marks() == 0 {
			return m.commit(Halt{Steps: step + 1, Reason: ReasonBlanking})
		}

		if m.state == HaltState {
			return m.commit(Halt{Steps: step + 1, Reason: ReasonHalt})
		}
	}

	return m.commit(Halt{Steps: m.limit, Reason: ReasonXLimit})
}
