package turing

import (
	"errors"
	"fmt"
)

// Sentinel errors returned while building a Program, defined as
// package-level vars so callers compare with errors.Is rather than string
// matching.
var (
	// ErrUnsupportedShape is returned when (states, symbols) falls outside
	// the supported range of 2..=6 states and 2..=4 symbols.
	ErrUnsupportedShape = errors.New("unsupported program shape")

	// ErrIncompleteProgram is returned when an entry is missing for some
	// (state, symbol) pair: a Program must be a total function over its
	// non-Halt states and full symbol alphabet.
	ErrIncompleteProgram = errors.New("incomplete program: missing entry")

	// ErrTransitionOutOfRange is returned when a supplied Transition names
	// a state or symbol outside the Program's declared shape.
	ErrTransitionOutOfRange = errors.New("transition out of range")
)

// Program is the total function (State, Symbol) -> Transition|undefined
// described in the spec: for every non-Halt state and every symbol there is
// an entry, which is either a Transition or the undefined sentinel (nil).
// It is immutable after construction and safe to share across Machines.
type Program struct {
	numStates  int
	numSymbols int
	table      [][]*Transition // table[state][symbol]; state in 0..numStates-1
}

// NewProgram builds a Program from a complete entry map. entries must carry
// exactly one key per (state, symbol) pair for state in 0..numStates-1 and
// symbol in 0..numSymbols-1; a nil value marks that entry undefined.
func NewProgram(numStates, numSymbols int, entries map[Action]*Transition) (*Program, error) {
	if numStates < 2 || numStates > 6 || numSymbols < 2 || numSymbols > 4 {
		return nil, fmt.Errorf("%w: states=%d symbols=%d", ErrUnsupportedShape, numStates, numSymbols)
	}

	table := make([][]*Transition, numStates)
	for s := range table {
		table[s] = make([]*Transition, numSymbols)
	}

	for state := 0; state < numStates; state++ {
		for sym := 0; sym < numSymbols; sym++ {
			action := Action{State: State(state), Symbol: Symbol(sym)}
			t, ok := entries[action]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrIncompleteProgram, action)
			}
			if t != nil {
				if int(t.NextState) >= numStates && t.NextState != HaltState {
					return nil, fmt.Errorf("%w: next state %s for %s", ErrTransitionOutOfRange, t.NextState, action)
				}
				if int(t.Write) >= numSymbols {
					return nil, fmt.Errorf("%w: write symbol %s for %s", ErrTransitionOutOfRange, t.Write, action)
				}
			}
			table[state][sym] = t
		}
	}

	return &Program{numStates: numStates, numSymbols: numSymbols, table: table}, nil
}

// NumStates returns the non-Halt state count n.
func (p *Program) NumStates() int { return p.numStates }

// NumSymbols returns the alphabet size k.
func (p *Program) NumSymbols() int { return p.numSymbols }

// Instruction looks up the transition for an Action. The second return
// value is false when the transition is undefined. state must not be
// HaltState: the Halt state has no row in the table and the step engine
// never looks it up (it halts before doing so).
func (p *Program) Instruction(a Action) (Transition, bool) {
	if int(a.State) >= p.numStates {
		panic(fmt.Sprintf("turing: instruction lookup on out-of-range state %s", a.State))
	}
	t := p.table[a.State][a.Symbol]
	if t == nil {
		return Transition{}, false
	}
	return *t, true
}
