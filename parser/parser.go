// Package parser reads the compact program-string notation -
// "1RB 0LC  1LA 1RH  1RC 0LB" style source - into a turing.Program. It is a
// small, separately testable external-format reader that the simulation
// core never imports.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/turinglab/go-turing"
)

// Sentinel errors, defined as a package-level var block rather than ad hoc
// string errors so callers can match them with errors.Is.
var (
	// ErrMalformedToken is returned when a three-character instruction
	// token doesn't match the grammar.
	ErrMalformedToken = errors.New("malformed instruction token")

	// ErrPartialUndefined is returned when a token mixes '.' with
	// non-'.' characters: undefined must be marked by all three being '.'.
	ErrPartialUndefined = errors.New("partial undefined token")

	// ErrRowWidthMismatch is returned when rows don't all have the same
	// column count.
	ErrRowWidthMismatch = errors.New("row width mismatch")

	// ErrEmptyProgram is returned for an empty or all-whitespace source.
	ErrEmptyProgram = errors.New("empty program")
)

var rowSeparator = regexp.MustCompile(`\s{2,}`)

type token struct {
	write rune
	dir   rune
	state rune
}

// Parse parses a program string into a turing.Program. Rows (one per
// state) are separated by two or more consecutive whitespace characters;
// within a row, instructions are separated by single spaces. Each
// instruction is exactly three characters: write-symbol, direction,
// next-state, or "..." to mark the triple undefined.
func Parse(src string) (*turing.Program, error) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return nil, ErrEmptyProgram
	}

	rows := rowSeparator.Split(trimmed, -1)

	var grid [][]token
	width := -1
	for _, row := range rows {
		fields := strings.Fields(row)
		if width == -1 {
			width = len(fields)
		} else if len(fields) != width {
			return nil, fmt.Errorf("%w: row %q has %d columns, expected %d", ErrRowWidthMismatch, row, len(fields), width)
		}

		parsedRow := make([]token, len(fields))
		for i, field := range fields {
			tok, err := parseToken(field)
			if err != nil {
				return nil, err
			}
			parsedRow[i] = tok
		}
		grid = append(grid, parsedRow)
	}

	numStates := len(grid)
	numSymbols := width

	entries := make(map[turing.Action]*turing.Transition, numStates*numSymbols)
	for stateIdx, row := range grid {
		for symIdx, tok := range row {
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

			entries[action] = &turing.Transition{
				NextState: next,
				Write:     turing.Symbol(sym),
				Dir:       dir,
			}
		}
	}

	return turing.NewProgram(numStates, numSymbols, entries)
}

func parseToken(field string) (token, error) {
	if len(field) != 3 {
		return token{}, fmt.Errorf("%w: %q (want exactly 3 characters)", ErrMalformedToken, field)
	}

	write, dir, state := rune(field[0]), rune(field[1]), rune(field[2])

	dots := 0
	for _, r := range []rune{write, dir, state} {
		if r == '.' {
			dots++
		}
	}
	if dots == 3 {
		return token{write: '.', dir: '.', state: '.'}, nil
	}
	if dots != 0 {
		return token{}, fmt.Errorf("%w: %q", ErrPartialUndefined, field)
	}

	if write < '0' || write > '9' {
		return token{}, fmt.Errorf("%w: write symbol %q in %q", ErrMalformedToken, write, field)
	}
	if dir != 'L' && dir != 'R' {
		return token{}, fmt.Errorf("%w: direction %q in %q", ErrMalformedToken, dir, field)
	}
	if state != 'H' && (state < 'A' || state > 'Z') {
		return token{}, fmt.Errorf("%w: state %q in %q", ErrMalformedToken, state, field)
	}

	return token{write: write, dir: dir, state: state}, nil
}

func stateFromLetter(r rune, numStates int) (turing.State, error) {
	if r == 'H' {
		return turing.HaltState, nil
	}
	idx := int(r - 'A')
	if idx < 0 || idx >= numStates {
		return 0, fmt.Errorf("%w: next-state %q out of range for %d states", ErrMalformedToken, r, numStates)
	}
	return turing.State(idx), nil
}

func directionFromLetter(r rune) (turing.Direction, error) {
	switch r {
	case 'L':
		return turing.Left, nil
	case 'R':
		return turing.Right, nil
	default:
		return 0, fmt.Errorf("%w: direction %q", ErrMalformedToken, r)
	}
}
