package turing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turinglab/go-turing"
)

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A", turing.Initial.String())
	assert.Equal(t, "C", turing.State(2).String())
	assert.Equal(t, "H", turing.HaltState.String())
}

func TestSymbolString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", turing.Symbol(0).String())
	assert.Equal(t, "3", turing.Symbol(3).String())
}

func TestActionString(t *testing.T) {
	t.Parallel()

	a := turing.Action{State: turing.State(1), Symbol: turing.Symbol(1)}
	assert.Equal(t, "B1", a.String())
}

func TestDirectionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "L", turing.Left.String())
	assert.Equal(t, "R", turing.Right.String())
}
