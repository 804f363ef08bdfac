package turing

// Tape is a bidirectional, blank-padded tape: a dense vector with a head
// offset, extended on the left by prepending a zero cell. This is chosen
// over a split-stack form because it gives direct index-addressed windowed
// iteration, which the recurrence detector calls on every checked step.
//
// A fresh Tape holds exactly one zero cell with the head at index 0.
type Tape struct {
	cells []Symbol
	head  int
	marks int
}

// NewTape returns a fresh tape: one blank cell, head at 0.
func NewTape() *Tape {
	return &Tape{cells: []Symbol{zero}, head: 0}
}

// Read returns the symbol under the head.
func (t *Tape) Read() Symbol {
	return t.cells[t.head]
}

// Head returns the current head index in the tape's own coordinate space.
// Callers that need the logical head deviation track a separate origin
// counter and subtract it from this value (see Machine).
func (t *Tape) Head() int {
	return t.head
}

// Marks returns the number of non-zero cells, maintained incrementally by
// WriteAndStep. Recompute is used by tests to check this against a
// from-scratch scan (the "naive fallback" the spec allows as the accuracy
// baseline).
func (t *Tape) Marks() int {
	return t.marks
}

// Recompute returns the mark count recomputed from scratch, ignoring the
// incremental counter. Used to verify the marks-accuracy invariant.
func (t *Tape) Recompute() int {
	n := 0
	for _, s := range t.cells {
		if s != zero {
			n++
		}
	}
	return n
}

// WriteAndStep overwrites the cell under the head with sym, then moves the
// head one cell in dir. If the move would take the head left of the stored
// range, a zero cell is prepended and the head stays at index 0; the return
// value tells the caller this happened so it can bump its own origin
// counter (Tape itself has no notion of logical origin - see Machine).
func (t *Tape) WriteAndStep(dir Direction, sym Symbol) (originShifted bool) {
	old := t.cells[t.head]
	if old == zero && sym != zero {
		t.marks++
	} else if old != zero && sym == zero {
		t.marks--
	}
	t.cells[t.head] = sym

	switch dir {
	case Right:
		t.head++
		if t.head == len(t.cells) {
			t.cells = append(t.cells, zero)
		}
		return false
	case Left:
		if t.head == 0 {
			t.cells = append([]Symbol{zero}, t.cells...)
			return true
		}
		t.head--
		return false
	default:
		panic("turing: invalid direction")
	}
}

// IterBetween returns the symbols at absolute indices [lo, hi) relative to
// the tape's own index space (index 0 is the first stored cell). Indices
// outside [0, len(cells)) - including negative ones - yield zero. hi < lo
// yields an empty slice.
func (t *Tape) IterBetween(lo, hi int) []Symbol {
	if hi <= lo {
		return nil
	}
	out := make([]Symbol, hi-lo)
	for i := lo; i < hi; i++ {
		if i < 0 || i >= len(t.cells) {
			out[i-lo] = zero
		} else {
			out[i-lo] = t.cells[i]
		}
	}
	return out
}

// IterTo returns the prefix [0, hi).
func (t *Tape) IterTo(hi int) []Symbol {
	return t.IterBetween(0, hi)
}

// IterFrom returns the suffix [lo, len) of the stored range; anything
// further right is zero by definition and need not be materialized.
func (t *Tape) IterFrom(lo int) []Symbol {
	return t.IterBetween(lo, len(t.cells))
}

// Clone deep-copies the tape. Called on every new recurrence snapshot, so
// it must stay O(len(cells)).
func (t *Tape) Clone() *Tape {
	cells := make([]Symbol, len(t.cells))
	copy(cells, t.cells)
	return &Tape{cells: cells, head: t.head, marks: t.marks}
}

// String renders the tape with the head cell bracketed, e.g. "01[1]00".
func (t *Tape) String() string {
	buf := make([]byte, 0, len(t.cells)+2)
	for i, s := range t.cells {
		if i == t.head {
			buf = append(buf, '[')
			buf = append(buf, byte('0'+s))
			buf = append(buf, ']')
		} else {
			buf = append(buf, byte('0'+s))
		}
	}
	return string(buf)
}
