package turing

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// snapshot is the tuple recorded just before executing a checked step that
// found no witness in its Action's bucket: the step index, the tape's logical
// origin and head deviation at that moment, and clones of the tape and the
// beeps map as they stood then.
type snapshot struct {
	pstep  int
	pinit  int
	pdev   int
	ptape  *Tape
	pbeeps map[State]int
}

// witness is a past snapshot proven (by window equality) to be the start of
// a cycle that has now recurred.
type witness struct {
	pstep  int
	ptape  *Tape
	pbeeps map[State]int
}

// recurrenceIndex is the snapshot store keyed by Action. Completeness depends
// on comparing a candidate step against every prior same-Action snapshot;
// entries are never pruned unless cap > 0, in which case only the oldest
// cap entries per bucket are ever kept and completeness - not soundness -
// is traded away.
type recurrenceIndex struct {
	buckets map[Action][]snapshot
	cap     int
}

func newRecurrenceIndex(cap int) *recurrenceIndex {
	return &recurrenceIndex{buckets: make(map[Action][]snapshot), cap: cap}
}

// check looks for a witnessing prior snapshot for the given action at the
// current (step, init, dev), comparing against curTape and the full
// deviations history. On no match it records a new snapshot and returns
// (nil, false).
func (r *recurrenceIndex) check(action Action, step, init, dev int, curTape *Tape, deviations []int, beeps map[State]int) (*witness, bool) {
	bucket := r.buckets[action]

	var best *witness
	for i := range bucket {
		e := &bucket[i]
		if windowsEqual(e, step, init, dev, curTape, deviations) {
			if best == nil || e.pstep < best.pstep {
				best = &witness{pstep: e.pstep, ptape: e.ptape, pbeeps: e.pbeeps}
			}
		}
	}

	if best != nil {
		return best, true
	}

	r.record(action, step, init, dev, curTape, beeps)
	return nil, false
}

// checkParallel is the fan-out variant: bucket-internal comparisons run
// concurrently via errgroup, read-only over the owned snapshot slice, and
// the result is reduced to the same earliest-pstep witness the sequential
// path would have picked. Semantics are identical; only the comparison work
// is parallelized.
func (r *recurrenceIndex) checkParallel(ctx context.Context, action Action, step, init, dev int, curTape *Tape, deviations []int, beeps map[State]int) (*witness, bool) {
	bucket := r.buckets[action]
	matches := make([]bool, len(bucket))

	g, _ := errgroup.WithContext(ctx)
	for i := range bucket {
		i := i
		g.Go(func() error {
			matches[i] = windowsEqual(&bucket[i], step, init, dev, curTape, deviations)
			return nil
		})
	}
	_ = g.Wait() // the comparison goroutines never return an error

	var best *witness
	for i, m := range matches {
		if !m {
			continue
		}
		e := &bucket[i]
		if best == nil || e.pstep < best.pstep {
			best = &witness{pstep: e.pstep, ptape: e.ptape, pbeeps: e.pbeeps}
		}
	}

	if best != nil {
		return best, true
	}

	r.record(action, step, init, dev, curTape, beeps)
	return nil, false
}

func (r *recurrenceIndex) record(action Action, step, init, dev int, curTape *Tape, beeps map[State]int) {
	if r.cap > 0 && len(r.buckets[action]) >= r.cap {
		return
	}
	bc := make(map[State]int, len(beeps))
	for k, v := range beeps {
		bc[k] = v
	}
	r.buckets[action] = append(r.buckets[action], snapshot{
		pstep:  step,
		pinit:  init,
		pdev:   dev,
		ptape:  curTape.Clone(),
		pbeeps: bc,
	})
}

// windowsEqual runs the three-case window comparison that proves two tape
// states are identical over the span a head could have touched: prefix
// comparison when the head has drifted left relative to the snapshot,
// suffix comparison when it has drifted right, and a closed window
// comparison when the drift matches.
func windowsEqual(e *snapshot, step, init, dev int, curTape *Tape, deviations []int) bool {
	span := deviations[e.pstep:]
	dmin, dmax := span[0], span[0]
	for _, d := range span[1:] {
		if d < dmin {
			dmin = d
		}
		if d > dmax {
			dmax = d
		}
	}
	dmax++

	switch {
	case dev < e.pdev:
		prevHi := e.pinit + dmax
		currHi := init + dmax + (dev - e.pdev)
		prev := e.ptape.IterTo(prevHi)
		curr := curTape.IterTo(currHi)
		n := maxInt(len(prev), len(curr))
		return slicesEqual(leftPad(prev, n), leftPad(curr, n))

	case dev > e.pdev:
		prevLo := e.pinit + dmin
		currLo := init + dmin + (dev - e.pdev)
		prev := e.ptape.IterFrom(prevLo)
		curr := curTape.IterFrom(currLo)
		n := maxInt(len(prev), len(curr))
		return slicesEqual(rightPad(prev, n), rightPad(curr, n))

	default:
		prevLo, prevHi := e.pinit+dmin, e.pinit+dmax
		currLo, currHi := init+dmin, init+dmax
		prev := e.ptape.IterBetween(prevLo, prevHi)
		curr := curTape.IterBetween(currLo, currHi)
		return slicesEqual(prev, curr)
	}
}

func leftPad(s []Symbol, n int) []Symbol {
	if len(s) >= n {
		return s
	}
	out := make([]Symbol, n)
	copy(out[n-len(s):], s)
	return out
}

func rightPad(s []Symbol, n int) []Symbol {
	if len(s) >= n {
		return s
	}
	out := make([]Symbol, n)
	copy(out, s)
	return out
}

func slicesEqual(a, b []Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// recurrenceOutcome decides Recurrence vs Quasihalt from the witness's
// historical beeps map: if every state that had beeped by pstep has beeped
// again since, the future is a clean translate of the past (Recurrence);
// otherwise some state is permanently abandoned by the cycle (Quasihalt).
func recurrenceOutcome(w *witness, beeps map[State]int) Reason {
	for s, pb := range w.pbeeps {
		if cb, ok := beeps[s]; !ok || cb <= pb {
			return ReasonQuasihalt
		}
	}
	return ReasonRecurrence
}
