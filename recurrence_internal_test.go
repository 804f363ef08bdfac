package turing

import "testing"

func TestLeftPad(t *testing.T) {
	t.Parallel()

	got := leftPad([]Symbol{1, 1}, 4)
	want := []Symbol{0, 0, 1, 1}
	if !slicesEqual(got, want) {
		t.Fatalf("leftPad() = %v, want %v", got, want)
	}
}

func TestRightPad(t *testing.T) {
	t.Parallel()

	got := rightPad([]Symbol{1, 1}, 4)
	want := []Symbol{1, 1, 0, 0}
	if !slicesEqual(got, want) {
		t.Fatalf("rightPad() = %v, want %v", got, want)
	}
}

func TestWindowsEqual_ClosedWindowSameDeviation(t *testing.T) {
	t.Parallel()

	past := NewTape()
	past.WriteAndStep(Right, 1)

	cur := NewTape()
	cur.WriteAndStep(Right, 1)

	e := &snapshot{pstep: 0, pinit: 0, pdev: 0, ptape: past, pbeeps: map[State]int{}}
	deviations := []int{0, 0}

	if !windowsEqual(e, 1, 0, 0, cur, deviations) {
		t.Fatal("expected identical one-step-advanced tapes to compare equal")
	}
}

func TestWindowsEqual_Mismatch(t *testing.T) {
	t.Parallel()

	past := NewTape()
	past.WriteAndStep(Right, 1)

	cur := NewTape()
	cur.WriteAndStep(Right, 0)

	e := &snapshot{pstep: 0, pinit: 0, pdev: 0, ptape: past, pbeeps: map[State]int{}}
	deviations := []int{0, 0}

	if windowsEqual(e, 1, 0, 0, cur, deviations) {
		t.Fatal("expected differing tapes not to compare equal")
	}
}

func TestRecurrenceOutcome_AllRebeeped(t *testing.T) {
	t.Parallel()

	w := &witness{pbeeps: map[State]int{0: 1, 1: 2}}
	beeps := map[State]int{0: 5, 1: 6}

	if recurrenceOutcome(w, beeps) != ReasonRecurrence {
		t.Fatal("expected Recurrence when every past-beeped state has beeped again")
	}
}

func TestRecurrenceOutcome_OneNeverRebeeped(t *testing.T) {
	t.Parallel()

	w := &witness{pbeeps: map[State]int{0: 1, 1: 2}}
	beeps := map[State]int{0: 5, 1: 2}

	if recurrenceOutcome(w, beeps) != ReasonQuasihalt {
		t.Fatal("expected Quasihalt when a past-beeped state has not beeped again")
	}
}

func TestRecurrenceIndex_CapLimitsRetention(t *testing.T) {
	t.Parallel()

	idx := newRecurrenceIndex(1)
	action := Action{State: 0, Symbol: 0}
	tape := NewTape()

	idx.record(action, 0, 0, 0, tape, map[State]int{})
	idx.record(action, 1, 0, 0, tape, map[State]int{})

	if got := len(idx.buckets[action]); got != 1 {
		t.Fatalf("bucket length = %d, want 1 (capped)", got)
	}
}
