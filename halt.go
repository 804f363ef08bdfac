package turing

import "fmt"

// Reason classifies why a run stopped.
type Reason int

const (
	// ReasonHalt is a proper halt: the machine entered HaltState.
	ReasonHalt Reason = iota
	// ReasonRecurrence is a proven Lin-Rado space-time cycle.
	ReasonRecurrence
	// ReasonQuasihalt is a beeping-recurrence: a cycle in which at least
	// one previously-visited state is never revisited.
	ReasonQuasihalt
	// ReasonXLimit is step-budget exhaustion.
	ReasonXLimit
	// ReasonBlanking is a return to an all-zero tape.
	ReasonBlanking
	// ReasonUndefined is an undefined-transition encounter.
	ReasonUndefined
)

// Halt is the terminal record of a run: why it stopped, and at which step.
// It is written at most once per Machine.
type Halt struct {
	Steps  int
	Reason Reason

	// Period is set for ReasonRecurrence and ReasonQuasihalt: the cycle
	// length step-pstep.
	Period int

	// Descriptor is set for ReasonUndefined: "<state><symbol>", e.g. "B1".
	Descriptor string
}

// IsHalt reports whether the run stopped via a proper halt.
func (h Halt) IsHalt() bool { return h.Reason == ReasonHalt }

// IsRecurrence reports whether the run stopped via a proven space-time cycle.
func (h Halt) IsRecurrence() bool { return h.Reason == ReasonRecurrence }

// IsQuasihalt reports whether the run stopped via a beeping recurrence.
func (h Halt) IsQuasihalt() bool { return h.Reason == ReasonQuasihalt }

// String renders the reason the way the final summary line expects it:
// Halt, Recurr(P), Quasihalt(P), XLimit, Blanking, Undefined("B1").
func (h Halt) String() string {
	switch h.Reason {
	case ReasonHalt:
		return "Halt"
	case ReasonRecurrence:
		return fmt.Sprintf("Recurr(%d)", h.Period)
	case ReasonQuasihalt:
		return fmt.Sprintf("Quasihalt(%d)", h.Period)
	case ReasonXLimit:
		return "XLimit"
	case ReasonBlanking:
		return "Blanking"
	case ReasonUndefined:
		return fmt.Sprintf("Undefined(%q)", h.Descriptor)
	default:
		return fmt.Sprintf("Reason(%d)", h.Reason)
	}
}
