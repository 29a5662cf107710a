package session

import "fmt"

// PreconditionError reports a phase transition attempted from the wrong
// state, such as starting phase 2 before phase 1 is complete.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("session: %s: %s", e.Op, e.Reason)
}

// IncompleteCoverageError reports a phase 1 completion attempt while some
// checklist items still have no recorded validation.
type IncompleteCoverageError struct {
	Validated int64
	Total     int64
}

func (e *IncompleteCoverageError) Error() string {
	return fmt.Sprintf("session: phase 1 incomplete: %d of %d items validated", e.Validated, e.Total)
}
