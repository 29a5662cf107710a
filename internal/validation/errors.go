package validation

import "fmt"

// InvalidStatusError reports a status outside the accepted set.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("validation: invalid status %q", e.Status)
}

// ValidationError reports a malformed record request, such as a missing or
// mismatched item reference for the phase being validated.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}
