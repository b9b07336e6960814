package whatif

import "fmt"

// InterventionError describes a what-if request that cannot be resolved.
type InterventionError struct {
	Intervention string
	Reason       string
	Err          error
}

func (e *InterventionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("intervention %s: %s: %v", e.Intervention, e.Reason, e.Err)
	}
	return fmt.Sprintf("intervention %s: %s", e.Intervention, e.Reason)
}

func (e *InterventionError) Unwrap() error {
	return e.Err
}

// NewInterventionError creates a new InterventionError.
func NewInterventionError(intervention, reason string, err error) error {
	return &InterventionError{Intervention: intervention, Reason: reason, Err: err}
}
