package engine

import "fmt"

// ValidationError reports an input the engine refuses to compute with, such
// as a non-positive share count or an ISO grant with no strike price. It is
// always a caller error, local and recoverable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
