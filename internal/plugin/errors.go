package plugin

import "fmt"

// MalformedInputError reports an input envelope that could not be parsed or
// is missing required fields. It is raised before any remote call is
// attempted.
type MalformedInputError struct {
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed plugin input: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed plugin input: %s", e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}
