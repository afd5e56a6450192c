package validate

import "strings"

// FieldError describes a single invariant violation on a draft.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" || e.Field == "(root)" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Errors is the full set of violations found on one draft.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// orNil converts an empty slice to a nil error.
func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
