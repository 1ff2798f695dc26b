package store

import "strings"

// ValidationError reports required fields missing from a create payload.
// It is returned before any write reaches the backing store.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
