package sensor

import "fmt"

// MalformedRowError reports a selected row that is missing or has the wrong shape.
type MalformedRowError struct {
	Row    int // Record index in the table text
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// MalformedFieldError reports a cell that is not a number.
type MalformedFieldError struct {
	Row   int // Record index in the table text
	Field int // Column index within the record
	Value string
	Err   error
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("row %d field %d: %q is not a number", e.Row, e.Field, e.Value)
}

func (e *MalformedFieldError) Unwrap() error {
	return e.Err
}
