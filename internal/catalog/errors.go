package catalog

import (
	"fmt"

	"github.com/franz/course-analyzer/internal/util"
)

// MalformedRecordError reports a row that cannot become a Course
type MalformedRecordError struct {
	Row   int    // 1-based position in the input sequence
	Field string // column name, empty for arity errors
	Value string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d: field %s=%q: %v", e.Row, e.Field, e.Value, e.Err)
}

// Unwrap exposes the sentinel so callers can use errors.Is(err, util.ErrMalformedRecord)
func (e *MalformedRecordError) Unwrap() []error {
	return []error{util.ErrMalformedRecord, e.Err}
}
