package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMissingPrerequisite is returned when a consultation is created against
// an appointment that lacks an assigned practitioner or an owning clinical
// history record. Not retryable until the upstream data is fixed.
var ErrMissingPrerequisite = errors.New("appointment has no assigned practitioner or clinical history record")

// ValidationError carries per-field messages for a rejected payload. The
// operation is all-or-nothing: any field error blocks the whole request and
// nothing is persisted.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
