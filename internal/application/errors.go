package application

import "errors"

// ErrNotFound is returned when a requested region, holiday or stored record
// does not exist.
var ErrNotFound = errors.New("application: not found")

// ValidationError captures field level validation issues that callers can
// surface to users. Values are machine-readable codes, keyed by field path.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation code.
func (v *ValidationError) add(field, code string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = code
}

// NewValidationError wraps a batch failure map produced by the validators.
// The map is copied so callers can reuse their own.
func NewValidationError(fields map[string]string) *ValidationError {
	vErr := &ValidationError{}
	for field, code := range fields {
		vErr.add(field, code)
	}
	return vErr
}
