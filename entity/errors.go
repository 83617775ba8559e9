package entity

import (
	"errors"
	"fmt"
)

// Failure kinds produced by the registries. The HTTP layer maps each kind
// to its own status code; callers distinguish them with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidReference   = errors.New("referenced entity does not exist")
	ErrNotFound           = errors.New("not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrCapacityExceeded   = errors.New("classroom capacity exceeded")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrConflict           = errors.New("conflicting dependent records exist")
	ErrStorage            = errors.New("storage failure")
)

// Validationf wraps ErrValidation with a field-level message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// InvalidReferencef wraps ErrInvalidReference naming the missing parent.
func InvalidReferencef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidReference, fmt.Sprintf(format, args...))
}

// StorageErr marks a persistence failure as retryable for upstream callers.
// Business-rule failures must never pass through here.
func StorageErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
