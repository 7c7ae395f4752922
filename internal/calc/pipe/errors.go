package pipe

import (
	"errors"
	"fmt"
)

// InvalidGeometryError reports a non-positive wall thickness or diameter.
type InvalidGeometryError struct {
	Field string
	Value float64
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry: %s must be a finite positive number, got %g", e.Field, e.Value)
}

// DomainError reports an input outside the range where the formulas are defined.
type DomainError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: %s = %g %s", e.Field, e.Value, e.Reason)
}

// IsInputError reports whether err is caused by caller input rather than a fault.
func IsInputError(err error) bool {
	var ge *InvalidGeometryError
	var de *DomainError
	return errors.As(err, &ge) || errors.As(err, &de)
}
