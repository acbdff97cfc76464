package lattice

import (
	"errors"
	"fmt"
)

// Property-store errors. A required field that is absent or malformed
// is a configuration error and aborts tracking for the element; it is
// distinguishable from the clean defaulting of optional fields.
var (
	ErrMissingField = errors.New("lattice: required field absent")
	ErrWrongType    = errors.New("lattice: field has wrong type")
)

// FieldError identifies the element and field of a failed lookup.
type FieldError struct {
	Element string
	Field   string
	Wrapped error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("element %q, field %q: %v", e.Element, e.Field, e.Wrapped)
}

func (e *FieldError) Unwrap() error {
	return e.Wrapped
}

// Element is a named bag of lattice properties: the key-value store the
// tracking kernel's parameter builder consumes. Scalars are stored as
// float64 or int, arrays as []float64.
type Element struct {
	Name string
	Kind string

	props map[string]any
}

func NewElement(name, kind string) *Element {
	return &Element{Name: name, Kind: kind, props: make(map[string]any)}
}

// Set stores a property value and returns the element for chaining.
func (e *Element) Set(field string, v any) *Element {
	e.props[field] = v
	return e
}

func (e *Element) Has(field string) bool {
	_, ok := e.props[field]
	return ok
}

func (e *Element) fieldErr(field string, err error) error {
	return &FieldError{Element: e.Name, Field: field, Wrapped: err}
}

// Double returns a required scalar field.
func (e *Element) Double(field string) (float64, error) {
	v, ok := e.props[field]
	if !ok {
		return 0, e.fieldErr(field, ErrMissingField)
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	}
	return 0, e.fieldErr(field, ErrWrongType)
}

// Long returns a required integer field.
func (e *Element) Long(field string) (int, error) {
	v, ok := e.props[field]
	if !ok {
		return 0, e.fieldErr(field, ErrMissingField)
	}
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	}
	return 0, e.fieldErr(field, ErrWrongType)
}

// DoubleArray returns a required array field.
func (e *Element) DoubleArray(field string) ([]float64, error) {
	v, ok := e.props[field]
	if !ok {
		return nil, e.fieldErr(field, ErrMissingField)
	}
	if a, ok := v.([]float64); ok {
		return a, nil
	}
	return nil, e.fieldErr(field, ErrWrongType)
}

// OptionalLong returns an integer field or the default when absent.
func (e *Element) OptionalLong(field string, def int) int {
	if v, err := e.Long(field); err == nil {
		return v
	}
	return def
}

// OptionalDouble returns a scalar field or the default when absent.
func (e *Element) OptionalDouble(field string, def float64) float64 {
	if v, err := e.Double(field); err == nil {
		return v
	}
	return def
}

// OptionalDoubleArray returns an array field, or nil when absent. The
// nil must propagate: downstream an absent array means the operation is
// skipped, never applied with neutral values.
func (e *Element) OptionalDoubleArray(field string) []float64 {
	if v, err := e.DoubleArray(field); err == nil {
		return v
	}
	return nil
}
