package bods

import (
	"fmt"
	"strings"
)

// ParseError is returned when a percentage on the record is not a finite number
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s %q as a percentage: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RangeError is returned for percentages outside [0, 100] when strict checking is on
type RangeError struct {
	Field string
	Value float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %v is outside the range 0-100", e.Field, e.Value)
}

// DomainError signals a record that breaks the converter's preconditions.
// Callers are expected to validate records before converting them.
type DomainError struct {
	Fields []string
	Err    error
}

func (e *DomainError) Error() string {
	if len(e.Fields) > 0 {
		return "invalid significant individual, missing: " + strings.Join(e.Fields, ", ")
	}
	return fmt.Sprintf("invalid significant individual: %v", e.Err)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}
