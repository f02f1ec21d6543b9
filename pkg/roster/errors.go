package roster

import (
	"errors"
	"fmt"

	"github.com/arnavshah/duty-roster-go/pkg/models"
)

var (
	// ErrInvalidRange is returned when a date is missing or the end precedes the start.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrRangeTooLarge is returned when the range exceeds the generator's day limit.
	ErrRangeTooLarge = errors.New("date range too large")

	// ErrInvalidConfig is returned when the configuration cannot be rostered at all.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDanglingReference marks a rule, fixed assignment, exception or leave naming
	// unknown staff or shifts. It is reported as a warning, never returned from Generate.
	ErrDanglingReference = errors.New("dangling reference")
)

// RangeError describes a rejected date range.
type RangeError struct {
	Start   models.Date
	End     models.Date
	MaxDays int
}

func (e *RangeError) Error() string {
	switch {
	case e.Start.IsZero() || e.End.IsZero():
		return "invalid date range: start and end dates are required"
	case e.MaxDays > 0:
		return fmt.Sprintf("date range too large: %s to %s exceeds %d days", e.Start, e.End, e.MaxDays)
	default:
		return fmt.Sprintf("invalid date range: end %s precedes start %s", e.End, e.Start)
	}
}

func (e *RangeError) Unwrap() error {
	if e.MaxDays > 0 && !e.Start.IsZero() && !e.End.IsZero() {
		return ErrRangeTooLarge
	}
	return ErrInvalidRange
}

// ConfigError describes a configuration value that makes generation impossible.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// DanglingReferenceError names the owner that refers to a missing staff member or shift.
type DanglingReferenceError struct {
	Owner string // e.g. "fixed assignment 2"
	Kind  string // "staff" or "shift"
	Name  string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s refers to unknown %s %q", e.Owner, e.Kind, e.Name)
}

func (e *DanglingReferenceError) Unwrap() error {
	return ErrDanglingReference
}

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrRangeTooLarge)
}
