// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrNoTradeLegs     = errors.New("no trade legs recorded")
	ErrLegNotFound     = errors.New("trade leg not found")
	ErrSessionClosed   = errors.New("session ledger closed")
	ErrConfigInvalid   = errors.New("invalid configuration")
	ErrDatabaseError   = errors.New("database error")
	ErrExportFailed    = errors.New("export failed")
	ErrInputValidation = errors.New("input validation failed")
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// Is matches any validation failure against ErrInputValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInputValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// LedgerError represents an error from a ledger backend.
type LedgerError struct {
	Op      string
	TradeID int
	LegID   int
	Err     error
}

func (e *LedgerError) Error() string {
	if e.TradeID != 0 || e.LegID != 0 {
		return fmt.Sprintf("ledger error [%s] trade %d leg %d: %v", e.Op, e.TradeID, e.LegID, e.Err)
	}
	return fmt.Sprintf("ledger error [%s]: %v", e.Op, e.Err)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

// Is matches any backend failure against ErrDatabaseError.
func (e *LedgerError) Is(target error) bool {
	return target == ErrDatabaseError
}

// NewLedgerError creates a new LedgerError.
func NewLedgerError(op string, tradeID, legID int, err error) *LedgerError {
	return &LedgerError{
		Op:      op,
		TradeID: tradeID,
		LegID:   legID,
		Err:     err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
