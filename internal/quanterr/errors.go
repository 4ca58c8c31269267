// Package quanterr defines the typed failure taxonomy shared by the
// quantitative engines. Callers match on the concrete types with errors.As
// (or on the sentinel values with errors.Is) and decide at the boundary
// whether to format them as text; the engines never swallow them.
package quanterr

import (
	"errors"
	"fmt"
)

// Sentinel values for errors.Is matching. Every typed error below wraps the
// sentinel for its category.
var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrDegenerateInput  = errors.New("degenerate input")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrOptimization     = errors.New("optimization failed")
)

// InsufficientDataError reports a series shorter than the minimum number of
// observations an operation requires.
type InsufficientDataError struct {
	Operation string
	Got       int
	Need      int
}

// Error implements the error interface.
func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: insufficient data: got %d observations, need at least %d", e.Operation, e.Got, e.Need)
}

// Unwrap returns the category sentinel.
func (e *InsufficientDataError) Unwrap() error { return ErrInsufficientData }

// NewInsufficientData creates an InsufficientDataError for an operation.
func NewInsufficientData(operation string, got, need int) *InsufficientDataError {
	return &InsufficientDataError{Operation: operation, Got: got, Need: need}
}

// DegenerateInputError reports a zero-variance series feeding a ratio where
// no defined substitution exists. The zero-variance Sharpe case is NOT one
// of these: it substitutes a documented 0.0 instead.
type DegenerateInputError struct {
	Operation string
	Message   string
}

// Error implements the error interface.
func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("%s: degenerate input: %s", e.Operation, e.Message)
}

// Unwrap returns the category sentinel.
func (e *DegenerateInputError) Unwrap() error { return ErrDegenerateInput }

// NewDegenerateInput creates a DegenerateInputError for an operation.
func NewDegenerateInput(operation, message string) *DegenerateInputError {
	return &DegenerateInputError{Operation: operation, Message: message}
}

// InvalidParameterError reports a caller-supplied parameter that fails eager
// validation, such as fast_window >= slow_window.
type InvalidParameterError struct {
	Operation string
	Parameter string
	Message   string
}

// Error implements the error interface.
func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: invalid parameter %q: %s", e.Operation, e.Parameter, e.Message)
}

// Unwrap returns the category sentinel.
func (e *InvalidParameterError) Unwrap() error { return ErrInvalidParameter }

// NewInvalidParameter creates an InvalidParameterError for an operation.
func NewInvalidParameter(operation, parameter, message string) *InvalidParameterError {
	return &InvalidParameterError{Operation: operation, Parameter: parameter, Message: message}
}

// OptimizationError reports solver non-convergence and carries the solver's
// diagnostic status text.
type OptimizationError struct {
	Operation  string
	Status     string
	Underlying error
}

// Error implements the error interface.
func (e *OptimizationError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: optimization failed (%s): %v", e.Operation, e.Status, e.Underlying)
	}
	return fmt.Sprintf("%s: optimization failed (%s)", e.Operation, e.Status)
}

// Unwrap returns the category sentinel. The underlying solver error is kept
// as diagnostic context only so errors.Is matching stays on the category.
func (e *OptimizationError) Unwrap() error { return ErrOptimization }

// NewOptimization creates an OptimizationError carrying solver diagnostics.
func NewOptimization(operation, status string, underlying error) *OptimizationError {
	return &OptimizationError{Operation: operation, Status: status, Underlying: underlying}
}
