package quanterr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsufficientData_Matching(t *testing.T) {
	err := NewInsufficientData("returns", 1, 2)

	assert.True(t, errors.Is(err, ErrInsufficientData))
	assert.False(t, errors.Is(err, ErrInvalidParameter))

	var typed *InsufficientDataError
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, 1, typed.Got)
	assert.Equal(t, 2, typed.Need)
	assert.Contains(t, err.Error(), "returns")
}

func TestInvalidParameter_Matching(t *testing.T) {
	err := NewInvalidParameter("simulate", "fast_window", "must be less than slow_window")

	assert.True(t, errors.Is(err, ErrInvalidParameter))
	assert.Contains(t, err.Error(), "fast_window")
}

func TestDegenerateInput_Matching(t *testing.T) {
	err := NewDegenerateInput("risk parity", "asset 0 has zero volatility")

	assert.True(t, errors.Is(err, ErrDegenerateInput))
	assert.Contains(t, err.Error(), "zero volatility")
}

func TestOptimization_CarriesDiagnostics(t *testing.T) {
	underlying := fmt.Errorf("iteration limit reached")
	err := NewOptimization("max sharpe", "IterationLimit", underlying)

	assert.True(t, errors.Is(err, ErrOptimization))

	var typed *OptimizationError
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, "IterationLimit", typed.Status)
	assert.Contains(t, err.Error(), "iteration limit reached")
}

func TestWrappedErrorsStayMatchable(t *testing.T) {
	err := fmt.Errorf("loading series: %w", NewInsufficientData("returns", 0, 2))
	assert.True(t, errors.Is(err, ErrInsufficientData))
}
