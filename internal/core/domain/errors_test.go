package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrInvalidParameter", ErrInvalidParameter},
		{"ErrMissingColumn", ErrMissingColumn},
		{"ErrEmptyPool", ErrEmptyPool},
		{"ErrInvalidPrePool", ErrInvalidPrePool},
		{"ErrInvalidPlan", ErrInvalidPlan},
		{"ErrNotFound", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrInvalidInput, ErrInvalidParameter))
	assert.False(t, errors.Is(ErrEmptyPool, ErrInvalidPlan))
	assert.False(t, errors.Is(ErrMissingColumn, ErrNotFound))
}

func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("scaling factor must be > 0, got %g: %w", -1.0, ErrInvalidParameter)

	assert.True(t, errors.Is(err, ErrInvalidParameter))
	assert.Contains(t, err.Error(), "got -1")
}
