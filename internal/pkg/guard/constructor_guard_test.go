package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("test object not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardEmbeddedInCommand shows the guard the way commands use it.
func TestConstructorGuardEmbeddedInCommand(t *testing.T) {
	errNotConstructed := errors.New("ReprintCommand must be created via NewReprintCommand")

	type ReprintCommand struct {
		jobID string
		guard guard.ConstructorGuard
	}

	newReprintCommand := func(jobID string) (ReprintCommand, error) {
		if jobID == "" {
			return ReprintCommand{}, errors.New("job ID is required")
		}
		return ReprintCommand{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_command_is_valid", func(t *testing.T) {
		cmd, err := newReprintCommand("job-1")

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errNotConstructed))
		assert.Equal(t, "job-1", cmd.jobID)
	})

	t.Run("literal_command_is_rejected", func(t *testing.T) {
		cmd := ReprintCommand{jobID: "job-1"}

		assert.Equal(t, errNotConstructed, cmd.guard.Validate(errNotConstructed))
	})

	t.Run("constructor_still_validates_input", func(t *testing.T) {
		_, err := newReprintCommand("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "job ID is required")
	})
}
