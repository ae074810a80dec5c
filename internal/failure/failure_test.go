package failure

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	testCases := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "code only",
			err:      New(StepDuplicate, "", ""),
			expected: "STEP_DUPLICATE",
		},
		{
			name:     "code and element",
			err:      New(NoProjection, "Message.create(kevin)", ""),
			expected: "NO_PROJECTION at Message.create(kevin)",
		},
		{
			name:     "code element and detail",
			err:      New(StepOutOfBounds, "create(justin)", "position %d exceeds %d parameters", 5, 3),
			expected: "STEP_OUT_OF_BOUNDS at create(justin): position 5 exceeds 3 parameters",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestError_IsMatchesCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("container Message: %w", New(GoalNameEECC, "Message()", ""))

	assert.True(t, errors.Is(err, GoalNameEECC))
	assert.True(t, errors.Is(err, &Error{Code: GoalNameEECC}))
	assert.False(t, errors.Is(err, GoalNameNN))

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, GoalNameEECC, code)
}

func TestCodeOf_PlainError(t *testing.T) {
	_, ok := CodeOf(errors.New("boom"))
	assert.False(t, ok)
}
