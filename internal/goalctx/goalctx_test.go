package goalctx

import (
	"context"
	"testing"

	"github.com/specialistvlad/stepbuilder/internal/failure"
	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	str       = model.Primitive("string")
	message   = model.Named("", "Message")
	generated = model.GeneratedTypeFor(message)
	ioErr     = model.Named("io", "IOException")
)

func createGoal(params ...model.RegularParameter) *model.SimpleRegularGoal {
	return &model.SimpleRegularGoal{
		GoalDetails: model.GoalDetails{
			Name:       "create",
			GoalType:   message,
			Kind:       model.GoalStaticMethod,
			Owner:      message,
			MethodName: "create",
			Options:    model.DefaultGoalOptions(),
		},
		Parameters: params,
		Thrown:     []model.TypeName{ioErr},
	}
}

func TestBuild_ThreeStepChain(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	goal := createGoal(
		model.RegularParameter{Name: "kevin", Type: str},
		model.RegularParameter{Name: "chantal", Type: str},
		model.RegularParameter{Name: "justin", Type: str},
	)

	// --- Act ---
	gc, err := Build(context.Background(), generated, goal)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, gc.Steps, 3)

	contract := generated.Nested("CreateBuilder")
	assert.True(t, gc.Contract.Equal(contract))
	assert.Equal(t, []string{"MessageBuilders", "CreateBuilder", "Kevin"}, gc.Steps[0].ThisType.Names)

	assert.True(t, gc.Steps[0].NextType.Equal(gc.Steps[1].ThisType))
	assert.True(t, gc.Steps[1].NextType.Equal(gc.Steps[2].ThisType))
	assert.True(t, gc.Steps[2].NextType.Equal(message), "last step must lead to the goal type")

	assert.Empty(t, gc.Steps[0].DeclaredExceptions)
	assert.Equal(t, []model.TypeName{ioErr}, gc.Steps[2].DeclaredExceptions)
}

func TestBuild_ChainIsASimplePath(t *testing.T) {
	t.Parallel()
	goal := createGoal(
		model.RegularParameter{Name: "a", Type: str, StepPosition: model.At(3)},
		model.RegularParameter{Name: "b", Type: str},
		model.RegularParameter{Name: "c", Type: str, StepPosition: model.At(0)},
		model.RegularParameter{Name: "d", Type: str},
	)

	gc, err := Build(context.Background(), generated, goal)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, s := range gc.Steps {
		key := s.ThisType.String()
		assert.False(t, seen[key], "step type %s revisited", key)
		seen[key] = true
	}
	assert.Equal(t, "C", gc.Steps[0].ThisType.SimpleName())
	assert.Equal(t, "A", gc.Steps[3].ThisType.SimpleName())
	assert.True(t, gc.Steps[3].NextType.Equal(message))
}

func TestBuild_EmptyOptionForBuiltinCollections(t *testing.T) {
	t.Parallel()
	goal := createGoal(
		model.RegularParameter{Name: "tags", Type: model.List(str)},
		model.RegularParameter{Name: "sender", Type: str},
	)

	gc, err := Build(context.Background(), generated, goal)

	require.NoError(t, err)
	require.NotNil(t, gc.Steps[0].EmptyOption)
	assert.Equal(t, "emptyTags", gc.Steps[0].EmptyOption.MethodName)
	assert.Nil(t, gc.Steps[1].EmptyOption)
}

func TestBuild_BeanSteps(t *testing.T) {
	t.Parallel()
	user := model.Named("", "User")
	goal := &model.BeanGoal{
		GoalDetails: model.GoalDetails{Name: "user", GoalType: user, Kind: model.GoalBean, Options: model.DefaultGoalOptions()},
		Parameters: []model.BeanParameter{
			model.AccessorPair{Name: "foo", Type: str, Getter: "getFoo", Setter: "setFoo"},
			model.LoneGetter{Name: "bar", Collection: model.List(str), Element: str, Getter: "getBar",
				GetterThrows: []model.TypeName{ioErr}},
		},
	}

	gc, err := Build(context.Background(), model.GeneratedTypeFor(user), goal)

	require.NoError(t, err)
	require.Len(t, gc.Steps, 2)
	assert.Equal(t, "Bar", gc.Steps[0].ThisType.SimpleName(), "bean steps are alphabetic")
	assert.Nil(t, gc.Steps[0].EmptyOption, "lone getters have their own empty terminator")
	assert.Equal(t, []model.TypeName{ioErr}, gc.Steps[0].DeclaredExceptions)
	assert.True(t, gc.Steps[1].NextType.Equal(user))
}

func TestBuild_Failures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		goal     model.GoalDescription
		expected failure.Code
	}{
		{
			name: "colliding step types",
			goal: createGoal(
				model.RegularParameter{Name: "foo", Type: str},
				model.RegularParameter{Name: "Foo", Type: str},
			),
			expected: failure.DuplicateParameter,
		},
		{
			name: "step out of bounds",
			goal: createGoal(
				model.RegularParameter{Name: "foo", Type: str, StepPosition: model.At(1)},
			),
			expected: failure.StepOutOfBounds,
		},
		{
			name:     "no parameters",
			goal:     createGoal(),
			expected: failure.NotEnoughParameters,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Build(context.Background(), generated, tc.goal)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}
