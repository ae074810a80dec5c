package lifecycle

import (
	"testing"

	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/specialistvlad/stepbuilder/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	message   = model.Named("", "Message")
	generated = model.GeneratedTypeFor(message)
	impl      = generated.Nested("CreateBuilderImpl")
)

func goal(kind model.GoalKind, lc model.Lifecycle) model.GoalDescription {
	opts := model.DefaultGoalOptions()
	opts.Lifecycle = lc
	details := model.GoalDetails{Name: "create", GoalType: message, Kind: kind, Owner: message, Options: opts}
	if kind == model.GoalBean {
		return &model.BeanGoal{GoalDetails: details}
	}
	return &model.SimpleRegularGoal{GoalDetails: details}
}

func TestInitStatement(t *testing.T) {
	t.Parallel()
	target := Target{Var: "b", Type: impl, Generated: generated, Receiver: "message"}
	receiver := output.Assign{
		Target: output.Select{X: output.Var("b"), Name: ReceiverField},
		Value:  output.Var("message"),
	}
	bean := output.Assign{
		Target: output.Select{X: output.Var("b"), Name: BeanField},
		Value:  output.New{Type: message},
	}
	cached := output.CacheGet{Generated: generated, Field: "createBuilderImpl"}

	testCases := []struct {
		name              string
		goal              model.GoalDescription
		expectedValue     output.Expr
		expectedMutations []output.Stmt
	}{
		{
			name:          "fresh constructor goal",
			goal:          goal(model.GoalConstructor, model.LifecycleNewInstance),
			expectedValue: output.New{Type: impl},
		},
		{
			name: "fresh instance goal passes the receiver",
			goal: goal(model.GoalInstanceMethod, model.LifecycleNewInstance),
			expectedValue: output.New{Type: impl, Fields: []output.FieldValue{
				{Name: ReceiverField, Value: output.Var("message")},
			}},
		},
		{
			name:              "fresh bean resets the bean",
			goal:              goal(model.GoalBean, model.LifecycleNewInstance),
			expectedValue:     output.New{Type: impl},
			expectedMutations: []output.Stmt{bean},
		},
		{
			name:          "reused static goal",
			goal:          goal(model.GoalStaticMethod, model.LifecycleReuseInstances),
			expectedValue: cached,
		},
		{
			name:              "reused instance goal assigns the receiver",
			goal:              goal(model.GoalInstanceMethod, model.LifecycleReuseInstances),
			expectedValue:     cached,
			expectedMutations: []output.Stmt{receiver},
		},
		{
			name:              "reused bean resets the bean",
			goal:              goal(model.GoalBean, model.LifecycleReuseInstances),
			expectedValue:     cached,
			expectedMutations: []output.Stmt{bean},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			decl, mutations := InitStatement(tc.goal, target)

			assert.Equal(t, "b", decl.Name)
			assert.True(t, decl.Type.Equal(impl))
			assert.Equal(t, tc.expectedValue, decl.Value)
			assert.Equal(t, tc.expectedMutations, mutations)
		})
	}
}

func TestCacheFields(t *testing.T) {
	t.Parallel()

	assert.Empty(t, CacheFields(generated, nil), "no reuse, no cache")

	updater := generated.Nested("CreateUpdater")
	fields := CacheFields(generated, []model.TypeName{impl, updater})

	require.Len(t, fields, 3)
	assert.Equal(t, CacheField, fields[0].Name)
	assert.True(t, fields[0].Static)
	assert.Equal(t, "createBuilderImpl", fields[1].Name)
	assert.Equal(t, "createUpdater", fields[2].Name)
	for _, f := range fields[1:] {
		assert.False(t, f.Static)
		assert.Equal(t, output.New{Type: f.Type}, f.Init)
	}
}

func TestLocalVar(t *testing.T) {
	t.Parallel()
	withParams := &model.SimpleRegularGoal{Parameters: []model.RegularParameter{
		{Name: "updater", Type: model.Primitive("string")},
		{Name: "updater_", Type: model.Primitive("int")},
	}}

	assert.Equal(t, "updater", LocalVar(goal(model.GoalConstructor, model.LifecycleNewInstance), "updater"))
	assert.Equal(t, "updater__", LocalVar(withParams, "updater"))
	assert.Equal(t, "receiver_", LocalVar(withParams, ReceiverParam))
	assert.Equal(t, "updater_", LocalVar(goal(model.GoalConstructor, model.LifecycleNewInstance), "updater", "updater"))
}

func TestReceiverName(t *testing.T) {
	t.Parallel()
	withReceiver := &model.SimpleRegularGoal{Parameters: []model.RegularParameter{
		{Name: "receiver", Type: model.Primitive("string")},
		{Name: "receiver_", Type: model.Primitive("int")},
	}}

	assert.Equal(t, ReceiverParam, ReceiverName(goal(model.GoalInstanceMethod, model.LifecycleNewInstance)))
	assert.Equal(t, "receiver__", ReceiverName(withReceiver))
	assert.Equal(t, "receiver___", LocalVar(withReceiver, "receiver"), "locals also avoid the receiver parameter")
}
