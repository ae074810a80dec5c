package codeshape

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/specialistvlad/stepbuilder/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	str      = model.Primitive("string")
	goalType = model.Named("", "Message")
	contract = model.Named("", "MessageBuilders", "CreateBuilder")
)

// recordingTarget stores into fields of the receiver and returns a marker on
// the last step.
type recordingTarget struct{}

func (recordingTarget) Signature(step model.Step, last bool) (model.TypeName, []model.TypeName) {
	return step.NextType, step.DeclaredExceptions
}

func (recordingTarget) Store(p model.Parameter, value output.Expr) []output.Stmt {
	return []output.Stmt{output.Assign{Target: output.ThisField(p.ParamName()), Value: value}}
}

func (recordingTarget) Collection(p model.LoneGetter) output.Expr {
	return output.Call{X: output.ThisField("_bean"), Method: p.Getter}
}

func (recordingTarget) Finish(last bool) []output.Stmt {
	if last {
		return []output.Stmt{output.Return{Value: output.Var("done")}}
	}
	return []output.Stmt{output.Return{Value: output.This{}}}
}

func stepFor(p model.Parameter, next model.TypeName) model.Step {
	s := model.Step{
		ThisType:  contract.Nested(model.Upcase(p.ParamName())),
		NextType:  next,
		Parameter: p,
	}
	if _, lone := p.(model.LoneGetter); !lone {
		s.EmptyOption = model.EmptyOptionFor(p.ParamName(), p.ParamType())
	}
	return s
}

func methodNames(ms []output.Method) []string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name
	}
	return names
}

func TestDecide(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		param     model.Parameter
		expected  []Kind
		nullCheck bool
	}{
		{
			name:     "primitive regular parameter",
			param:    model.RegularParameter{Name: "kevin", Type: str, NullPolicy: model.NullAllow},
			expected: []Kind{KindSetter},
		},
		{
			name:      "rejecting user type",
			param:     model.RegularParameter{Name: "sender", Type: model.Named("", "User"), NullPolicy: model.NullReject},
			expected:  []Kind{KindSetter},
			nullCheck: true,
		},
		{
			name:      "built-in collection",
			param:     model.RegularParameter{Name: "tags", Type: model.List(str), NullPolicy: model.NullReject},
			expected:  []Kind{KindSetter, KindEmptyShortcut},
			nullCheck: true,
		},
		{
			name:     "accessor pair map",
			param:    model.AccessorPair{Name: "attrs", Type: model.Map(str, str), Getter: "getAttrs", Setter: "setAttrs"},
			expected: []Kind{KindSetter, KindEmptyShortcut},
		},
		{
			name: "lone getter",
			param: model.LoneGetter{Name: "bar", Collection: model.List(model.Primitive("int")),
				Element: model.Primitive("int"), Getter: "getBar", NullPolicy: model.NullReject},
			expected:  []Kind{KindIterate, KindEmptyTerminator},
			nullCheck: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			shapes := Decide(stepFor(tc.param, goalType))

			kinds := make([]Kind, len(shapes))
			for i, s := range shapes {
				kinds[i] = s.Kind
			}
			assert.Equal(t, tc.expected, kinds)
			assert.Equal(t, tc.nullCheck, shapes[0].NullCheck)
			for _, s := range shapes[1:] {
				assert.False(t, s.NullCheck, "zero-argument methods never guard")
			}
		})
	}
}

func TestMethods_LoneGetter(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	elem := model.Primitive("int")
	lg := model.LoneGetter{Name: "bar", Collection: model.List(elem), Element: elem, Getter: "getBar", NullPolicy: model.NullReject}
	step := stepFor(lg, contract.Nested("Foo"))

	// --- Act ---
	methods := Methods(step, false, recordingTarget{})

	// --- Assert ---
	require.Len(t, methods, 2)
	assert.Equal(t, []string{"bar", "emptyBar"}, methodNames(methods))

	iterate := methods[0]
	require.Len(t, iterate.Params, 1)
	assert.True(t, iterate.Params[0].Type.Equal(model.List(elem)))
	expected := []output.Stmt{
		output.NullCheck{Value: output.Var("bar"), Name: "bar"},
		output.ForEachAdd{
			Source:     output.Var("bar"),
			SourceType: model.List(elem),
			Target:     output.Call{X: output.ThisField("_bean"), Method: "getBar"},
			TargetType: model.List(elem),
			Var:        "barElem",
		},
		output.Return{Value: output.This{}},
	}
	if diff := cmp.Diff(expected, iterate.Body); diff != "" {
		t.Errorf("iterate body mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, methods[1].Params)
	assert.Equal(t, []output.Stmt{output.Return{Value: output.This{}}}, methods[1].Body)
}

func TestMethods_LastStepFinishes(t *testing.T) {
	t.Parallel()
	p := model.RegularParameter{Name: "tags", Type: model.List(str), NullPolicy: model.NullAllow}
	step := stepFor(p, goalType)

	methods := Methods(step, true, recordingTarget{})

	require.Len(t, methods, 2)
	for _, m := range methods {
		assert.True(t, m.Returns.Equal(goalType))
		assert.Equal(t, output.Return{Value: output.Var("done")}, m.Body[len(m.Body)-1])
	}
	assert.Equal(t, output.Assign{
		Target: output.ThisField("tags"),
		Value:  output.EmptyCollection{Type: model.List(str)},
	}, methods[1].Body[0])
}

func TestMethods_AllowRemovesOnlyThatGuard(t *testing.T) {
	t.Parallel()
	user := model.Named("", "User")
	params := []model.RegularParameter{
		{Name: "sender", Type: user, NullPolicy: model.NullReject},
		{Name: "receiver", Type: user, NullPolicy: model.NullReject},
		{Name: "body", Type: model.List(str), NullPolicy: model.NullReject},
	}
	guards := func(ps []model.RegularParameter) []string {
		var names []string
		for i, p := range ps {
			for _, m := range Methods(stepFor(p, goalType), i == len(ps)-1, recordingTarget{}) {
				names = append(names, output.NullChecks(m.Body)...)
			}
		}
		return names
	}

	before := guards(params)
	require.Equal(t, []string{"sender", "receiver", "body"}, before)

	for i := range params {
		toggled := append([]model.RegularParameter(nil), params...)
		toggled[i].NullPolicy = model.NullAllow

		var expected []string
		for j, name := range before {
			if j != i {
				expected = append(expected, name)
			}
		}
		assert.Equal(t, expected, guards(toggled), "allowing %s", params[i].Name)
	}
}

func TestMethods_PrimitiveNeverGuarded(t *testing.T) {
	t.Parallel()
	policy := model.ResolveNullPolicy(str, model.NullReject, model.NullDefault)
	p := model.RegularParameter{Name: "kevin", Type: str, NullPolicy: policy}

	methods := Methods(stepFor(p, goalType), true, recordingTarget{})

	require.Len(t, methods, 1)
	assert.Empty(t, output.NullChecks(methods[0].Body))
}
