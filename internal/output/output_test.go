package output

import (
	"testing"

	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorOutput_Lookups(t *testing.T) {
	t.Parallel()
	generated := model.Named("", "MessageBuilders")
	impl := generated.Nested("CreateBuilderImpl")
	out := &GeneratorOutput{
		Generated: generated,
		Methods:   []BuilderMethod{{GoalName: "create", Method: Method{Name: "createBuilder", Static: true}}},
		Types: []TypeDef{{
			Name:    impl,
			Fields:  []Field{{Name: "sender"}},
			Methods: []Method{{Name: "sender"}},
		}},
		Fields: []Field{{Name: "createBuilderImpl"}, {Name: "cache", Static: true}},
	}

	m, ok := out.Method("createBuilder")
	require.True(t, ok)
	assert.True(t, m.Static)
	_, ok = out.Method("missing")
	assert.False(t, ok)

	def, ok := out.Type(impl)
	require.True(t, ok)
	_, ok = def.Method("sender")
	assert.True(t, ok)
	_, ok = def.Field("sender")
	assert.True(t, ok)
	_, ok = def.Field("body")
	assert.False(t, ok)
	_, ok = out.Type(generated.Nested("Other"))
	assert.False(t, ok)

	assert.Equal(t, []Field{{Name: "cache", Static: true}}, out.StaticFields())
}

func TestNullChecks(t *testing.T) {
	t.Parallel()
	body := []Stmt{
		NullCheck{Name: "sender", Value: Var("sender")},
		Assign{Target: ThisField("sender"), Value: Var("sender")},
		NullCheck{Name: "body", Value: Var("body")},
		Return{},
	}

	assert.Equal(t, []string{"sender", "body"}, NullChecks(body))
	assert.Empty(t, NullChecks(nil))
}
