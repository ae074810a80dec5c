package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/stepbuilder/internal/config"
	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFiles lays out files under a fresh temp dir and returns its path.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func load(t *testing.T, src string) (*config.Model, error) {
	t.Helper()
	dir := writeFiles(t, map[string]string{"manifest.hcl": src})
	return NewLoader().Load(context.Background(), dir)
}

func TestLoad_ContainerWithGoals(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := `
	package = "messages"

	container "Message" {
		lifecycle = "reuse"

		goal "constructor" {
			name = "create"
			param "sender" { type = string }
			param "recipients" {
				type = list(qual("example.com/mail", "Address"))
				step {
					position    = 0
					null_policy = "reject"
				}
			}
			throws = [qual("example.com/mail", "Invalid")]
			options {
				updater           = true
				builder_access    = "package"
				lifecycle         = "new"
			}
		}

		goal "method" {
			method  = "reply"
			returns = Message
			param "body" { type = "string" }
		}
	}
	`

	// --- Act ---
	m, err := load(t, src)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "messages", m.Package)
	require.Len(t, m.Containers, 1)
	c := m.Containers[0]
	assert.True(t, c.Name.Equal(model.Named("", "Message")))
	assert.Equal(t, "reuse", c.Lifecycle)
	assert.Equal(t, 4, c.Origin.Line)
	require.Len(t, c.Goals, 2)

	create := c.Goals[0]
	assert.Equal(t, config.GoalConstructor, create.Kind)
	assert.Equal(t, "create", create.Name)
	require.Len(t, create.Params, 2)
	assert.True(t, create.Params[0].Type.Equal(model.Primitive("string")))
	address := model.Named("example.com/mail", "Address")
	assert.True(t, create.Params[1].Type.Equal(model.List(address)))
	require.NotNil(t, create.Params[1].Step)
	require.NotNil(t, create.Params[1].Step.Position)
	assert.Equal(t, 0, *create.Params[1].Step.Position)
	assert.Equal(t, "reject", create.Params[1].Step.NullPolicy)
	assert.Equal(t, []model.TypeName{model.Named("example.com/mail", "Invalid")}, create.Throws)
	assert.True(t, create.Options.Updater)
	assert.Nil(t, create.Options.Builder)
	assert.Equal(t, "package", create.Options.BuilderAccess)
	assert.Equal(t, "new", create.Options.Lifecycle)

	reply := c.Goals[1]
	assert.Equal(t, config.GoalMethod, reply.Kind)
	assert.Equal(t, "reply", reply.Method)
	require.NotNil(t, reply.Returns)
	assert.True(t, reply.Returns.Equal(model.Named("", "Message")))
	assert.True(t, reply.Params[0].Type.Equal(model.Primitive("string")), "quoted types parse the same")
	assert.Empty(t, reply.Throws)
}

func TestLoad_TypesAndBeans(t *testing.T) {
	t.Parallel()
	src := `
	type "User" {
		package = "example.com/users"

		method "getName" { returns = string }
		method "setName" {
			param "name" { type = string }
		}
		method "getTags" {
			returns = list(string)
			throws  = [IOError]
		}
		method "getSecret" {
			returns = string
			ignore  = true
		}
		field "id" {
			type   = int64
			access = "private"
		}
	}

	container "Users" {
		goal "bean" {
			bean = qual("example.com/users", "User")
			options {
				builder    = false
				to_builder = true
			}
		}
	}
	`

	m, err := load(t, src)

	require.NoError(t, err)
	require.Len(t, m.Types, 1)
	user := m.Types[0]
	assert.True(t, user.Name.Equal(model.Named("example.com/users", "User")))
	require.Len(t, user.Methods, 4)
	assert.Nil(t, user.Methods[1].Returns)
	assert.Equal(t, "name", user.Methods[1].Params[0].Name)
	assert.Equal(t, []model.TypeName{model.Named("", "IOError")}, user.Methods[2].Throws)
	assert.True(t, user.Methods[3].Ignore)
	require.Len(t, user.Fields, 1)
	assert.Equal(t, "private", user.Fields[0].Access)

	goal := m.Containers[0].Goals[0]
	assert.True(t, goal.Bean.Equal(user.Name))
	require.NotNil(t, goal.Options.Builder)
	assert.False(t, *goal.Options.Builder)
	assert.True(t, goal.Options.ToBuilder)
}

func TestLoad_MergesDirectory(t *testing.T) {
	t.Parallel()
	dir := writeFiles(t, map[string]string{
		"a.hcl":        `package = "p"` + "\n" + `type "A" {}`,
		"nested/b.hcl": `container "B" {}`,
		"ignored.txt":  `not hcl`,
	})

	m, err := NewLoader().Load(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, "p", m.Package)
	assert.Len(t, m.Types, 1)
	assert.Len(t, m.Containers, 1)
}

func TestLoad_Failures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "syntax error",
			src:  `container "A" {`,
			want: "failed to parse HCL file",
		},
		{
			name: "unknown goal kind",
			src:  `container "A" { goal "factory" {} }`,
			want: `unknown goal kind "factory"`,
		},
		{
			name: "unknown option",
			src:  `container "A" { goal "constructor" { options { lifecyle = "reuse" } } }`,
			want: "unknown option 'lifecyle'",
		},
		{
			name: "option of the wrong type",
			src:  `container "A" { goal "constructor" { options { updater = "sometimes" } } }`,
			want: "option 'updater'",
		},
		{
			name: "bad type constructor",
			src:  `container "A" { goal "constructor" { param "x" { type = tuple(string) } } }`,
			want: `unknown type constructor function "tuple"`,
		},
		{
			name: "missing param type",
			src:  `container "A" { goal "constructor" { param "x" {} } }`,
			want: "failed to decode HCL file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := load(t, tc.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad_ConflictingPackages(t *testing.T) {
	t.Parallel()
	dir := writeFiles(t, map[string]string{
		"a.hcl": `package = "one"`,
		"b.hcl": `package = "two"`,
	})

	_, err := NewLoader().Load(context.Background(), dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicting packages")
}

func TestLoad_MissingPath(t *testing.T) {
	t.Parallel()
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
