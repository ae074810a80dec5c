package render

import (
	"bytes"
	"context"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/specialistvlad/stepbuilder/internal/generator"
	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/specialistvlad/stepbuilder/internal/output"
	"github.com/specialistvlad/stepbuilder/internal/registry"
	"github.com/specialistvlad/stepbuilder/modules/builder"
	"github.com/specialistvlad/stepbuilder/modules/tobuilder"
	"github.com/specialistvlad/stepbuilder/modules/updater"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	str     = model.Primitive("string")
	integer = model.Primitive("int")
	message = model.Named("", "Message")
	user    = model.Named("example.com/users", "User")
	order   = model.Named("example.com/shop", "Order")
)

func generate(t *testing.T, c *model.Container) *output.GeneratorOutput {
	t.Helper()
	reg := registry.New()
	for _, m := range []registry.Module{&builder.Module{}, &tobuilder.Module{}, &updater.Module{}} {
		m.Register(reg)
	}
	out, err := generator.New(reg).Generate(context.Background(), c)
	require.NoError(t, err)
	return out
}

func renderString(t *testing.T, out *output.GeneratorOutput) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, out, "builders"))
	return buf.String()
}

func TestWrite_StepBuilder(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	goal := &model.SimpleRegularGoal{
		GoalDetails: model.GoalDetails{
			Name: "create", GoalType: message, Kind: model.GoalStaticMethod,
			Owner: message, MethodName: "create", Options: model.DefaultGoalOptions(),
		},
		Parameters: []model.RegularParameter{
			{Name: "kevin", Type: str, NullPolicy: model.NullAllow},
			{Name: "chantal", Type: str, NullPolicy: model.NullAllow},
			{Name: "justin", Type: str, NullPolicy: model.NullAllow},
		},
	}
	out := generate(t, &model.Container{Type: message, Generated: model.GeneratedTypeFor(message), Goals: []model.GoalDescription{goal}})

	// --- Act ---
	src := renderString(t, out)

	// --- Assert ---
	for _, want := range []string{
		"// " + Header,
		"package builders",
		"type MessageBuilders struct{}",
		"func MessageBuildersCreateBuilder() MessageBuildersCreateBuilderKevin {",
		"b := &messageBuildersCreateBuilderImpl{}",
		"type MessageBuildersCreateBuilderKevin interface {",
		"Kevin(kevin string) MessageBuildersCreateBuilderChantal",
		"var _ MessageBuildersCreateBuilderKevin = (*messageBuildersCreateBuilderImpl)(nil)",
		"func (c *messageBuildersCreateBuilderImpl) Justin(justin string) *Message {",
		"c.justin = justin",
		"return Create(c.kevin, c.chantal, c.justin)",
	} {
		assert.Contains(t, src, want)
	}
	assert.NotContains(t, src, "Cache")
}

func TestWrite_ReusedBeanWithToBuilder(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	opts := model.DefaultGoalOptions()
	opts.ToBuilder = true
	opts.Lifecycle = model.LifecycleReuseInstances
	goal := &model.BeanGoal{
		GoalDetails: model.GoalDetails{Name: "user", GoalType: user, Kind: model.GoalBean, Owner: user, Options: opts},
		Parameters: []model.BeanParameter{
			model.LoneGetter{Name: "bar", Collection: model.List(integer), Element: integer, Getter: "getBar", NullPolicy: model.NullReject},
			model.AccessorPair{Name: "foo", Type: str, Getter: "getFoo", Setter: "setFoo", NullPolicy: model.NullAllow},
		},
	}
	out := generate(t, &model.Container{Type: user, Generated: model.GeneratedTypeFor(user), Goals: []model.GoalDescription{goal}})

	// --- Act ---
	src := renderString(t, out)

	// --- Assert ---
	for _, want := range []string{
		`users "example.com/users"`,
		"var userBuildersCache = &UserBuilders{",
		"userBuilderImpl: &userBuildersUserBuilderImpl{}",
		"b := userBuildersCache.userBuilderImpl",
		"b._bean = new(users.User)",
		`panic("bar must not be nil")`,
		"dst := u._bean.GetBar()",
		"for _, barElem := range bar {",
		"*dst = append(*dst, barElem)",
		"func UserBuildersUserToBuilder(user *users.User) *UserBuildersUserUpdater {",
		"for _, barElem := range *user.GetBar() {",
		"updater._bean.SetFoo(user.GetFoo())",
	} {
		assert.Contains(t, src, want)
	}
}

func TestWrite_UpdaterEntryNamedLikeAConstructor(t *testing.T) {
	t.Parallel()
	opts := model.DefaultGoalOptions()
	opts.Updater = true
	goal := &model.SimpleRegularGoal{
		GoalDetails: model.GoalDetails{
			Name: "create", GoalType: message, Kind: model.GoalConstructor, Owner: message, Options: opts,
		},
		Parameters: []model.RegularParameter{{Name: "body", Type: str, NullPolicy: model.NullAllow}},
	}
	out := generate(t, &model.Container{Type: message, Generated: model.GeneratedTypeFor(message), Goals: []model.GoalDescription{goal}})

	src := renderString(t, out)

	assert.Contains(t, src, "type MessageBuildersCreateUpdater struct {")
	assert.Contains(t, src, "func NewMessageBuildersCreateUpdater(body string) *MessageBuildersCreateUpdater {")
	assert.Contains(t, src, "func (c *MessageBuildersCreateUpdater) Done() *Message {")
}

func TestWrite_Statements(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	generated := model.GeneratedTypeFor(order)
	impl := generated.Nested("PlaceBuilderImpl")
	tags := model.Set(str)
	bean := output.Select{X: output.This{}, Name: "_bean"}
	out := &output.GeneratorOutput{
		Container: order,
		Generated: generated,
		Methods: []output.BuilderMethod{{GoalName: "place", Method: output.Method{
			Name:    "place",
			Static:  true,
			Params:  []output.Param{{Name: "type", Type: str}},
			Returns: order,
			Body:    []output.Stmt{output.Return{Value: output.New{Type: order, Args: []output.Expr{output.Var("type")}}}},
		}}},
		Types: []output.TypeDef{{
			Name:   impl,
			Kind:   output.KindStruct,
			Access: model.AccessPrivate,
			Fields: []output.Field{
				{Name: "_bean", Type: order, Access: model.AccessPrivate},
				{Name: "type", Type: str, Access: model.AccessPrivate},
				{Name: "tags", Type: tags, Access: model.AccessPrivate},
			},
			Methods: []output.Method{
				{
					Name:   "type",
					Params: []output.Param{{Name: "type", Type: str}},
					Thrown: []model.TypeName{model.Named("example.com/shop", "Invalid")},
					Body: []output.Stmt{
						output.Assign{Target: output.ThisField("type"), Value: output.Var("type")},
						output.ExprStmt{X: output.Call{X: bean, Method: "place"}},
						output.Return{},
					},
				},
				{
					Name:   "tags",
					Params: []output.Param{{Name: "tags", Type: tags}},
					Body: []output.Stmt{output.ForEachAdd{
						Source:     output.Var("tags"),
						SourceType: tags,
						Target:     output.Call{X: bean, Method: "getTags"},
						TargetType: tags,
						Var:        "tagsElem",
					}},
				},
				{
					Name: "emptyTags",
					Body: []output.Stmt{output.Assign{Target: output.ThisField("tags"), Value: output.EmptyCollection{Type: tags}}},
				},
			},
		}},
	}

	// --- Act ---
	src := renderString(t, out)

	// --- Assert ---
	for _, want := range []string{
		`shop "example.com/shop"`,
		"func OrderBuildersPlace(type_ string) *shop.Order {",
		"return shop.NewOrder(type_)",
		"// Type passes on failures of user code: shop.Invalid.",
		"func (p *orderBuildersPlaceBuilderImpl) Type(type_ string) {",
		"p.type_ = type_",
		"p._bean.Place()",
		"dst := p._bean.GetTags()",
		"*dst = map[string]struct{}{}",
		"for tagsElem := range tags {",
		"(*dst)[tagsElem] = struct{}{}",
		"p.tags = map[string]struct{}{}",
	} {
		assert.Contains(t, src, want)
	}
}

func TestFile_Failures(t *testing.T) {
	t.Parallel()
	generated := model.GeneratedTypeFor(message)

	testCases := []struct {
		name string
		out  *output.GeneratorOutput
		want string
	}{
		{
			name: "flattened names collide",
			out: &output.GeneratorOutput{
				Container: message,
				Generated: generated,
				Types: []output.TypeDef{
					{Name: generated.Nested("Kevin"), Kind: output.KindInterface},
					{Name: model.Named("", "MessageBuildersKevin"), Kind: output.KindInterface},
				},
			},
			want: "both flatten to MessageBuildersKevin",
		},
		{
			name: "receiver outside a method",
			out: &output.GeneratorOutput{
				Container: message,
				Generated: generated,
				Methods: []output.BuilderMethod{{GoalName: "create", Method: output.Method{
					Name: "createBuilder", Static: true, Body: []output.Stmt{output.Return{Value: output.This{}}},
					Returns: message,
				}}},
			},
			want: "receiver used outside a method",
		},
		{
			name: "empty value of a user type",
			out: &output.GeneratorOutput{
				Container: message,
				Generated: generated,
				Methods: []output.BuilderMethod{{GoalName: "create", Method: output.Method{
					Name: "createBuilder", Static: true, Returns: message,
					Body: []output.Stmt{output.Return{Value: output.EmptyCollection{Type: message}}},
				}}},
			},
			want: "no empty value for Message",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := File(tc.out, "builders")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

// messageStubs declares the user types the mixed container below builds.
const messageStubs = `package builders

type Message struct{}

func NewMessage(body string, tags []string) *Message { return &Message{} }

func (m *Message) Reply(receiver, typ string) *Message { return m }

type User struct {
	foo string
	bar []int
}

func (u *User) GetFoo() string    { return u.foo }
func (u *User) SetFoo(foo string) { u.foo = foo }
func (u *User) GetBar() *[]int    { return &u.bar }
`

func TestWrite_MixedContainerTypeChecks(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	local := model.Named("", "User")
	create := model.DefaultGoalOptions()
	create.Updater = true
	reply := model.DefaultGoalOptions()
	reply.Updater = true
	reply.Lifecycle = model.LifecycleReuseInstances
	bean := model.DefaultGoalOptions()
	bean.ToBuilder = true
	bean.Lifecycle = model.LifecycleReuseInstances

	goals := []model.GoalDescription{
		&model.SimpleRegularGoal{
			GoalDetails: model.GoalDetails{Name: "create", GoalType: message, Kind: model.GoalConstructor, Owner: message, Options: create},
			Parameters: []model.RegularParameter{
				{Name: "body", Type: str, NullPolicy: model.NullAllow},
				{Name: "tags", Type: model.List(str), NullPolicy: model.NullReject},
			},
		},
		&model.SimpleRegularGoal{
			GoalDetails: model.GoalDetails{
				Name: "reply", GoalType: message, Kind: model.GoalInstanceMethod,
				Owner: message, MethodName: "reply", Options: reply,
			},
			Parameters: []model.RegularParameter{
				{Name: "receiver", Type: str, NullPolicy: model.NullAllow},
				{Name: "type", Type: str, NullPolicy: model.NullAllow},
			},
		},
		&model.BeanGoal{
			GoalDetails: model.GoalDetails{Name: "user", GoalType: local, Kind: model.GoalBean, Owner: local, Options: bean},
			Parameters: []model.BeanParameter{
				model.LoneGetter{Name: "bar", Collection: model.List(integer), Element: integer, Getter: "getBar", NullPolicy: model.NullReject},
				model.AccessorPair{Name: "foo", Type: str, Getter: "getFoo", Setter: "setFoo", NullPolicy: model.NullAllow},
			},
		},
	}
	out := generate(t, &model.Container{Type: message, Generated: model.GeneratedTypeFor(message), Goals: goals})
	src := renderString(t, out)

	fset := token.NewFileSet()
	generatedFile, err := parser.ParseFile(fset, "message_builders.go", src, 0)
	require.NoError(t, err, src)
	stubFile, err := parser.ParseFile(fset, "stubs.go", messageStubs, 0)
	require.NoError(t, err)

	// --- Act ---
	conf := types.Config{Importer: importer.Default()}
	_, err = conf.Check("builders", fset, []*ast.File{generatedFile, stubFile}, nil)

	// --- Assert ---
	require.NoError(t, err, src)
	assert.Contains(t, src, "receiver_ *Message, receiver string, type_ string")
}
