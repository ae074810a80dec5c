// Package lifecycle resolves a goal's instance lifecycle into the statements
// that obtain a builder or updater object in an entry method.
//
// Fresh instances are constructed on every call. Reused instances are fetched
// from the container's shared cache; the cached shell is kept, but its payload
// fields are always reinitialised.
package lifecycle

import (
	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/specialistvlad/stepbuilder/internal/output"
)

const (
	// CacheField is the name of the container's shared cache.
	CacheField = "_cache"
	// ReceiverField holds the receiver of an instance method goal.
	ReceiverField = "_receiver"
	// BeanField holds the bean under construction.
	BeanField = "_bean"
	// ReceiverParam is the preferred name of the entry method parameter
	// carrying the receiver. See ReceiverName.
	ReceiverParam = "receiver"
)

// Target is the variable an entry method initialises.
type Target struct {
	Var  string
	Type model.TypeName
	// Generated is the container's generated type, owner of the cache.
	Generated model.TypeName
	// Receiver names the entry parameter carrying the receiver of an
	// instance method goal.
	Receiver string
}

// FieldName is the cache field holding the reusable instance of impl.
func FieldName(impl model.TypeName) string {
	return model.Downcase(impl.SimpleName())
}

// ReceiverName is the entry parameter carrying the receiver of goal:
// ReceiverParam, suffixed with underscores until it names no parameter of
// goal.
func ReceiverName(goal model.GoalDescription) string {
	return unique(paramNames(goal), ReceiverParam)
}

// LocalVar returns base, suffixed with underscores until it names neither a
// parameter of goal, the receiver parameter, nor any of reserved.
func LocalVar(goal model.GoalDescription, base string, reserved ...string) string {
	taken := paramNames(goal)
	taken[ReceiverName(goal)] = true
	for _, r := range reserved {
		taken[r] = true
	}
	return unique(taken, base)
}

func paramNames(goal model.GoalDescription) map[string]bool {
	taken := make(map[string]bool)
	for _, p := range model.Parameters(goal) {
		taken[p.ParamName()] = true
	}
	return taken
}

func unique(taken map[string]bool, base string) string {
	name := base
	for taken[name] {
		name += "_"
	}
	return name
}

// InitStatement declares t.Var and returns the field mutations that reset its
// payload.
func InitStatement(goal model.GoalDescription, t Target) (output.Declare, []output.Stmt) {
	details := goal.Details()
	instance := model.IsInstance(goal)

	var mutations []output.Stmt
	decl := output.Declare{Name: t.Var, Type: t.Type}
	if details.Options.Lifecycle.Recycle() {
		decl.Value = output.CacheGet{Generated: t.Generated, Field: FieldName(t.Type)}
		if instance {
			mutations = append(mutations, output.Assign{
				Target: output.Select{X: output.Var(t.Var), Name: ReceiverField},
				Value:  output.Var(t.Receiver),
			})
		}
	} else {
		fresh := output.New{Type: t.Type}
		if instance {
			fresh.Fields = []output.FieldValue{{Name: ReceiverField, Value: output.Var(t.Receiver)}}
		}
		decl.Value = fresh
	}

	if bean, ok := goal.(*model.BeanGoal); ok {
		mutations = append(mutations, output.Assign{
			Target: output.Select{X: output.Var(t.Var), Name: BeanField},
			Value:  output.New{Type: bean.GoalType},
		})
	}
	return decl, mutations
}

// Statements is InitStatement flattened into one list.
func Statements(goal model.GoalDescription, t Target) []output.Stmt {
	decl, mutations := InitStatement(goal, t)
	return append([]output.Stmt{decl}, mutations...)
}

// CacheFields returns the fields backing the shared cache: one static cache
// field and one instance field per reusable type. The result is empty when
// nothing is reused.
func CacheFields(generated model.TypeName, reusable []model.TypeName) []output.Field {
	if len(reusable) == 0 {
		return nil
	}
	fields := []output.Field{{
		Name:   CacheField,
		Type:   generated,
		Access: model.AccessPrivate,
		Static: true,
		Init:   output.New{Type: generated},
	}}
	for _, impl := range reusable {
		fields = append(fields, output.Field{
			Name:   FieldName(impl),
			Type:   impl,
			Access: model.AccessPrivate,
			Init:   output.New{Type: impl},
		})
	}
	return fields
}
