package goalctx

import (
	"github.com/specialistvlad/stepbuilder/internal/lifecycle"
	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/specialistvlad/stepbuilder/internal/output"
)

// ImplType names the builder implementation of the goal.
func (c *GoalContext) ImplType() model.TypeName {
	return c.Generated.Nested(model.Upcase(c.Name()) + "BuilderImpl")
}

// UpdaterType names the updater of the goal.
func (c *GoalContext) UpdaterType() model.TypeName {
	return c.Generated.Nested(model.Upcase(c.Name()) + "Updater")
}

// Fields are the fields holding the goal's values in a builder
// implementation or an updater.
func (c *GoalContext) Fields() []output.Field {
	var fields []output.Field
	details := c.Details()
	if model.IsInstance(c.Goal) {
		fields = append(fields, output.Field{Name: lifecycle.ReceiverField, Type: details.Owner, Access: model.AccessPrivate})
	}
	if _, ok := c.Goal.(*model.BeanGoal); ok {
		return append(fields, output.Field{Name: lifecycle.BeanField, Type: details.GoalType, Access: model.AccessPrivate})
	}
	for _, s := range c.Steps {
		fields = append(fields, output.Field{
			Name:   s.Parameter.ParamName(),
			Type:   s.Parameter.ParamType(),
			Access: model.AccessPrivate,
		})
	}
	return fields
}

// Store records value for p on the object x. Regular values go to a field,
// bean values through the setter.
func (c *GoalContext) Store(x output.Expr, p model.Parameter, value output.Expr) []output.Stmt {
	if ap, ok := p.(model.AccessorPair); ok {
		return []output.Stmt{output.ExprStmt{X: output.Call{
			X:      output.Select{X: x, Name: lifecycle.BeanField},
			Method: ap.Setter,
			Args:   []output.Expr{value},
		}}}
	}
	return []output.Stmt{output.Assign{Target: output.Select{X: x, Name: p.ParamName()}, Value: value}}
}

// Collection is the live collection behind a lone getter of the bean held by x.
func (c *GoalContext) Collection(x output.Expr, lg model.LoneGetter) output.Expr {
	return output.Call{X: output.Select{X: x, Name: lifecycle.BeanField}, Method: lg.Getter}
}

// Invocation produces the goal value from the values held by x: the goal
// call with arguments in declaration order, or the bean itself.
func (c *GoalContext) Invocation(x output.Expr) output.Expr {
	details := c.Details()
	if _, ok := c.Goal.(*model.BeanGoal); ok {
		return output.Select{X: x, Name: lifecycle.BeanField}
	}

	params := model.Parameters(c.Goal)
	args := make([]output.Expr, len(params))
	for i, p := range params {
		args[i] = output.Select{X: x, Name: p.ParamName()}
	}

	switch details.Kind {
	case model.GoalInstanceMethod:
		return output.Call{X: output.Select{X: x, Name: lifecycle.ReceiverField}, Method: details.MethodName, Args: args}
	case model.GoalStaticMethod:
		return output.StaticCall{Owner: details.Owner, Method: details.MethodName, Args: args}
	default:
		return output.New{Type: details.GoalType, Args: args}
	}
}

// Complete ends a method that performs the goal on the values held by x. A
// goal without a result is called for its effect and the method returns
// nothing.
func (c *GoalContext) Complete(x output.Expr) []output.Stmt {
	call := c.Invocation(x)
	if c.GoalType().IsZero() {
		return []output.Stmt{output.ExprStmt{X: call}, output.Return{}}
	}
	return []output.Stmt{output.Return{Value: call}}
}
