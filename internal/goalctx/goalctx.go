// Package goalctx assembles a goal's step chain. Steps are built from the
// last parameter backwards, since each step's interface must name the step
// that follows it.
package goalctx

import (
	"context"
	"fmt"

	"github.com/specialistvlad/stepbuilder/internal/ctxlog"
	"github.com/specialistvlad/stepbuilder/internal/dag"
	"github.com/specialistvlad/stepbuilder/internal/failure"
	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/specialistvlad/stepbuilder/internal/steporder"
)

// GoalContext is a goal together with everything derived for it.
type GoalContext struct {
	Goal model.GoalDescription
	// Generated is the container's generated type.
	Generated model.TypeName
	// Contract groups the goal's step interfaces.
	Contract model.TypeName
	Steps    []model.Step
}

// Details is shorthand for c.Goal.Details().
func (c *GoalContext) Details() model.GoalDetails {
	return c.Goal.Details()
}

// Name returns the goal name.
func (c *GoalContext) Name() string {
	return c.Goal.Details().Name
}

// GoalType returns the type the goal produces.
func (c *GoalContext) GoalType() model.TypeName {
	return c.Goal.Details().GoalType
}

// Lifecycle returns the goal's instance lifecycle.
func (c *GoalContext) Lifecycle() model.Lifecycle {
	return c.Goal.Details().Options.Lifecycle
}

// ContractType names the contract of goal inside generated.
func ContractType(generated model.TypeName, goalName string) model.TypeName {
	return generated.Nested(model.Upcase(goalName) + "Builder")
}

// Build orders the goal's parameters and threads the step types through them.
func Build(ctx context.Context, generated model.TypeName, goal model.GoalDescription) (*GoalContext, error) {
	logger := ctxlog.FromContext(ctx)
	details := goal.Details()

	ordered, err := steporder.Goal(goal)
	if err != nil {
		return nil, err
	}
	if len(ordered) == 0 {
		return nil, failure.New(failure.NotEnoughParameters, details.Name, "")
	}

	contract := ContractType(generated, details.Name)
	steps := make([]model.Step, len(ordered))
	nextType := details.GoalType
	for i := len(ordered) - 1; i >= 0; i-- {
		p := ordered[i]
		thisType := contract.Nested(model.Upcase(p.ParamName()))
		steps[i] = model.Step{
			ThisType:           thisType,
			NextType:           nextType,
			Parameter:          p,
			DeclaredExceptions: declaredExceptions(goal, p, i == len(ordered)-1),
			EmptyOption:        emptyOption(p),
		}
		nextType = thisType
	}

	if err := verifyChain(steps, details.GoalType); err != nil {
		return nil, fmt.Errorf("goal %s: %w", details.Name, err)
	}
	logger.Debug("Step chain built.", "goal", details.Name, "steps", len(steps), "first", steps[0].ThisType.SimpleName())

	return &GoalContext{
		Goal:      goal,
		Generated: generated,
		Contract:  contract,
		Steps:     steps,
	}, nil
}

// declaredExceptions are the exceptions a step method may raise: the goal's
// own on the last step of a regular goal, the accessor's on bean steps.
func declaredExceptions(goal model.GoalDescription, p model.Parameter, last bool) []model.TypeName {
	switch bp := p.(type) {
	case model.AccessorPair:
		return bp.SetterThrows
	case model.LoneGetter:
		return bp.GetterThrows
	}
	if last {
		return goal.ThrownTypes()
	}
	return nil
}

func emptyOption(p model.Parameter) *model.CollectionInfo {
	switch bp := p.(type) {
	case model.LoneGetter:
		return nil
	case model.AccessorPair:
		return model.EmptyOptionFor(bp.Name, bp.Type)
	}
	return model.EmptyOptionFor(p.ParamName(), p.ParamType())
}

// verifyChain checks that the steps link into one acyclic path ending at the
// goal type.
func verifyChain(steps []model.Step, goalType model.TypeName) error {
	g := dag.New()
	g.AddNode(goalType.String())
	for _, s := range steps {
		g.AddNode(s.ThisType.String())
	}
	if g.Len() != len(steps)+1 {
		return failure.New(failure.DuplicateParameter, "",
			"%d steps map to %d distinct step types", len(steps), g.Len()-1)
	}
	for _, s := range steps {
		if err := g.AddEdge(s.ThisType.String(), s.NextType.String()); err != nil {
			return err
		}
	}
	path, err := g.Path()
	if err != nil {
		return err
	}
	if path[len(path)-1] != goalType.String() {
		return fmt.Errorf("step chain ends at %s instead of %s", path[len(path)-1], goalType)
	}
	return nil
}
