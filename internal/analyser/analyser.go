// Package analyser turns container declarations from the manifest into
// validated goal descriptions. Every goal of a container is checked before
// any of them is described, so a failing container produces nothing.
package analyser

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/stepbuilder/internal/config"
	"github.com/specialistvlad/stepbuilder/internal/ctxlog"
	"github.com/specialistvlad/stepbuilder/internal/failure"
	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/specialistvlad/stepbuilder/internal/projection"
)

// ErrNoGoals is returned for a container that declares no goals. Callers
// treat it as a warning and skip the container.
var ErrNoGoals = errors.New("container declares no goals")

// Analyser validates containers against the declared types of one run.
type Analyser struct {
	types    model.TypeLookup
	resolver *projection.Resolver
}

// New creates an Analyser backed by types.
func New(types model.TypeLookup) *Analyser {
	return &Analyser{types: types, resolver: projection.New(types)}
}

// Analyse validates c and describes its goals in declaration order.
func (a *Analyser) Analyse(ctx context.Context, c *config.Container) (*model.Container, error) {
	logger := ctxlog.FromContext(ctx).With("container", c.Name.String())

	if len(c.Goals) == 0 {
		return nil, ErrNoGoals
	}
	access, err := model.ParseAccess(c.Access)
	if err != nil {
		return nil, fmt.Errorf("container %s: %w", c.Name, err)
	}
	lifecycle, err := model.ParseLifecycle(c.Lifecycle)
	if err != nil {
		return nil, fmt.Errorf("container %s: %w", c.Name, err)
	}

	candidates := make([]candidate, len(c.Goals))
	for i, g := range c.Goals {
		cand, err := a.precheck(c, g)
		if err != nil {
			return nil, err
		}
		candidates[i] = cand
	}
	if err := checkNameConflicts(candidates); err != nil {
		return nil, err
	}
	if access == model.AccessPrivate {
		return nil, failure.New(failure.PrivateType, c.Name.String(), "")
	}

	out := &model.Container{
		Type:      c.Name,
		Generated: model.GeneratedTypeFor(c.Name),
		Access:    access,
		Lifecycle: lifecycle,
	}
	for i, g := range c.Goals {
		goal, err := a.describe(c, g, candidates[i], lifecycle)
		if err != nil {
			return nil, err
		}
		out.Goals = append(out.Goals, goal)
	}

	logger.Debug("Container analysed.", "goals", len(out.Goals), "lifecycle", lifecycle.String())
	return out, nil
}

// precheck runs the checks that need no type information and settles the
// goal name.
func (a *Analyser) precheck(c *config.Container, g *config.Goal) (candidate, error) {
	cand := candidate{name: g.Name, explicit: g.Name != "", method: g.Kind == config.GoalMethod}
	if !cand.explicit {
		cand.name = defaultName(c, g)
	}
	cand.element = goalElement(c, g, cand.name)

	access, err := model.ParseAccess(g.Access)
	if err != nil {
		return cand, fmt.Errorf("%s: %w", cand.element, err)
	}
	switch g.Kind {
	case config.GoalConstructor, config.GoalMethod:
		if access == model.AccessPrivate {
			return cand, failure.New(failure.PrivateMethod, cand.element, "")
		}
		if len(g.Params) == 0 {
			return cand, failure.New(failure.NotEnoughParameters, cand.element, "")
		}
		if g.Kind == config.GoalMethod && g.Method == "" {
			return cand, fmt.Errorf("%s: method goal names no method", cand.element)
		}
	case config.GoalBean:
		if len(g.Params) > 0 {
			return cand, fmt.Errorf("%s: bean goals discover their parameters and declare none", cand.element)
		}
	default:
		return cand, fmt.Errorf("%s: unknown goal kind %q", cand.element, g.Kind)
	}
	return cand, nil
}

// defaultName is the name of a goal that does not choose one: the goal
// type's simple name, or the method name of a method without a result.
func defaultName(c *config.Container, g *config.Goal) string {
	switch g.Kind {
	case config.GoalMethod:
		if g.Returns == nil {
			return g.Method
		}
		return model.Downcase(g.Returns.SimpleName())
	case config.GoalBean:
		return model.Downcase(beanType(c, g).SimpleName())
	default:
		return model.Downcase(c.Name.SimpleName())
	}
}

func beanType(c *config.Container, g *config.Goal) model.TypeName {
	if g.Bean.IsZero() {
		return c.Name
	}
	return g.Bean
}

func goalElement(c *config.Container, g *config.Goal, name string) string {
	el := c.Name.SimpleName() + "." + name
	if origin := g.Origin.String(); origin != "" {
		el += " (" + origin + ")"
	}
	return el
}

// describe validates one goal against the declared types and builds its
// description.
func (a *Analyser) describe(c *config.Container, g *config.Goal, cand candidate, defaultLifecycle model.Lifecycle) (model.GoalDescription, error) {
	opts, nullPolicy, err := goalOptions(g.Options, defaultLifecycle)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cand.element, err)
	}
	details := model.GoalDetails{Name: cand.name, Options: opts}

	if g.Kind == config.GoalBean {
		bean := beanType(c, g)
		params, err := a.resolver.Bean(bean, nullPolicy)
		if err != nil {
			return nil, err
		}
		details.Kind = model.GoalBean
		details.GoalType = bean
		details.Owner = bean
		goal, err := model.NewBeanGoal(details, params)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cand.element, err)
		}
		return goal, nil
	}

	details.Owner = c.Name
	switch {
	case g.Kind == config.GoalConstructor:
		if decl, ok := a.types.Lookup(c.Name); ok && decl.Abstract {
			return nil, failure.New(failure.AbstractConstructor, cand.element, "")
		}
		details.Kind = model.GoalConstructor
		details.GoalType = c.Name
	case g.Static:
		details.Kind = model.GoalStaticMethod
		details.MethodName = g.Method
	default:
		details.Kind = model.GoalInstanceMethod
		details.MethodName = g.Method
	}
	if g.Kind == config.GoalMethod && g.Returns != nil {
		details.GoalType = *g.Returns
	}

	params, err := regularParams(g.Params, nullPolicy, cand.element)
	if err != nil {
		return nil, err
	}

	if !opts.ToBuilder {
		goal, err := model.NewSimpleRegularGoal(details, params, g.Throws)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cand.element, err)
		}
		return goal, nil
	}
	if details.GoalType.IsZero() {
		return nil, failure.New(failure.NoProjection, cand.element, "a goal without a result has nothing to project")
	}
	for i := range params {
		proj, err := a.resolver.Regular(details.GoalType, params[i], paramElement(cand.element, params[i].Name))
		if err != nil {
			return nil, err
		}
		params[i].Projection = proj
	}
	goal, err := model.NewProjectedRegularGoal(details, params, g.Throws)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cand.element, err)
	}
	return goal, nil
}

func regularParams(declared []*config.Param, goalPolicy model.NullPolicy, element string) ([]model.RegularParameter, error) {
	seen := make(map[string]struct{}, len(declared))
	params := make([]model.RegularParameter, 0, len(declared))
	for _, p := range declared {
		if _, dup := seen[p.Name]; dup {
			return nil, failure.New(failure.DuplicateParameter, paramElement(element, p.Name), "")
		}
		seen[p.Name] = struct{}{}

		rp := model.RegularParameter{Name: p.Name, Type: p.Type}
		stepPolicy := model.NullDefault
		if p.Step != nil {
			policy, err := model.ParseNullPolicy(p.Step.NullPolicy)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", paramElement(element, p.Name), err)
			}
			stepPolicy = policy
			rp.StepPosition = p.Step.Position
		}
		rp.NullPolicy = model.ResolveNullPolicy(p.Type, goalPolicy, stepPolicy)
		params = append(params, rp)
	}
	return params, nil
}

func paramElement(goalElement, name string) string {
	return goalElement + "(" + name + ")"
}

// goalOptions resolves the written options against their defaults.
func goalOptions(o config.GoalOptions, defaultLifecycle model.Lifecycle) (model.GoalOptions, model.NullPolicy, error) {
	opts := model.DefaultGoalOptions()
	if o.Builder != nil {
		opts.Builder = *o.Builder
	}
	opts.Updater = o.Updater
	opts.ToBuilder = o.ToBuilder

	var err error
	if opts.BuilderAccess, err = model.ParseAccess(o.BuilderAccess); err != nil {
		return opts, 0, fmt.Errorf("builder access: %w", err)
	}
	if opts.UpdaterAccess, err = model.ParseAccess(o.UpdaterAccess); err != nil {
		return opts, 0, fmt.Errorf("updater access: %w", err)
	}
	if opts.ToBuilderAccess, err = model.ParseAccess(o.ToBuilderAccess); err != nil {
		return opts, 0, fmt.Errorf("to-builder access: %w", err)
	}
	opts.Lifecycle = defaultLifecycle
	if o.Lifecycle != "" {
		if opts.Lifecycle, err = model.ParseLifecycle(o.Lifecycle); err != nil {
			return opts, 0, err
		}
	}
	policy, err := model.ParseNullPolicy(o.NullPolicy)
	if err != nil {
		return opts, 0, err
	}
	return opts, policy, nil
}
