// Package steporder arranges a goal's parameters into the order of its step
// chain. Parameters with an explicit position are placed first; the rest fill
// the remaining slots in the order they are given.
package steporder

import (
	"sort"

	"github.com/specialistvlad/stepbuilder/internal/failure"
	"github.com/specialistvlad/stepbuilder/internal/model"
)

// Order returns params arranged into step order. An explicit position at or
// beyond len(params) fails with STEP_OUT_OF_BOUNDS; two parameters claiming the
// same position fail with STEP_DUPLICATE. element names the goal in errors.
func Order[P model.Parameter](params []P, element string) ([]P, error) {
	slots := make([]*P, len(params))
	for i := range params {
		pos, ok := params[i].Position()
		if !ok || pos < 0 {
			continue
		}
		if pos >= len(params) {
			return nil, failure.New(failure.StepOutOfBounds, paramElement(element, params[i]),
				"position %d, but the goal has %d parameters", pos, len(params))
		}
		if slots[pos] != nil {
			return nil, failure.New(failure.StepDuplicate, paramElement(element, params[i]),
				"position %d is already taken by %s", pos, (*slots[pos]).ParamName())
		}
		slots[pos] = &params[i]
	}

	next := 0
	for i := range params {
		if pos, ok := params[i].Position(); ok && pos >= 0 {
			continue
		}
		for slots[next] != nil {
			next++
		}
		slots[next] = &params[i]
	}

	out := make([]P, len(params))
	for i, p := range slots {
		out[i] = *p
	}
	return out, nil
}

// Alphabetic returns a copy of params sorted by name. Bean goals have no
// declaration order worth keeping, so their implicit steps are alphabetic.
func Alphabetic[P model.Parameter](params []P) []P {
	out := append([]P(nil), params...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ParamName() < out[j].ParamName()
	})
	return out
}

// Goal returns the parameters of goal in step order: declaration order for
// regular goals, alphabetic order for bean goals.
func Goal(goal model.GoalDescription) ([]model.Parameter, error) {
	element := goal.Details().Name
	switch g := goal.(type) {
	case *model.SimpleRegularGoal:
		ordered, err := Order(g.Parameters, element)
		return regular(ordered), err
	case *model.ProjectedRegularGoal:
		ordered, err := Order(g.Parameters, element)
		return regular(ordered), err
	case *model.BeanGoal:
		ordered, err := Order(Alphabetic(g.Parameters), element)
		if err != nil {
			return nil, err
		}
		out := make([]model.Parameter, len(ordered))
		for i, p := range ordered {
			out[i] = p
		}
		return out, nil
	}
	panic("steporder: unknown goal description")
}

func regular(params []model.RegularParameter) []model.Parameter {
	if params == nil {
		return nil
	}
	out := make([]model.Parameter, len(params))
	for i, p := range params {
		out[i] = p
	}
	return out
}

func paramElement(goal string, p model.Parameter) string {
	return goal + "(" + p.ParamName() + ")"
}
