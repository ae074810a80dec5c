// Package projection discovers how a goal's parameters are read back from a
// built value. Regular goals need a getter-like method or a field per
// parameter; bean goals need a getter matched with a setter, or a lone getter
// returning a collection that elements can be added to.
package projection

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/specialistvlad/stepbuilder/internal/failure"
	"github.com/specialistvlad/stepbuilder/internal/model"
)

// Resolver resolves projections against declared types.
type Resolver struct {
	types model.TypeLookup
}

// New creates a Resolver backed by types.
func New(types model.TypeLookup) *Resolver {
	return &Resolver{types: types}
}

// Regular finds the projection of param on values of goalType. Methods are
// searched first, by the names get<Name>, is<Name> and <name>; then a field
// with the same name and exactly the same type.
func (r *Resolver) Regular(goalType model.TypeName, param model.RegularParameter, element string) (model.ProjectionInfo, error) {
	decl, ok := r.types.Lookup(goalType)
	if !ok {
		return nil, failure.New(failure.NoProjection, element, "type %s is not declared", goalType)
	}
	for _, name := range candidateNames(param.Name) {
		for _, m := range decl.Methods {
			if m.Name == name && isProjectionMethod(m) {
				return model.ProjectionMethod{MethodName: m.Name, ThrownTypes: m.Thrown}, nil
			}
		}
	}
	for _, f := range decl.Fields {
		if f.Name == param.Name && f.Access != model.AccessPrivate && !f.Static && f.Type.Equal(param.Type) {
			return model.FieldAccess{FieldName: f.Name}, nil
		}
	}
	return nil, failure.New(failure.NoProjection, element, "no getter or field for %q on %s", param.Name, goalType)
}

func candidateNames(name string) []string {
	up := model.Upcase(name)
	return []string{"get" + up, "is" + up, name}
}

func isProjectionMethod(m model.MethodDecl) bool {
	return m.Access != model.AccessPrivate && !m.Static && len(m.Params) == 0 && m.Returns != nil
}

// Bean discovers the accessor pairs and lone getters of beanType, in method
// declaration order. goalPolicy is the goal-level null policy.
func (r *Resolver) Bean(beanType model.TypeName, goalPolicy model.NullPolicy) ([]model.BeanParameter, error) {
	decl, ok := r.types.Lookup(beanType)
	if !ok {
		return nil, failure.New(failure.UnknownType, beanType.String(), "bean type is not declared")
	}
	element := beanType.SimpleName()
	if decl.Abstract {
		return nil, failure.New(failure.BeanAbstractClass, element, "")
	}
	if !decl.DefaultConstructor {
		return nil, failure.New(failure.BeanNoDefaultConstructor, element, "")
	}
	if decl.Access != model.AccessPublic {
		return nil, failure.New(failure.BeanPrivateClass, element, "")
	}

	setters, err := r.setters(decl)
	if err != nil {
		return nil, err
	}

	var params []model.BeanParameter
	for _, getter := range decl.Methods {
		if !getter.IsGetterShaped() {
			continue
		}
		if getter.Ignore {
			if getter.Step != nil {
				return nil, failure.New(failure.IgnoreAndStep, methodElement(decl, getter), "")
			}
			continue
		}
		var p model.BeanParameter
		if setter, ok := setters[accessorSuffix(getter.Name)]; ok {
			p, err = accessorPair(decl, getter, setter, goalPolicy)
		} else {
			p, err = r.loneGetter(decl, getter, goalPolicy)
		}
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	if len(params) == 0 {
		return nil, failure.New(failure.BeanNoAccessorPairs, element, "")
	}
	return params, nil
}

// setters indexes the setter-shaped methods of decl by the name following set.
func (r *Resolver) setters(decl *model.TypeDecl) (map[string]model.MethodDecl, error) {
	out := make(map[string]model.MethodDecl)
	for _, m := range decl.Methods {
		if !isSetterShaped(m) {
			continue
		}
		if len(m.Thrown) > 0 {
			return nil, failure.New(failure.SetterException, methodElement(decl, m), "")
		}
		if m.Step != nil {
			return nil, failure.New(failure.StepOnSetter, methodElement(decl, m), "")
		}
		if m.Ignore {
			return nil, failure.New(failure.IgnoreOnSetter, methodElement(decl, m), "")
		}
		out[m.Name[len("set"):]] = m
	}
	return out, nil
}

func isSetterShaped(m model.MethodDecl) bool {
	if m.Access != model.AccessPublic || m.Static || len(m.Params) != 1 || m.Returns != nil {
		return false
	}
	if len(m.Name) < 4 || m.Name[:3] != "set" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(m.Name[3:])
	return unicode.IsUpper(r)
}

func accessorSuffix(getter string) string {
	if len(getter) > 3 && getter[:3] == "get" {
		return getter[3:]
	}
	return getter[2:]
}

func accessorPair(decl *model.TypeDecl, getter, setter model.MethodDecl, goalPolicy model.NullPolicy) (model.BeanParameter, error) {
	getterType := *getter.Returns
	if !setter.Params[0].Type.Equal(getterType) {
		return nil, failure.New(failure.GetterSetterTypeMismatch, methodElement(decl, setter),
			"getter returns %s, setter accepts %s", getterType, setter.Params[0].Type)
	}
	if len(getter.Thrown) > 0 {
		return nil, failure.New(failure.GetterException, methodElement(decl, getter), "")
	}
	stepPolicy, position := annotation(getter.Step)
	return model.AccessorPair{
		Name:         model.PropertyName(getter.Name),
		Type:         getterType,
		Getter:       getter.Name,
		Setter:       setter.Name,
		NullPolicy:   model.ResolveNullPolicy(getterType, goalPolicy, stepPolicy),
		GetterThrows: getter.Thrown,
		SetterThrows: setter.Thrown,
		StepPosition: position,
	}, nil
}

func (r *Resolver) loneGetter(decl *model.TypeDecl, getter model.MethodDecl, goalPolicy model.NullPolicy) (model.BeanParameter, error) {
	collection := *getter.Returns
	if !r.types.IsCollection(collection) {
		return nil, failure.New(failure.CouldNotFindSetter, methodElement(decl, getter), "")
	}
	var elem model.TypeName
	switch len(collection.Args) {
	case 0:
		elem = model.AnyType
	case 1:
		elem = collection.Args[0]
	default:
		return nil, failure.New(failure.BadGenerics, methodElement(decl, getter),
			"collection %s has %d type arguments", collection, len(collection.Args))
	}
	stepPolicy, position := annotation(getter.Step)
	return model.LoneGetter{
		Name:         model.PropertyName(getter.Name),
		Collection:   collection,
		Element:      elem,
		Getter:       getter.Name,
		NullPolicy:   model.ResolveNullPolicy(collection, goalPolicy, stepPolicy),
		GetterThrows: getter.Thrown,
		StepPosition: position,
	}, nil
}

func annotation(step *model.StepAnnotation) (model.NullPolicy, *int) {
	if step == nil {
		return model.NullDefault, nil
	}
	return step.NullPolicy, step.Position
}

func methodElement(decl *model.TypeDecl, m model.MethodDecl) string {
	return fmt.Sprintf("%s.%s", decl.Name.SimpleName(), m.Name)
}
