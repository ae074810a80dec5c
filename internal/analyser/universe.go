package analyser

import (
	"fmt"

	"github.com/specialistvlad/stepbuilder/internal/config"
	"github.com/specialistvlad/stepbuilder/internal/model"
)

// Universe declares every type of m, containers included.
func Universe(m *config.Model) (*model.Universe, error) {
	decls := make([]*model.TypeDecl, 0, len(m.Types)+len(m.Containers))
	for _, t := range m.Types {
		d, err := typeDecl(t)
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	for _, c := range m.Containers {
		d, err := typeDecl(&c.Type)
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return model.NewUniverse(decls...)
}

func typeDecl(t *config.Type) (*model.TypeDecl, error) {
	access, err := model.ParseAccess(t.Access)
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", t.Name, err)
	}
	d := &model.TypeDecl{
		Name:               t.Name,
		Access:             access,
		Abstract:           t.Abstract,
		DefaultConstructor: !t.NoDefaultConstructor && !t.Abstract,
		Collection:         t.Collection,
	}
	for _, m := range t.Methods {
		md, err := methodDecl(m)
		if err != nil {
			return nil, fmt.Errorf("type %s, method %s: %w", t.Name, m.Name, err)
		}
		d.Methods = append(d.Methods, md)
	}
	for _, f := range t.Fields {
		fa, err := model.ParseAccess(f.Access)
		if err != nil {
			return nil, fmt.Errorf("type %s, field %s: %w", t.Name, f.Name, err)
		}
		d.Fields = append(d.Fields, model.FieldDecl{Name: f.Name, Type: f.Type, Access: fa, Static: f.Static})
	}
	return d, nil
}

func methodDecl(m *config.Method) (model.MethodDecl, error) {
	access, err := model.ParseAccess(m.Access)
	if err != nil {
		return model.MethodDecl{}, err
	}
	step, err := stepAnnotation(m.Step)
	if err != nil {
		return model.MethodDecl{}, err
	}
	md := model.MethodDecl{
		Name:    m.Name,
		Access:  access,
		Static:  m.Static,
		Returns: m.Returns,
		Thrown:  m.Throws,
		Ignore:  m.Ignore,
		Step:    step,
	}
	for _, p := range m.Params {
		ps, err := stepAnnotation(p.Step)
		if err != nil {
			return model.MethodDecl{}, fmt.Errorf("param %s: %w", p.Name, err)
		}
		md.Params = append(md.Params, model.ParamDecl{Name: p.Name, Type: p.Type, Step: ps})
	}
	return md, nil
}

func stepAnnotation(s *config.Step) (*model.StepAnnotation, error) {
	if s == nil {
		return nil, nil
	}
	policy, err := model.ParseNullPolicy(s.NullPolicy)
	if err != nil {
		return nil, err
	}
	return &model.StepAnnotation{Position: s.Position, NullPolicy: policy}, nil
}
