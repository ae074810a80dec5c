// Package manifest loads manifests written as TOML or YAML and dispatches
// .hcl files to the HCL loader. All formats describe the same model; TOML and
// YAML spell types as strings in the HCL type notation, e.g. "list(string)".
package manifest

import (
	"context"
	"fmt"

	"github.com/specialistvlad/stepbuilder/internal/config"
	"github.com/specialistvlad/stepbuilder/internal/hcl"
	"github.com/specialistvlad/stepbuilder/internal/model"
)

// document is the schema shared by the TOML and YAML formats.
type document struct {
	Package    string         `toml:"package" yaml:"package"`
	Types      []typeDoc      `toml:"type" yaml:"types"`
	Containers []containerDoc `toml:"container" yaml:"containers"`
}

type typeDoc struct {
	Name                 string      `toml:"name" yaml:"name"`
	Package              string      `toml:"package" yaml:"package"`
	Access               string      `toml:"access" yaml:"access"`
	Abstract             bool        `toml:"abstract" yaml:"abstract"`
	NoDefaultConstructor bool        `toml:"no_default_constructor" yaml:"no_default_constructor"`
	Collection           bool        `toml:"collection" yaml:"collection"`
	Methods              []methodDoc `toml:"method" yaml:"methods"`
	Fields               []fieldDoc  `toml:"field" yaml:"fields"`
}

type containerDoc struct {
	Name                 string      `toml:"name" yaml:"name"`
	Package              string      `toml:"package" yaml:"package"`
	Access               string      `toml:"access" yaml:"access"`
	Abstract             bool        `toml:"abstract" yaml:"abstract"`
	NoDefaultConstructor bool        `toml:"no_default_constructor" yaml:"no_default_constructor"`
	Lifecycle            string      `toml:"lifecycle" yaml:"lifecycle"`
	Methods              []methodDoc `toml:"method" yaml:"methods"`
	Fields               []fieldDoc  `toml:"field" yaml:"fields"`
	Goals                []goalDoc   `toml:"goal" yaml:"goals"`
}

type methodDoc struct {
	Name    string     `toml:"name" yaml:"name"`
	Access  string     `toml:"access" yaml:"access"`
	Static  bool       `toml:"static" yaml:"static"`
	Returns string     `toml:"returns" yaml:"returns"`
	Throws  []string   `toml:"throws" yaml:"throws"`
	Ignore  bool       `toml:"ignore" yaml:"ignore"`
	Params  []paramDoc `toml:"param" yaml:"params"`
	Step    *stepDoc   `toml:"step" yaml:"step"`
}

type paramDoc struct {
	Name string   `toml:"name" yaml:"name"`
	Type string   `toml:"type" yaml:"type"`
	Step *stepDoc `toml:"step" yaml:"step"`
}

type stepDoc struct {
	Position   *int   `toml:"position" yaml:"position"`
	NullPolicy string `toml:"null_policy" yaml:"null_policy"`
}

type fieldDoc struct {
	Name   string `toml:"name" yaml:"name"`
	Type   string `toml:"type" yaml:"type"`
	Access string `toml:"access" yaml:"access"`
	Static bool   `toml:"static" yaml:"static"`
}

type goalDoc struct {
	Kind    string     `toml:"kind" yaml:"kind"`
	Name    string     `toml:"name" yaml:"name"`
	Method  string     `toml:"method" yaml:"method"`
	Static  bool       `toml:"static" yaml:"static"`
	Access  string     `toml:"access" yaml:"access"`
	Returns string     `toml:"returns" yaml:"returns"`
	Bean    string     `toml:"bean" yaml:"bean"`
	Throws  []string   `toml:"throws" yaml:"throws"`
	Params  []paramDoc `toml:"param" yaml:"params"`
	Options optionsDoc `toml:"options" yaml:"options"`
}

type optionsDoc struct {
	Builder         *bool  `toml:"builder" yaml:"builder"`
	Updater         bool   `toml:"updater" yaml:"updater"`
	ToBuilder       bool   `toml:"to_builder" yaml:"to_builder"`
	BuilderAccess   string `toml:"builder_access" yaml:"builder_access"`
	UpdaterAccess   string `toml:"updater_access" yaml:"updater_access"`
	ToBuilderAccess string `toml:"to_builder_access" yaml:"to_builder_access"`
	Lifecycle       string `toml:"lifecycle" yaml:"lifecycle"`
	NullPolicy      string `toml:"null_policy" yaml:"null_policy"`
}

// positions carries the source lines of containers and goals, indexed like
// the document. Formats without position information leave it empty.
type positions struct {
	containers []int
	goals      [][]int
}

func (p positions) container(i int) int {
	if i < len(p.containers) {
		return p.containers[i]
	}
	return 0
}

func (p positions) goal(c, g int) int {
	if c < len(p.goals) && g < len(p.goals[c]) {
		return p.goals[c][g]
	}
	return 0
}

// translate converts a decoded document into the agnostic model.
func (d *document) translate(ctx context.Context, file string, pos positions) (*config.Model, error) {
	out := &config.Model{Package: d.Package}
	for _, t := range d.Types {
		ct, err := translateType(ctx, t.Name, t.Package, t.Methods, t.Fields)
		if err != nil {
			return nil, fmt.Errorf("in type '%s': %w", t.Name, err)
		}
		ct.Access = t.Access
		ct.Abstract = t.Abstract
		ct.NoDefaultConstructor = t.NoDefaultConstructor
		ct.Collection = t.Collection
		ct.Origin = config.Origin{File: file}
		out.Types = append(out.Types, ct)
	}

	for i, c := range d.Containers {
		ct, err := translateType(ctx, c.Name, c.Package, c.Methods, c.Fields)
		if err != nil {
			return nil, fmt.Errorf("in container '%s': %w", c.Name, err)
		}
		ct.Access = c.Access
		ct.Abstract = c.Abstract
		ct.NoDefaultConstructor = c.NoDefaultConstructor
		ct.Origin = config.Origin{File: file, Line: pos.container(i)}
		container := &config.Container{Type: *ct, Lifecycle: c.Lifecycle}

		for j, g := range c.Goals {
			goal, err := translateGoal(ctx, g)
			if err != nil {
				return nil, fmt.Errorf("in container '%s', goal %d: %w", c.Name, j, err)
			}
			goal.Origin = config.Origin{File: file, Line: pos.goal(i, j)}
			container.Goals = append(container.Goals, goal)
		}
		out.Containers = append(out.Containers, container)
	}
	return out, nil
}

func translateType(ctx context.Context, name, pkg string, methods []methodDoc, fields []fieldDoc) (*config.Type, error) {
	if name == "" {
		return nil, fmt.Errorf("missing name")
	}
	t, err := hcl.ParseType(ctx, name)
	if err != nil {
		return nil, err
	}
	if t.Primitive || t.IsBuiltin() || len(t.Args) > 0 || t.Package != "" {
		return nil, fmt.Errorf("%q is not a plain type name", name)
	}
	t.Package = pkg

	out := &config.Type{Name: t}
	for _, m := range methods {
		cm, err := translateMethod(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("method '%s': %w", m.Name, err)
		}
		out.Methods = append(out.Methods, cm)
	}
	for _, f := range fields {
		ft, err := hcl.ParseType(ctx, f.Type)
		if err != nil {
			return nil, fmt.Errorf("field '%s': %w", f.Name, err)
		}
		out.Fields = append(out.Fields, &config.Field{Name: f.Name, Type: ft, Access: f.Access, Static: f.Static})
	}
	return out, nil
}

func translateMethod(ctx context.Context, m methodDoc) (*config.Method, error) {
	returns, err := optionalType(ctx, m.Returns)
	if err != nil {
		return nil, err
	}
	throws, err := typeList(ctx, m.Throws)
	if err != nil {
		return nil, err
	}
	params, err := translateParams(ctx, m.Params)
	if err != nil {
		return nil, err
	}
	return &config.Method{
		Name:    m.Name,
		Access:  m.Access,
		Static:  m.Static,
		Params:  params,
		Returns: returns,
		Throws:  throws,
		Ignore:  m.Ignore,
		Step:    translateStep(m.Step),
	}, nil
}

func translateParams(ctx context.Context, docs []paramDoc) ([]*config.Param, error) {
	params := make([]*config.Param, 0, len(docs))
	for _, p := range docs {
		if p.Type == "" {
			return nil, fmt.Errorf("param '%s': missing type", p.Name)
		}
		pt, err := hcl.ParseType(ctx, p.Type)
		if err != nil {
			return nil, fmt.Errorf("param '%s': %w", p.Name, err)
		}
		params = append(params, &config.Param{Name: p.Name, Type: pt, Step: translateStep(p.Step)})
	}
	return params, nil
}

func translateStep(s *stepDoc) *config.Step {
	if s == nil {
		return nil
	}
	return &config.Step{Position: s.Position, NullPolicy: s.NullPolicy}
}

func translateGoal(ctx context.Context, g goalDoc) (*config.Goal, error) {
	switch g.Kind {
	case config.GoalConstructor, config.GoalMethod, config.GoalBean:
	default:
		return nil, fmt.Errorf("unknown goal kind %q", g.Kind)
	}
	returns, err := optionalType(ctx, g.Returns)
	if err != nil {
		return nil, err
	}
	bean, err := optionalType(ctx, g.Bean)
	if err != nil {
		return nil, err
	}
	throws, err := typeList(ctx, g.Throws)
	if err != nil {
		return nil, err
	}
	params, err := translateParams(ctx, g.Params)
	if err != nil {
		return nil, err
	}
	out := &config.Goal{
		Kind:    g.Kind,
		Name:    g.Name,
		Method:  g.Method,
		Static:  g.Static,
		Access:  g.Access,
		Returns: returns,
		Params:  params,
		Throws:  throws,
		Options: config.GoalOptions(g.Options),
	}
	if bean != nil {
		out.Bean = *bean
	}
	return out, nil
}

func optionalType(ctx context.Context, src string) (*model.TypeName, error) {
	if src == "" {
		return nil, nil
	}
	t, err := hcl.ParseType(ctx, src)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func typeList(ctx context.Context, srcs []string) ([]model.TypeName, error) {
	var out []model.TypeName
	for _, src := range srcs {
		t, err := hcl.ParseType(ctx, src)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
