package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Package    string            `hcl:"package,optional"`
	Types      []*typeBlock      `hcl:"type,block"`
	Containers []*containerBlock `hcl:"container,block"`
	Remain     hcl.Body          `hcl:",remain"`
}

// typeBlock declares the shape of a user type.
type typeBlock struct {
	Name                 string         `hcl:"name,label"`
	Package              string         `hcl:"package,optional"`
	Access               string         `hcl:"access,optional"`
	Abstract             bool           `hcl:"abstract,optional"`
	NoDefaultConstructor bool           `hcl:"no_default_constructor,optional"`
	Collection           bool           `hcl:"collection,optional"`
	Methods              []*methodBlock `hcl:"method,block"`
	Fields               []*fieldBlock  `hcl:"field,block"`
	DefRange             hcl.Range      `hcl:",def_range"`
}

// containerBlock declares a type together with the goals generated for it.
type containerBlock struct {
	Name                 string         `hcl:"name,label"`
	Package              string         `hcl:"package,optional"`
	Access               string         `hcl:"access,optional"`
	Abstract             bool           `hcl:"abstract,optional"`
	NoDefaultConstructor bool           `hcl:"no_default_constructor,optional"`
	Lifecycle            string         `hcl:"lifecycle,optional"`
	Methods              []*methodBlock `hcl:"method,block"`
	Fields               []*fieldBlock  `hcl:"field,block"`
	Goals                []*goalBlock   `hcl:"goal,block"`
	DefRange             hcl.Range      `hcl:",def_range"`
}

// methodBlock declares a method of a type.
type methodBlock struct {
	Name    string         `hcl:"name,label"`
	Access  string         `hcl:"access,optional"`
	Static  bool           `hcl:"static,optional"`
	Returns hcl.Expression `hcl:"returns,optional"`
	Throws  hcl.Expression `hcl:"throws,optional"`
	Ignore  bool           `hcl:"ignore,optional"`
	Params  []*paramBlock  `hcl:"param,block"`
	Step    *stepBlock     `hcl:"step,block"`
}

// paramBlock declares a parameter of a method, constructor or goal.
type paramBlock struct {
	Name string         `hcl:"name,label"`
	Type hcl.Expression `hcl:"type"`
	Step *stepBlock     `hcl:"step,block"`
}

// stepBlock customizes a step.
type stepBlock struct {
	Position   *int   `hcl:"position,optional"`
	NullPolicy string `hcl:"null_policy,optional"`
}

// fieldBlock declares a field of a type.
type fieldBlock struct {
	Name   string         `hcl:"name,label"`
	Type   hcl.Expression `hcl:"type"`
	Access string         `hcl:"access,optional"`
	Static bool           `hcl:"static,optional"`
}

// goalBlock declares a goal. The label is the goal kind.
type goalBlock struct {
	Kind     string         `hcl:"kind,label"`
	Name     string         `hcl:"name,optional"`
	Method   string         `hcl:"method,optional"`
	Static   bool           `hcl:"static,optional"`
	Access   string         `hcl:"access,optional"`
	Returns  hcl.Expression `hcl:"returns,optional"`
	Bean     hcl.Expression `hcl:"bean,optional"`
	Throws   hcl.Expression `hcl:"throws,optional"`
	Params   []*paramBlock  `hcl:"param,block"`
	Options  *optionsBlock  `hcl:"options,block"`
	DefRange hcl.Range      `hcl:",def_range"`
}

// optionsBlock carries goal options as free attributes. They are evaluated
// and converted one by one, see decodeOptions.
type optionsBlock struct {
	Body hcl.Body `hcl:",remain"`
}
