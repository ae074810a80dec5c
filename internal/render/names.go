package render

import (
	"go/token"

	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/specialistvlad/stepbuilder/internal/output"
)

// identFor spells name as an exported identifier for public access and an
// unexported one otherwise.
func identFor(name string, access model.Access) string {
	if access == model.AccessPublic {
		return model.Upcase(name)
	}
	return safe(model.Downcase(name))
}

func fieldIdent(name string, access model.Access) string {
	return identFor(name, access)
}

func methodIdent(m output.Method) string {
	return identFor(m.Name, m.Access)
}

// safe keeps keywords out of identifiers.
func safe(name string) string {
	if token.IsKeyword(name) {
		return name + "_"
	}
	return name
}

// scope maps the parameter names of one method to Go identifiers. A
// parameter is renamed when it is a keyword or would shadow the receiver.
type scope struct {
	recv  string
	names map[string]string
}

func newScope(recv string, params []output.Param) *scope {
	sc := &scope{recv: recv, names: make(map[string]string, len(params))}
	for _, p := range params {
		name := safe(p.Name)
		for name == recv {
			name += "_"
		}
		sc.names[p.Name] = name
	}
	return sc
}

func (sc *scope) ident(name string) string {
	if n, ok := sc.names[name]; ok {
		return n
	}
	return safe(name)
}

// fresh returns a local name that no parameter uses.
func (sc *scope) fresh(base string) string {
	name := base
	for sc.taken(name) {
		name += "_"
	}
	return name
}

func (sc *scope) taken(name string) bool {
	if name == sc.recv {
		return true
	}
	for _, n := range sc.names {
		if n == name {
			return true
		}
	}
	return false
}
