package analyser

import (
	"github.com/specialistvlad/stepbuilder/internal/failure"
)

// candidate is a goal before validation: what naming and structural checks
// need to know about it.
type candidate struct {
	name     string
	explicit bool
	method   bool
	element  string
}

// checkNameConflicts fails on the first pair of goals sharing a name. The
// failure is attached to the later goal.
func checkNameConflicts(goals []candidate) error {
	seen := make(map[string]candidate, len(goals))
	for _, g := range goals {
		if prev, ok := seen[g.name]; ok {
			return failure.New(conflictCode(prev, g), g.element,
				"goal name %q is already used by %s", g.name, prev.element)
		}
		seen[g.name] = g
	}
	return nil
}

func conflictCode(a, b candidate) failure.Code {
	methods := 0
	if a.method {
		methods++
	}
	if b.method {
		methods++
	}
	switch {
	case a.explicit && b.explicit:
		return failure.GoalNameNN
	case a.explicit || b.explicit:
		return [...]failure.Code{failure.GoalNameNECC, failure.GoalNameNEMC, failure.GoalNameNEMM}[methods]
	default:
		return [...]failure.Code{failure.GoalNameEECC, failure.GoalNameEEMC, failure.GoalNameEEMM}[methods]
	}
}
