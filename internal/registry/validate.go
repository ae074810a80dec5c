package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/stepbuilder/internal/ctxlog"
	"github.com/specialistvlad/stepbuilder/internal/model"
)

// Validate performs a parity check between a container's goals and the
// compiled generators: every feature a goal enables must be registered.
func (r *Registry) Validate(ctx context.Context, container *model.Container) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, goal := range container.Goals {
		details := goal.Details()
		features := Features(details.Options)
		if len(features) == 0 {
			logger.Warn("Goal enables no feature and generates nothing.", "container", container.Type.String(), "goal", details.Name)
			continue
		}
		for _, feature := range features {
			if _, ok := r.generators[feature]; !ok {
				errs = append(errs, fmt.Sprintf("goal '%s': feature '%s' has no registered generator", details.Name, feature))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed for %s:\n- %s", container.Type, strings.Join(errs, "\n- "))
	}
	return nil
}
