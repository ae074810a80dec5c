package hcl

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/stepbuilder/internal/config"
	"github.com/specialistvlad/stepbuilder/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// optionSpec binds one attribute of an `options` block to its field in
// config.GoalOptions.
type optionSpec struct {
	ty     cty.Type
	target func(*config.GoalOptions) any
}

var optionSpecs = map[string]optionSpec{
	"builder": {cty.Bool, func(o *config.GoalOptions) any {
		if o.Builder == nil {
			o.Builder = new(bool)
		}
		return o.Builder
	}},
	"updater":           {cty.Bool, func(o *config.GoalOptions) any { return &o.Updater }},
	"to_builder":        {cty.Bool, func(o *config.GoalOptions) any { return &o.ToBuilder }},
	"builder_access":    {cty.String, func(o *config.GoalOptions) any { return &o.BuilderAccess }},
	"updater_access":    {cty.String, func(o *config.GoalOptions) any { return &o.UpdaterAccess }},
	"to_builder_access": {cty.String, func(o *config.GoalOptions) any { return &o.ToBuilderAccess }},
	"lifecycle":         {cty.String, func(o *config.GoalOptions) any { return &o.Lifecycle }},
	"null_policy":       {cty.String, func(o *config.GoalOptions) any { return &o.NullPolicy }},
}

// decodeOptions evaluates every attribute of an options block, converts it
// to the type the option expects and stores it. Unknown attributes are an
// error so that typos do not silently fall back to defaults.
func decodeOptions(ctx context.Context, block *optionsBlock) (config.GoalOptions, error) {
	var opts config.GoalOptions
	if block == nil || block.Body == nil {
		return opts, nil
	}
	logger := ctxlog.FromContext(ctx)

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return opts, fmt.Errorf("invalid options block: %w", diags)
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		attr := attrs[name]
		spec, ok := optionSpecs[name]
		if !ok {
			return opts, fmt.Errorf("%s: unknown option '%s'", attr.NameRange, name)
		}
		if err := decodeAttr(attr, spec.ty, spec.target(&opts)); err != nil {
			return opts, fmt.Errorf("%s: option '%s': %w", attr.NameRange, name, err)
		}
		logger.Debug("Decoded goal option.", "option", name)
	}
	return opts, nil
}

func decodeAttr(attr *hcl.Attribute, ty cty.Type, target any) error {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return diags
	}
	converted, err := convert.Convert(val, ty)
	if err != nil {
		return fmt.Errorf("expected %s: %w", ty.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, target)
}
