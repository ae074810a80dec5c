package app

import (
	"github.com/specialistvlad/stepbuilder/internal/registry"
	"github.com/specialistvlad/stepbuilder/modules/builder"
	"github.com/specialistvlad/stepbuilder/modules/tobuilder"
	"github.com/specialistvlad/stepbuilder/modules/updater"
)

// coreModules is the definitive list of all generator modules that are
// compiled into the stepbuilder binary.
var coreModules = []registry.Module{
	&builder.Module{},
	&tobuilder.Module{},
	&updater.Module{},
}
