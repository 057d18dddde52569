package app

import (
	"github.com/vk/phasorcalc/internal/registry"
	"github.com/vk/phasorcalc/modules/circuits"
	"github.com/vk/phasorcalc/modules/phasor"
	"github.com/vk/phasorcalc/modules/stdmath"
	"github.com/vk/phasorcalc/modules/util"
)

// coreModules is the definitive list of all modules that are compiled into
// the phasorcalc binary.
var coreModules = []registry.Module{
	&stdmath.Module{},
	&phasor.Module{},
	&circuits.Module{},
	&util.Module{},
}
