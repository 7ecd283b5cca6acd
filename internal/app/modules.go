package app

import (
	"github.com/vk/bootgridgo/internal/registry"
	"github.com/vk/bootgridgo/modules/copysource"
	"github.com/vk/bootgridgo/modules/installdeps"
	"github.com/vk/bootgridgo/modules/launch"
	"github.com/vk/bootgridgo/modules/scratchdir"
	"github.com/vk/bootgridgo/modules/signalrelay"
)

// coreModules are the built-in stage handlers and applications registered
// when the caller does not supply its own set.
var coreModules = []registry.Module{
	installdeps.Module{},
	scratchdir.Module{},
	copysource.Module{},
	launch.Module{},
	signalrelay.Module{},
}
