package di

import (
	"github.com/Na1awut/NDLP/internal/evc/interfaces"
	"github.com/Na1awut/NDLP/internal/services"
)

// The registry backs both persistence-facing interfaces; wire needs the
// explicit adapters because it cannot bind one interface to another.

func provideSnapshotter(registry services.RegistryServiceInterface) interfaces.Snapshotter {
	return registry
}

func provideTokenSweeper(registry services.RegistryServiceInterface) interfaces.TokenSweeper {
	return registry
}
