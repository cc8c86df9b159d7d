//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"github.com/Na1awut/NDLP/internal"
	"github.com/Na1awut/NDLP/internal/controllers"
	"github.com/Na1awut/NDLP/internal/evc"
	"github.com/Na1awut/NDLP/internal/providers"
	"github.com/Na1awut/NDLP/internal/services"
	"github.com/Na1awut/NDLP/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewExtractorProvider,
		providers.NewComposerProvider,
		providers.NewNotifierProvider,

		services.NewRegistryService,
		services.NewEngineService,
		provideSnapshotter,
		provideTokenSweeper,

		evc.NewZstdCompressor,
		evc.NewFileManager,
		evc.NewScheduler,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
