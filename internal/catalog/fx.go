package catalog

import (
	"github.com/subsynclabs/subsync/internal/catalog/repository"
	"github.com/subsynclabs/subsync/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.ProvideProductRepository),
	fx.Provide(repository.ProvidePriceRepository),
	fx.Provide(service.NewService),
)
