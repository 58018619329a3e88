package subscription

import (
	"github.com/subsynclabs/subsync/internal/subscription/repository"
	"github.com/subsynclabs/subsync/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
