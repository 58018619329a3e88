package billing

import (
	billingdomain "github.com/subsynclabs/subsync/internal/billing/domain"
	"github.com/subsynclabs/subsync/internal/billing/stripeclient"
	"github.com/subsynclabs/subsync/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("billing",
	fx.Provide(func(cfg config.Config) billingdomain.ProviderClient {
		return stripeclient.New(cfg.StripeAPIKey)
	}),
)
