package webhook

import (
	"github.com/subsynclabs/subsync/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("webhook",
	fx.Provide(func(cfg config.Config) *Verifier {
		return NewVerifier(cfg.StripeWebhookSecret)
	}),
	fx.Provide(NewService),
)
