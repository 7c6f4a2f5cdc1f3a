package components

import (
	"stayflow/internal/handler"
	"stayflow/internal/handler/api"
	"stayflow/internal/handler/middleware"
	"stayflow/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewAvailabilityHandler,
		api.NewBlockedDateHandler,
		api.NewWebhookHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
