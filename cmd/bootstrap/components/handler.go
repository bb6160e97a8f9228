package components

import (
	"happyhour-console/internal/handler"
	"happyhour-console/internal/handler/api"
	"happyhour-console/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBarHandler,
		api.NewMenuHandler,
		api.NewPDFHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
