package router

import (
	"go.uber.org/fx"

	"github.com/ledgerkit/pointsvc/internal/server/http/handlers"
	"github.com/ledgerkit/pointsvc/internal/storage"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(func(h storage.HealthChecker) handlers.HealthChecker { return h }),
	fx.Provide(Setup),
)
