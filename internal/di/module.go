package di

import (
	"go.uber.org/fx"

	"github.com/ledgerkit/pointsvc/internal/app"
	"github.com/ledgerkit/pointsvc/internal/config"
	"github.com/ledgerkit/pointsvc/internal/logger"
	"github.com/ledgerkit/pointsvc/internal/pkg/keylock"
	"github.com/ledgerkit/pointsvc/internal/server/http/router"
	"github.com/ledgerkit/pointsvc/internal/storage"
	"github.com/ledgerkit/pointsvc/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		keylock.Module,
		storage.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
