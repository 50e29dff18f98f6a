package di

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/ledgerkit/pointsvc/internal/app"
	"github.com/ledgerkit/pointsvc/internal/config"
	"github.com/ledgerkit/pointsvc/internal/usecase"
)

func TestModuleResolvesFullGraph(t *testing.T) {
	cfg := &config.Config{
		RunAddress:        "127.0.0.1:0",
		ShutdownTimeout:   time.Second,
		LockIdleTTL:       time.Minute,
		LockSweepInterval: time.Minute,
		MinAmount:         1_000,
		MaxAmount:         1_000_000,
		ChargeUnit:        10_000,
		UseUnit:           1_000,
		MaxBalance:        1_000_000,
	}

	var (
		router *gin.Engine
		points *usecase.PointUseCase
		facade *app.PointFacade
	)

	fxApp := fxtest.New(t,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(fx.Replace(cfg)),
		fx.Populate(&router, &points, &facade),
	)
	fxApp.RequireStart().RequireStop()

	if router == nil || points == nil || facade == nil {
		t.Fatal("expected all graph components to be populated")
	}
}
