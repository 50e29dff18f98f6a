package storage

import (
	"context"
	"log/slog"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/ledgerkit/pointsvc/internal/config"
	"github.com/ledgerkit/pointsvc/internal/domain/repository"
	"github.com/ledgerkit/pointsvc/internal/storage/cached"
	"github.com/ledgerkit/pointsvc/internal/storage/memory"
	"github.com/ledgerkit/pointsvc/internal/storage/postgres"
)

// HealthChecker reports storage connectivity.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Backend bundles the selected storage implementation with its teardown.
type Backend struct {
	Factory repository.Factory
	Health  HealthChecker

	closers []func()
}

// Close releases backend resources in reverse acquisition order.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// Module wires the storage backend and repository adapters. PostgreSQL is used
// when a DSN is configured, the in-memory backend otherwise; a Redis balance
// cache is layered on when an address is provided.
var Module = fx.Options(
	fx.Provide(
		newBackend,
		func(b *Backend) repository.Factory { return b.Factory },
		func(b *Backend) HealthChecker { return b.Health },
		newBalanceRepository,
		func(f repository.Factory) repository.HistoryRepository { return f.Histories() },
	),
	fx.Invoke(registerLifecycle),
)

type backendParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newBackend(p backendParams) (*Backend, error) {
	if p.Config.DatabaseURI == "" {
		st := memory.New()
		p.Logger.Info("using in-memory storage")
		return &Backend{Factory: st, Health: st}, nil
	}

	st, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
	if err != nil {
		return nil, err
	}
	return &Backend{Factory: st, Health: st, closers: []func(){st.Close}}, nil
}

type balanceParams struct {
	fx.In

	Backend *Backend
	Config  *config.Config
	Logger  *slog.Logger
}

func newBalanceRepository(p balanceParams) repository.BalanceRepository {
	balances := p.Backend.Factory.Balances()
	if p.Config.RedisAddr == "" {
		return balances
	}

	client := redis.NewClient(&redis.Options{Addr: p.Config.RedisAddr})
	p.Backend.closers = append(p.Backend.closers, func() { _ = client.Close() })
	cache := cached.NewRedisCache(client, p.Config.CacheTTL)
	return cached.NewBalanceRepository(balances, cache, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, backend *Backend) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			backend.Close()
			return nil
		},
	})
}
