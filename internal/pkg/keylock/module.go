package keylock

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ledgerkit/pointsvc/internal/config"
)

// Module wires the per-user lock table for dependency injection.
var Module = fx.Provide(newKeyLock)

type keyLockParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newKeyLock(p keyLockParams) *KeyLock {
	return New(p.Config.LockIdleTTL, p.Config.LockSweepInterval, p.Logger)
}
