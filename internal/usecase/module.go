package usecase

import (
	"go.uber.org/fx"

	"github.com/ledgerkit/pointsvc/internal/config"
	"github.com/ledgerkit/pointsvc/internal/domain/policy"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newPolicy,
	NewPointUseCase,
)

func newPolicy(cfg *config.Config) *policy.Policy {
	return &policy.Policy{
		MinAmount:  cfg.MinAmount,
		MaxAmount:  cfg.MaxAmount,
		ChargeUnit: cfg.ChargeUnit,
		UseUnit:    cfg.UseUnit,
		MaxBalance: cfg.MaxBalance,
	}
}
