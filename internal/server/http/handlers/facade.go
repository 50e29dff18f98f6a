package handlers

import (
	"context"

	"github.com/ledgerkit/pointsvc/internal/domain/model"
)

// PointFacade aggregates the ledger operations exposed via HTTP.
type PointFacade interface {
	Charge(ctx context.Context, userID, amount int64) (*model.UserPoint, error)
	Use(ctx context.Context, userID, amount int64) (*model.UserPoint, error)
	Balance(ctx context.Context, userID int64) (*model.UserPoint, error)
	Histories(ctx context.Context, userID int64) ([]model.PointHistory, error)
}

// HealthChecker reports storage connectivity for the ping endpoint.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
