package test

import (
	"context"
	"time"

	"github.com/ledgerkit/pointsvc/internal/domain/model"
)

// PointFacadeStub provides controllable behaviour for point endpoints.
type PointFacadeStub struct {
	ChargeFn    func(context.Context, int64, int64) (*model.UserPoint, error)
	UseFn       func(context.Context, int64, int64) (*model.UserPoint, error)
	BalanceFn   func(context.Context, int64) (*model.UserPoint, error)
	HistoriesFn func(context.Context, int64) ([]model.PointHistory, error)
}

// Charge delegates to the provided function or echoes the amount as balance.
func (s PointFacadeStub) Charge(ctx context.Context, userID, amount int64) (*model.UserPoint, error) {
	if s.ChargeFn != nil {
		return s.ChargeFn(ctx, userID, amount)
	}
	return &model.UserPoint{UserID: userID, Balance: amount, UpdatedAt: time.Now()}, nil
}

// Use delegates to the provided function or returns a drained balance.
func (s PointFacadeStub) Use(ctx context.Context, userID, amount int64) (*model.UserPoint, error) {
	if s.UseFn != nil {
		return s.UseFn(ctx, userID, amount)
	}
	return &model.UserPoint{UserID: userID, Balance: 0, UpdatedAt: time.Now()}, nil
}

// Balance returns configured balance or a zero record.
func (s PointFacadeStub) Balance(ctx context.Context, userID int64) (*model.UserPoint, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, userID)
	}
	return &model.UserPoint{UserID: userID}, nil
}

// Histories returns configured history records.
func (s PointFacadeStub) Histories(ctx context.Context, userID int64) ([]model.PointHistory, error) {
	if s.HistoriesFn != nil {
		return s.HistoriesFn(ctx, userID)
	}
	return []model.PointHistory{}, nil
}

// HealthCheckerStub reports configurable storage health.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthCheckerStub) HealthCheck(ctx context.Context) error {
	return s.Err
}
