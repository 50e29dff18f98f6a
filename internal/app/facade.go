package app

import (
	"context"

	"github.com/ledgerkit/pointsvc/internal/domain/model"
	"github.com/ledgerkit/pointsvc/internal/usecase"
)

// PointFacade is the single entry point callers use to reach the ledger core.
type PointFacade struct {
	points *usecase.PointUseCase
}

// NewPointFacade constructs PointFacade.
func NewPointFacade(points *usecase.PointUseCase) *PointFacade {
	return &PointFacade{points: points}
}

func (f *PointFacade) Charge(ctx context.Context, userID, amount int64) (*model.UserPoint, error) {
	return f.points.Charge(ctx, userID, amount)
}

func (f *PointFacade) Use(ctx context.Context, userID, amount int64) (*model.UserPoint, error) {
	return f.points.Use(ctx, userID, amount)
}

func (f *PointFacade) Balance(ctx context.Context, userID int64) (*model.UserPoint, error) {
	return f.points.Balance(ctx, userID)
}

func (f *PointFacade) Histories(ctx context.Context, userID int64) ([]model.PointHistory, error) {
	return f.points.Histories(ctx, userID)
}
