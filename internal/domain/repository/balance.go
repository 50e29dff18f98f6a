package repository

import (
	"context"

	"github.com/ledgerkit/pointsvc/internal/domain/model"
)

// BalanceRepository owns the current balance of each user.
type BalanceRepository interface {
	// Get returns the user's balance record. A user without a record yields a
	// zero-balance UserPoint, never a nil or "not found" result.
	Get(ctx context.Context, userID int64) (*model.UserPoint, error)
	// Upsert writes the given balance and returns the stored record.
	Upsert(ctx context.Context, userID, balance int64) (*model.UserPoint, error)
}
