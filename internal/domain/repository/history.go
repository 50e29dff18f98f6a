package repository

import (
	"context"
	"time"

	"github.com/ledgerkit/pointsvc/internal/domain/model"
)

// HistoryRepository owns the append-only transaction log.
type HistoryRepository interface {
	// Append stores a new record and assigns it the next insertion-ordered ID.
	Append(ctx context.Context, userID, amount int64, txType model.TransactionType, at time.Time) (*model.PointHistory, error)
	// ListByUser returns all records for the user in no guaranteed order, an
	// empty slice when there are none.
	ListByUser(ctx context.Context, userID int64) ([]model.PointHistory, error)
}
