package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ledgerkit/pointsvc/internal/domain/model"
	"github.com/ledgerkit/pointsvc/internal/domain/repository"
)

// Storage keeps balances and the transaction log in process memory. It is the
// default backend when no database DSN is configured and the one integration
// tests run against.
type Storage struct {
	mu            sync.RWMutex
	balances      map[int64]model.UserPoint
	histories     map[int64][]model.PointHistory
	nextHistoryID int64
}

type balanceRepository struct {
	storage *Storage
}

type historyRepository struct {
	storage *Storage
}

// New creates an empty in-memory storage.
func New() *Storage {
	return &Storage{
		balances:  make(map[int64]model.UserPoint),
		histories: make(map[int64][]model.PointHistory),
	}
}

// Balances returns the balance repository backed by this storage.
func (s *Storage) Balances() repository.BalanceRepository {
	return &balanceRepository{storage: s}
}

// Histories returns the history repository backed by this storage.
func (s *Storage) Histories() repository.HistoryRepository {
	return &historyRepository{storage: s}
}

// HealthCheck always succeeds for the in-memory backend.
func (s *Storage) HealthCheck(ctx context.Context) error {
	return nil
}

func (r *balanceRepository) Get(ctx context.Context, userID int64) (*model.UserPoint, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	if record, ok := r.storage.balances[userID]; ok {
		return &record, nil
	}
	// Absent users resolve to a zero-balance record, never a miss.
	return &model.UserPoint{UserID: userID, Balance: 0, UpdatedAt: time.Now()}, nil
}

func (r *balanceRepository) Upsert(ctx context.Context, userID, balance int64) (*model.UserPoint, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	record := model.UserPoint{UserID: userID, Balance: balance, UpdatedAt: time.Now()}
	r.storage.balances[userID] = record
	return &record, nil
}

func (r *historyRepository) Append(ctx context.Context, userID, amount int64, txType model.TransactionType, at time.Time) (*model.PointHistory, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	r.storage.nextHistoryID++
	record := model.PointHistory{
		ID:        r.storage.nextHistoryID,
		UserID:    userID,
		Amount:    amount,
		Type:      txType,
		CreatedAt: at,
	}
	r.storage.histories[userID] = append(r.storage.histories[userID], record)
	return &record, nil
}

func (r *historyRepository) ListByUser(ctx context.Context, userID int64) ([]model.PointHistory, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	stored := r.storage.histories[userID]
	result := make([]model.PointHistory, len(stored))
	copy(result, stored)
	return result, nil
}
