package test

import (
	"context"
	"sync"
	"time"

	"github.com/ledgerkit/pointsvc/internal/domain/model"
)

// BalanceRepositoryStub lets tests control balance store behaviour and
// inspect every write issued against it.
type BalanceRepositoryStub struct {
	GetFn    func(context.Context, int64) (*model.UserPoint, error)
	UpsertFn func(context.Context, int64, int64) (*model.UserPoint, error)

	mu       sync.Mutex
	Balances map[int64]int64
	Upserts  []BalanceUpsertCall
	GetCalls int
}

// BalanceUpsertCall records a single Upsert invocation.
type BalanceUpsertCall struct {
	UserID  int64
	Balance int64
}

// NewBalanceRepositoryStub constructs stub with initialized balance map.
func NewBalanceRepositoryStub() *BalanceRepositoryStub {
	return &BalanceRepositoryStub{Balances: make(map[int64]int64)}
}

// Get returns the stored balance or a zero record, matching the store contract.
func (s *BalanceRepositoryStub) Get(ctx context.Context, userID int64) (*model.UserPoint, error) {
	s.mu.Lock()
	s.GetCalls++
	s.mu.Unlock()
	if s.GetFn != nil {
		return s.GetFn(ctx, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return &model.UserPoint{UserID: userID, Balance: s.Balances[userID], UpdatedAt: time.Now()}, nil
}

// Upsert records the write and updates the in-memory balance.
func (s *BalanceRepositoryStub) Upsert(ctx context.Context, userID, balance int64) (*model.UserPoint, error) {
	s.mu.Lock()
	s.Upserts = append(s.Upserts, BalanceUpsertCall{UserID: userID, Balance: balance})
	s.mu.Unlock()
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, userID, balance)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Balances == nil {
		s.Balances = make(map[int64]int64)
	}
	s.Balances[userID] = balance
	return &model.UserPoint{UserID: userID, Balance: balance, UpdatedAt: time.Now()}, nil
}

// HistoryRepositoryStub stores appended history records for tests.
type HistoryRepositoryStub struct {
	AppendFn func(context.Context, int64, int64, model.TransactionType, time.Time) (*model.PointHistory, error)
	ListFn   func(context.Context, int64) ([]model.PointHistory, error)

	mu       sync.Mutex
	NextID   int64
	Appended []model.PointHistory
	Items    []model.PointHistory
}

// Append records the invocation and assigns the next sequential ID.
func (s *HistoryRepositoryStub) Append(ctx context.Context, userID, amount int64, txType model.TransactionType, at time.Time) (*model.PointHistory, error) {
	if s.AppendFn != nil {
		return s.AppendFn(ctx, userID, amount, txType, at)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NextID++
	record := model.PointHistory{ID: s.NextID, UserID: userID, Amount: amount, Type: txType, CreatedAt: at}
	s.Appended = append(s.Appended, record)
	return &record, nil
}

// ListByUser returns configured items or everything appended for the user.
func (s *HistoryRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.PointHistory, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Items != nil {
		return s.Items, nil
	}
	var result []model.PointHistory
	for _, r := range s.Appended {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	return result, nil
}
