package usecase

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	domainErrors "github.com/ledgerkit/pointsvc/internal/domain/errors"
	"github.com/ledgerkit/pointsvc/internal/domain/model"
	"github.com/ledgerkit/pointsvc/internal/domain/policy"
	"github.com/ledgerkit/pointsvc/internal/domain/repository"
	"github.com/ledgerkit/pointsvc/internal/pkg/keylock"
)

// PointUseCase orchestrates charge, use and read operations against the
// balance and history stores.
//
// The balance update protocol is a two-step write with compensation: the new
// balance is persisted first, then a history record is appended; when the
// append fails, the pre-operation balance is written back. A failed
// compensation is folded into the surfaced error, never dropped. Charge and
// Use are serialized per user key; reads run lock-free and may observe either
// the pre- or post-update balance.
type PointUseCase struct {
	balances  repository.BalanceRepository
	histories repository.HistoryRepository
	policy    *policy.Policy
	locks     *keylock.KeyLock
	logger    *slog.Logger

	now func() time.Time
}

// NewPointUseCase constructs PointUseCase.
func NewPointUseCase(
	balances repository.BalanceRepository,
	histories repository.HistoryRepository,
	p *policy.Policy,
	locks *keylock.KeyLock,
	logger *slog.Logger,
) *PointUseCase {
	return &PointUseCase{
		balances:  balances,
		histories: histories,
		policy:    p,
		locks:     locks,
		logger:    logger,
		now:       time.Now,
	}
}

// Charge credits the user with the given amount and records a CHARGE entry.
func (u *PointUseCase) Charge(ctx context.Context, userID, amount int64) (*model.UserPoint, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := u.policy.ValidateChargeAmount(amount); err != nil {
		return nil, err
	}

	u.locks.Lock(userID)
	defer u.locks.Unlock(userID)

	current, err := u.balances.Get(ctx, userID)
	if err != nil {
		return nil, &domainErrors.RetrieveError{Op: "read point balance", Cause: err}
	}

	newBalance := current.Balance + amount
	if err := u.policy.ValidateBalance(newBalance); err != nil {
		return nil, err
	}

	updated, err := u.commit(ctx, current, newBalance, amount, model.TransactionCharge)
	if err != nil {
		u.logger.Error("point charge failed",
			slog.Int64("user_id", userID),
			slog.Int64("amount", amount),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	u.logger.Info("point charge completed",
		slog.Int64("user_id", userID),
		slog.Int64("amount", amount),
		slog.Int64("balance", newBalance),
	)
	return updated, nil
}

// Use debits the given amount from the user and records a USE entry.
func (u *PointUseCase) Use(ctx context.Context, userID, amount int64) (*model.UserPoint, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := u.policy.ValidateUseAmount(amount); err != nil {
		return nil, err
	}

	u.locks.Lock(userID)
	defer u.locks.Unlock(userID)

	current, err := u.balances.Get(ctx, userID)
	if err != nil {
		return nil, &domainErrors.RetrieveError{Op: "read point balance", Cause: err}
	}
	if current.Balance <= 0 {
		return nil, &domainErrors.NoUsableBalanceError{UserID: userID}
	}

	newBalance := current.Balance - amount
	if err := u.policy.ValidateBalance(newBalance); err != nil {
		return nil, err
	}

	updated, err := u.commit(ctx, current, newBalance, amount, model.TransactionUse)
	if err != nil {
		u.logger.Error("point use failed",
			slog.Int64("user_id", userID),
			slog.Int64("amount", amount),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	u.logger.Info("point use completed",
		slog.Int64("user_id", userID),
		slog.Int64("amount", amount),
		slog.Int64("balance", newBalance),
	)
	return updated, nil
}

// commit persists the new balance, appends the history record and rolls the
// balance back when the append fails.
func (u *PointUseCase) commit(ctx context.Context, current *model.UserPoint, newBalance, amount int64, txType model.TransactionType) (*model.UserPoint, error) {
	updated, err := u.balances.Upsert(ctx, current.UserID, newBalance)
	if err != nil {
		return nil, &domainErrors.PersistenceError{Op: "save point balance", Cause: err}
	}

	if _, err := u.histories.Append(ctx, current.UserID, amount, txType, u.now()); err != nil {
		cause := err
		if _, rollbackErr := u.balances.Upsert(ctx, current.UserID, current.Balance); rollbackErr != nil {
			u.logger.Error("point balance rollback failed",
				slog.Int64("user_id", current.UserID),
				slog.Int64("snapshot", current.Balance),
				slog.String("error", rollbackErr.Error()),
			)
			cause = errors.Join(err, rollbackErr)
		} else {
			u.logger.Error("rolled back point balance after history append failure",
				slog.Int64("user_id", current.UserID),
				slog.Int64("balance", current.Balance),
			)
		}
		return nil, &domainErrors.PersistenceError{Op: "save point history", Cause: cause}
	}

	return updated, nil
}

// Balance returns the user's current point record. It never touches the
// history store.
func (u *PointUseCase) Balance(ctx context.Context, userID int64) (*model.UserPoint, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	current, err := u.balances.Get(ctx, userID)
	if err != nil {
		return nil, &domainErrors.RetrieveError{Op: "read point balance", Cause: err}
	}

	// Guard against corrupted store state.
	if err := u.policy.ValidateBalance(current.Balance); err != nil {
		return nil, err
	}
	return current, nil
}

// Histories returns all transaction records of the user sorted ascending by
// record ID. A user with no transactions yields an empty slice, not an error.
func (u *PointUseCase) Histories(ctx context.Context, userID int64) ([]model.PointHistory, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	// The balance read doubles as an existence check; absent users resolve to
	// a zero record and an empty history.
	if _, err := u.balances.Get(ctx, userID); err != nil {
		return nil, &domainErrors.RetrieveError{Op: "read point balance", Cause: err}
	}

	records, err := u.histories.ListByUser(ctx, userID)
	if err != nil {
		return nil, &domainErrors.RetrieveError{Op: "read point histories", Cause: err}
	}
	if len(records) == 0 {
		return []model.PointHistory{}, nil
	}

	// The store does not guarantee order.
	slices.SortFunc(records, func(a, b model.PointHistory) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return records, nil
}

func validateUserID(userID int64) error {
	if userID <= 0 {
		return &domainErrors.InvalidUserIDError{UserID: userID}
	}
	return nil
}
