package model

import "time"

// TransactionType distinguishes point ledger operations.
type TransactionType string

const (
	TransactionCharge TransactionType = "CHARGE"
	TransactionUse    TransactionType = "USE"
)

// UserPoint holds the current point balance of a single user.
type UserPoint struct {
	UserID    int64
	Balance   int64
	UpdatedAt time.Time
}

// PointHistory is an immutable ledger entry recording a single transaction.
// Amount is always the delta applied by the operation, never the resulting
// balance. ID is assigned by the history store in insertion order.
type PointHistory struct {
	ID        int64
	UserID    int64
	Amount    int64
	Type      TransactionType
	CreatedAt time.Time
}
