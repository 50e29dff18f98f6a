package errors

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Callers match on these with errors.Is; the typed errors
// below carry the offending values for diagnostics.
var (
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrValidation         = errors.New("validation failed")
	ErrMaxBalanceExceeded = errors.New("max point balance exceeded")
	ErrNegativeBalance    = errors.New("negative point balance")
	ErrNoUsableBalance    = errors.New("no usable balance")
	ErrPersistence        = errors.New("persistence failed")
	ErrRetrieve           = errors.New("retrieve failed")
)

// InvalidUserIDError reports a missing, zero or negative user key.
type InvalidUserIDError struct {
	UserID int64
}

func (e *InvalidUserIDError) Error() string {
	return fmt.Sprintf("invalid user id: %d", e.UserID)
}

func (e *InvalidUserIDError) Is(target error) bool {
	return target == ErrInvalidUserID
}

// AmountValidationError reports an amount outside policy bounds or off the
// required unit granularity.
type AmountValidationError struct {
	Amount int64
	Reason string
}

func (e *AmountValidationError) Error() string {
	return fmt.Sprintf("invalid amount %d: %s", e.Amount, e.Reason)
}

func (e *AmountValidationError) Is(target error) bool {
	return target == ErrValidation
}

// MaxBalanceError reports a balance that would exceed the configured ceiling.
type MaxBalanceError struct {
	Limit   int64
	Balance int64
}

func (e *MaxBalanceError) Error() string {
	return fmt.Sprintf("balance %d exceeds maximum %d", e.Balance, e.Limit)
}

func (e *MaxBalanceError) Is(target error) bool {
	return target == ErrMaxBalanceExceeded || target == ErrValidation
}

// NegativeBalanceError reports a balance that would drop below zero. It covers
// both insufficient funds on use and defensive checks on read.
type NegativeBalanceError struct {
	Balance int64
}

func (e *NegativeBalanceError) Error() string {
	return fmt.Sprintf("balance would become negative: %d", e.Balance)
}

func (e *NegativeBalanceError) Is(target error) bool {
	return target == ErrNegativeBalance || target == ErrValidation
}

// NoUsableBalanceError reports a use attempt against an empty balance.
type NoUsableBalanceError struct {
	UserID int64
}

func (e *NoUsableBalanceError) Error() string {
	return fmt.Sprintf("user %d has no usable balance", e.UserID)
}

func (e *NoUsableBalanceError) Is(target error) bool {
	return target == ErrNoUsableBalance || target == ErrValidation
}

// PersistenceError wraps a failed balance write or history append. When a
// compensating write also fails, Cause carries both underlying errors joined.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error { return e.Cause }

// RetrieveError wraps a store fault observed during a read operation.
type RetrieveError struct {
	Op    string
	Cause error
}

func (e *RetrieveError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *RetrieveError) Is(target error) bool {
	return target == ErrRetrieve
}

func (e *RetrieveError) Unwrap() error { return e.Cause }
