package policy

import (
	"fmt"

	domainErrors "github.com/ledgerkit/pointsvc/internal/domain/errors"
)

// Default policy values. The numbers are deployment configuration, not law;
// config may override any of them at startup.
const (
	DefaultMinAmount  = 1_000
	DefaultMaxAmount  = 1_000_000
	DefaultMaxBalance = 1_000_000
	DefaultChargeUnit = 10_000
	DefaultUseUnit    = 1_000
)

// Policy is the immutable set of transaction rules. It is built once at
// startup and shared by reference; it holds no mutable state.
type Policy struct {
	MinAmount  int64
	MaxAmount  int64
	ChargeUnit int64
	UseUnit    int64
	MaxBalance int64
}

// Default returns the canonical policy.
func Default() *Policy {
	return &Policy{
		MinAmount:  DefaultMinAmount,
		MaxAmount:  DefaultMaxAmount,
		ChargeUnit: DefaultChargeUnit,
		UseUnit:    DefaultUseUnit,
		MaxBalance: DefaultMaxBalance,
	}
}

// ValidateChargeAmount checks a charge amount against min, max and the charge
// unit granularity.
func (p *Policy) ValidateChargeAmount(amount int64) error {
	return p.validateAmount(amount, p.ChargeUnit)
}

// ValidateUseAmount checks a use amount against min, max and the use unit
// granularity.
func (p *Policy) ValidateUseAmount(amount int64) error {
	return p.validateAmount(amount, p.UseUnit)
}

func (p *Policy) validateAmount(amount, unit int64) error {
	switch {
	case amount < p.MinAmount:
		return &domainErrors.AmountValidationError{Amount: amount, Reason: fmt.Sprintf("below minimum %d", p.MinAmount)}
	case amount > p.MaxAmount:
		return &domainErrors.AmountValidationError{Amount: amount, Reason: fmt.Sprintf("above maximum %d", p.MaxAmount)}
	case amount%unit != 0:
		return &domainErrors.AmountValidationError{Amount: amount, Reason: fmt.Sprintf("not a multiple of %d", unit)}
	}
	return nil
}

// ValidateBalance checks a balance against the configured ceiling and floor.
func (p *Policy) ValidateBalance(balance int64) error {
	if balance > p.MaxBalance {
		return &domainErrors.MaxBalanceError{Limit: p.MaxBalance, Balance: balance}
	}
	if balance < 0 {
		return &domainErrors.NegativeBalanceError{Balance: balance}
	}
	return nil
}
