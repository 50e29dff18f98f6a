package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/ledgerkit/pointsvc/internal/domain/errors"
)

func TestValidateChargeAmount(t *testing.T) {
	p := Default()

	tests := []struct {
		name    string
		amount  int64
		wantErr bool
	}{
		{name: "exact minimum unit", amount: 10_000},
		{name: "maximum", amount: 1_000_000},
		{name: "below minimum", amount: 999, wantErr: true},
		{name: "above maximum", amount: 1_010_000, wantErr: true},
		{name: "not a charge unit multiple", amount: 15_000, wantErr: true},
		{name: "zero", amount: 0, wantErr: true},
		{name: "negative", amount: -10_000, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.ValidateChargeAmount(tt.amount)
			if tt.wantErr {
				require.ErrorIs(t, err, domainErrors.ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateUseAmountAllowsFinerGranularity(t *testing.T) {
	p := Default()

	// 15_000 is not a valid charge but is a valid use under default units.
	require.Error(t, p.ValidateChargeAmount(15_000))
	require.NoError(t, p.ValidateUseAmount(15_000))
}

func TestValidateBalance(t *testing.T) {
	p := Default()

	require.NoError(t, p.ValidateBalance(0))
	require.NoError(t, p.ValidateBalance(1_000_000))

	err := p.ValidateBalance(1_000_001)
	require.ErrorIs(t, err, domainErrors.ErrMaxBalanceExceeded)
	assert.Contains(t, err.Error(), "1000001")
	assert.Contains(t, err.Error(), "1000000")

	err = p.ValidateBalance(-1)
	require.ErrorIs(t, err, domainErrors.ErrNegativeBalance)
	assert.Contains(t, err.Error(), "-1")
}

func TestValidationErrorsCarryLimits(t *testing.T) {
	p := Default()

	err := p.ValidateChargeAmount(500)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "1000")

	err = p.ValidateChargeAmount(13_000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10000")
}
