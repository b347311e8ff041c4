package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFromString(t *testing.T) {
	m, err := kernel.MoneyFromString("20")
	require.NoError(t, err)
	assert.Equal(t, "20.00", m.String())

	_, err = kernel.MoneyFromString("twenty")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestMoney_RoundsToCents(t *testing.T) {
	m := kernel.NewMoney(decimal.RequireFromString("10.005"))

	assert.Equal(t, "10.01", m.String())
}

func TestMoney_Arithmetic(t *testing.T) {
	base := kernel.MustMoney("100")
	penalty := kernel.MustMoney("20")

	assert.Equal(t, "120.00", base.Add(penalty).String())
	assert.Equal(t, "80.00", base.Sub(penalty).String())
	assert.Equal(t, "-20.00", penalty.Neg().String())
	assert.True(t, penalty.Neg().IsNegative())
	assert.True(t, penalty.IsPositive())
	assert.True(t, penalty.Sub(penalty).IsZero())
	assert.True(t, kernel.ZeroMoney().IsZero())
	assert.True(t, kernel.MustMoney("20.0").Equal(penalty))
}
