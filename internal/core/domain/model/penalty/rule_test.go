package penalty_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/penalty"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRule(t *testing.T) {
	t.Run("band includes both ends", func(t *testing.T) {
		r, err := penalty.NewRule(kernel.NewUUID(), "late", 0, 24, kernel.MustMoney("50"), true)

		require.NoError(t, err)
		assert.True(t, r.Contains(0))
		assert.True(t, r.Contains(24))
		assert.False(t, r.Contains(25))
		assert.False(t, r.Contains(-1))
	})

	t.Run("single-hour band", func(t *testing.T) {
		r, err := penalty.NewRule(kernel.NewUUID(), "exact", 10, 10, kernel.MustMoney("20"), true)

		require.NoError(t, err)
		assert.True(t, r.Contains(10))
		assert.False(t, r.Contains(9))
	})

	t.Run("rejects inverted bands and negative penalties", func(t *testing.T) {
		_, err := penalty.NewRule(kernel.NewUUID(), "", 10, 5, kernel.MustMoney("-1"), true)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
