package commands_test

import (
	"strings"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejectOrderCommandHandler_PenaltyBands(t *testing.T) {
	tests := []struct {
		name    string
		before  time.Duration
		penalty string
	}{
		{"after installation start", -2 * time.Hour, "50.00"},
		{"exactly at installation", 0, "50.00"},
		{"24h", 24 * time.Hour, "50.00"},
		{"24h59m floors to 24", 24*time.Hour + 59*time.Minute, "50.00"},
		{"25h", 25 * time.Hour, "20.00"},
		{"48h", 48 * time.Hour, "20.00"},
		{"49h", 49 * time.Hour, "10.00"},
		{"72h", 72 * time.Hour, "10.00"},
		{"73h is free", 73 * time.Hour, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.clock.At = installAt.Add(-tt.before)
			companyID, user := f.company(t, "Montage")
			orderID := f.inboxOrder(t)
			f.assign(t, orderID, companyID)

			require.NoError(t, f.reject(t, orderID, companyID, user, ""))

			o := f.store.Order(orderID)
			assert.Equal(t, order.OpenPool, o.Status())
			assert.Equal(t, tt.penalty, o.BonusPot().String())

			entries := f.store.Entries(companyID)
			if tt.penalty == "0.00" {
				assert.Empty(t, entries)
			} else {
				require.Len(t, entries, 1)
				assert.Equal(t, "-"+tt.penalty, entries[0].Amount().String())
			}
			f.requireBalanced(t, companyID)
		})
	}
}

func TestRejectOrderCommandHandler_PotAccumulatesAcrossRejections(t *testing.T) {
	f := newFixture(t)
	companyA, userA := f.company(t, "Montage A")
	companyB, userB := f.company(t, "Montage B")
	orderID := f.poolOrder(t)

	require.NoError(t, f.take(t.Context(), orderID, companyA, userA))
	require.NoError(t, f.reject(t, orderID, companyA, userA, ""))

	f.clock.Advance(30 * time.Hour)
	require.NoError(t, f.take(t.Context(), orderID, companyB, userB))
	require.NoError(t, f.reject(t, orderID, companyB, userB, ""))

	assert.Equal(t, "70.00", f.store.Order(orderID).BonusPot().String())
	assert.Equal(t, "-20.00", f.store.Company(companyA).Balance().String())
	assert.Equal(t, "-50.00", f.store.Company(companyB).Balance().String())
	assert.Equal(t, "open_pool", string(f.store.Entries(companyA)[0].Source()))
}

func TestRejectOrderCommandHandler_FromInProgress(t *testing.T) {
	f := newFixture(t)
	companyID, user := f.company(t, "Montage")
	orderID := f.inboxOrder(t)
	f.assign(t, orderID, companyID)

	start, err := commands.NewStartOrderCommand(orderID, companyID, user)
	require.NoError(t, err)
	require.NoError(t, commands.NewStartOrderCommandHandler(f.factory, f.clock).Handle(t.Context(), start))

	require.NoError(t, f.reject(t, orderID, companyID, user, ""))
	assert.Equal(t, order.OpenPool, f.store.Order(orderID).Status())
}

func TestRejectOrderCommandHandler_DefaultReason(t *testing.T) {
	f := newFixture(t)
	companyID, user := f.company(t, "Montage")
	orderID := f.inboxOrder(t)
	f.assign(t, orderID, companyID)

	require.NoError(t, f.reject(t, orderID, companyID, user, "   "))

	history := f.store.Assignments(orderID)
	require.Len(t, history, 1)
	assert.Equal(t, commands.DefaultRejectReason, history[0].UnassignReason())
	assert.Contains(t, f.store.Entries(companyID)[0].Comment(), commands.DefaultRejectReason)
}

func TestRejectOrderCommandHandler_DispatcherActsForHolder(t *testing.T) {
	f := newFixture(t)
	companyID, _ := f.company(t, "Montage")
	orderID := f.inboxOrder(t)
	f.assign(t, orderID, companyID)

	require.NoError(t, f.reject(t, orderID, companyID, f.dispatcher, ""))
	assert.Equal(t, "-20.00", f.store.Company(companyID).Balance().String())
}

func TestRejectOrderCommandHandler_NotOwner(t *testing.T) {
	f := newFixture(t)
	companyA, _ := f.company(t, "Montage A")
	companyB, userB := f.company(t, "Montage B")

	t.Run("held by another company", func(t *testing.T) {
		orderID := f.inboxOrder(t)
		f.assign(t, orderID, companyA)

		err := f.reject(t, orderID, companyB, userB, "")

		require.ErrorIs(t, err, errs.ErrNotOwner)
		assert.True(t, f.store.Order(orderID).IsHeldBy(companyA))
	})

	t.Run("not held at all", func(t *testing.T) {
		orderID := f.poolOrder(t)

		err := f.reject(t, orderID, companyB, userB, "")

		require.ErrorIs(t, err, errs.ErrNotOwner)
	})

	assert.Empty(t, f.store.Entries(companyA))
	assert.Empty(t, f.store.Entries(companyB))
}

func TestRejectOrderCommandHandler_AlreadyFinished(t *testing.T) {
	f := newFixture(t)
	companyID, user := f.company(t, "Montage")
	orderID := f.inboxOrder(t)
	f.assign(t, orderID, companyID)
	require.NoError(t, f.finish(t, orderID, companyID, user))

	err := f.reject(t, orderID, companyID, user, "")

	require.ErrorIs(t, err, errs.ErrAlreadyFinished)
	assert.Equal(t, order.Finished, f.store.Order(orderID).Status())
	assert.Len(t, f.store.Entries(companyID), 1)
}

func TestRejectOrderCommandHandler_UnknownOrder(t *testing.T) {
	f := newFixture(t)
	companyID, user := f.company(t, "Montage")

	err := f.reject(t, kernel.NewUUID(), companyID, user, "")

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewRejectOrderCommand(t *testing.T) {
	f := newFixture(t)
	companyID, user := f.company(t, "Montage")
	orderID := kernel.NewUUID()

	t.Run("long reason is cut to 200 characters", func(t *testing.T) {
		cmd, err := commands.NewRejectOrderCommand(orderID, companyID, strings.Repeat("ü", 250), user)

		require.NoError(t, err)
		assert.Equal(t, 200, len([]rune(cmd.Reason())))
	})

	t.Run("blank reason falls back", func(t *testing.T) {
		cmd, err := commands.NewRejectOrderCommand(orderID, companyID, "", user)

		require.NoError(t, err)
		assert.Equal(t, commands.DefaultRejectReason, cmd.Reason())
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, companyID, cmd.CompanyID())
	})

	t.Run("zero ids", func(t *testing.T) {
		_, err := commands.NewRejectOrderCommand(kernel.UUID{}, companyID, "", user)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("unconstructed command", func(t *testing.T) {
		handler := commands.NewRejectOrderCommandHandler(f.factory, f.clock)

		err := handler.Handle(t.Context(), commands.RejectOrderCommand{})

		require.ErrorIs(t, err, commands.ErrRejectOrderCommandIsNotConstructed)
	})
}
