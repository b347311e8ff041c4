package commands_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_RejectThenTakeAndFinish(t *testing.T) {
	f := newFixture(t)
	companyA, userA := f.company(t, "Montage A")
	companyB, userB := f.company(t, "Montage B")
	orderID := f.inboxOrder(t)

	f.assign(t, orderID, companyA)
	require.NoError(t, f.reject(t, orderID, companyA, userA, "truck broke down"))

	o := f.store.Order(orderID)
	assert.Equal(t, order.OpenPool, o.Status())
	assert.Nil(t, o.CurrentCompany())
	assert.Equal(t, "20.00", o.BonusPot().String())
	assert.Equal(t, "-20.00", f.store.Company(companyA).Balance().String())
	assert.Empty(t, f.store.ActiveAssignments(orderID))

	penalties := f.store.Entries(companyA)
	require.Len(t, penalties, 1)
	assert.Equal(t, ledger.Penalty, penalties[0].Type())
	assert.Equal(t, ledger.Direct, penalties[0].Source())
	assert.Equal(t, "-20.00", penalties[0].Amount().String())
	assert.Contains(t, penalties[0].Comment(), o.Number())
	assert.Contains(t, penalties[0].Comment(), "48h")
	assert.Contains(t, penalties[0].Comment(), "truck broke down")

	require.NoError(t, f.take(t.Context(), orderID, companyB, userB))
	require.NoError(t, f.finish(t, orderID, companyB, userB))

	o = f.store.Order(orderID)
	assert.Equal(t, order.Finished, o.Status())
	assert.True(t, o.BonusPot().IsZero())

	credits := f.store.Entries(companyB)
	require.Len(t, credits, 2)
	assert.Equal(t, ledger.BasePayment, credits[0].Type())
	assert.Equal(t, "100.00", credits[0].Amount().String())
	assert.Equal(t, ledger.BonusCredit, credits[1].Type())
	assert.Equal(t, "20.00", credits[1].Amount().String())
	for _, e := range credits {
		assert.Equal(t, ledger.OpenPool, e.Source())
	}
	assert.Equal(t, "120.00", f.store.Company(companyB).Balance().String())

	f.requireBalanced(t, companyA)
	f.requireBalanced(t, companyB)

	history := f.store.Assignments(orderID)
	require.Len(t, history, 2)
	assert.Equal(t, "truck broke down", history[0].UnassignReason())
	assert.True(t, history[1].IsActive())

	rated := f.store.Company(companyB)
	assert.Equal(t, "5.00", rated.Rating().StringFixed(2))
	assert.Equal(t, 1, rated.Performance().OrdersFinished)
	assert.Equal(t, 0, f.store.Company(companyA).Performance().OrdersTotal)
}

func TestLifecycle_ConcurrentTakeHasOneWinner(t *testing.T) {
	f := newFixture(t)
	orderID := f.poolOrder(t)

	const racers = 8
	type racer struct {
		companyID kernel.UUID
		user      actor.Actor
	}
	racersList := make([]racer, racers)
	for i := range racersList {
		id, user := f.company(t, "Racer")
		racersList[i] = racer{companyID: id, user: user}
	}

	results := make([]error, racers)
	var wg sync.WaitGroup
	for i, r := range racersList {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = f.take(t.Context(), orderID, r.companyID, r.user)
		}()
	}
	wg.Wait()

	var winners int
	for _, err := range results {
		if err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, err, errs.ErrAlreadyTaken)
		assert.ErrorIs(t, err, errs.ErrConflict)
	}
	assert.Equal(t, 1, winners)
	assert.Len(t, f.store.ActiveAssignments(orderID), 1)
	assert.True(t, f.store.Order(orderID).TakenFromPool())
}

func TestLifecycle_TakeRequiresOpenPool(t *testing.T) {
	f := newFixture(t)
	companyID, user := f.company(t, "Montage")
	orderID := f.inboxOrder(t)

	err := f.take(t.Context(), orderID, companyID, user)

	require.ErrorIs(t, err, errs.ErrAlreadyTaken)
	assert.Equal(t, order.Inbox, f.store.Order(orderID).Status())
}

func TestLifecycle_AssignTwiceIsRejected(t *testing.T) {
	f := newFixture(t)
	companyA, _ := f.company(t, "Montage A")
	companyB, _ := f.company(t, "Montage B")
	orderID := f.inboxOrder(t)

	f.assign(t, orderID, companyA)

	cmd, err := commands.NewAssignOrderCommand(orderID, companyB, f.dispatcher)
	require.NoError(t, err)
	err = commands.NewAssignOrderCommandHandler(f.factory, f.clock).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.True(t, f.store.Order(orderID).IsHeldBy(companyA))
	assert.Len(t, f.store.ActiveAssignments(orderID), 1)
}

func TestLifecycle_AssignUnknownCompany(t *testing.T) {
	f := newFixture(t)
	orderID := f.inboxOrder(t)

	cmd, err := commands.NewAssignOrderCommand(orderID, kernel.NewUUID(), f.dispatcher)
	require.NoError(t, err)
	err = commands.NewAssignOrderCommandHandler(f.factory, f.clock).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, order.Inbox, f.store.Order(orderID).Status())
}

func TestLifecycle_CompanyUserCannotAssign(t *testing.T) {
	f := newFixture(t)
	companyID, user := f.company(t, "Montage")
	orderID := f.inboxOrder(t)

	cmd, err := commands.NewAssignOrderCommand(orderID, companyID, user)
	require.NoError(t, err)
	err = commands.NewAssignOrderCommandHandler(f.factory, f.clock).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestLifecycle_CompanyUserCannotActForAnotherCompany(t *testing.T) {
	f := newFixture(t)
	companyA, _ := f.company(t, "Montage A")
	_, userB := f.company(t, "Montage B")
	orderID := f.inboxOrder(t)
	f.assign(t, orderID, companyA)

	err := f.reject(t, orderID, companyA, userB, "")

	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.True(t, f.store.Order(orderID).IsHeldBy(companyA))
}

func TestLifecycle_StartThenFinishPaysBaseOnly(t *testing.T) {
	f := newFixture(t)
	companyID, user := f.company(t, "Montage")
	orderID := f.inboxOrder(t)
	f.assign(t, orderID, companyID)

	start, err := commands.NewStartOrderCommand(orderID, companyID, user)
	require.NoError(t, err)
	require.NoError(t, commands.NewStartOrderCommandHandler(f.factory, f.clock).Handle(t.Context(), start))
	assert.Equal(t, order.InProgress, f.store.Order(orderID).Status())

	require.NoError(t, f.finish(t, orderID, companyID, user))

	entries := f.store.Entries(companyID)
	require.Len(t, entries, 1)
	assert.Equal(t, ledger.BasePayment, entries[0].Type())
	assert.Equal(t, ledger.Direct, entries[0].Source())
	f.requireBalanced(t, companyID)
}

func TestLifecycle_FinishByNonHolder(t *testing.T) {
	f := newFixture(t)
	companyA, _ := f.company(t, "Montage A")
	companyB, userB := f.company(t, "Montage B")
	orderID := f.inboxOrder(t)
	f.assign(t, orderID, companyA)

	err := f.finish(t, orderID, companyB, userB)

	require.ErrorIs(t, err, errs.ErrNotOwner)
	assert.Empty(t, f.store.Entries(companyB))
}

func TestLifecycle_FinishTwice(t *testing.T) {
	f := newFixture(t)
	companyID, user := f.company(t, "Montage")
	orderID := f.inboxOrder(t)
	f.assign(t, orderID, companyID)
	require.NoError(t, f.finish(t, orderID, companyID, user))

	err := f.finish(t, orderID, companyID, user)

	require.Error(t, err)
	assert.Len(t, f.store.Entries(companyID), 1)
}

func TestLifecycle_PublishToPool(t *testing.T) {
	f := newFixture(t)
	orderID := f.inboxOrder(t)

	cmd, err := commands.NewPublishToPoolCommand(orderID, f.dispatcher)
	require.NoError(t, err)
	handler := commands.NewPublishToPoolCommandHandler(f.factory, f.clock)

	require.NoError(t, handler.Handle(t.Context(), cmd))
	assert.Equal(t, order.OpenPool, f.store.Order(orderID).Status())

	err = handler.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestLifecycle_FailuresRollBackEverything(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		operation string
	}{
		{"ledger insert", "LedgerRepository.Add"},
		{"balance update", "CompanyRepository.AdjustBalance"},
		{"order update", "OrderRepository.Update"},
		{"commit", "Commit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			companyID, user := f.company(t, "Montage")
			orderID := f.inboxOrder(t)
			f.assign(t, orderID, companyID)

			f.store.FailOn(tt.operation, boom)
			err := f.reject(t, orderID, companyID, user, "")

			require.ErrorIs(t, err, boom)
			o := f.store.Order(orderID)
			assert.Equal(t, order.Assigned, o.Status())
			assert.True(t, o.IsHeldBy(companyID))
			assert.True(t, o.BonusPot().IsZero())
			assert.Len(t, f.store.ActiveAssignments(orderID), 1)
			assert.Empty(t, f.store.Entries(companyID))
			assert.True(t, f.store.Company(companyID).Balance().IsZero())
		})
	}
}

func TestLifecycle_TakeRollsBackWhenAssignmentInsertFails(t *testing.T) {
	f := newFixture(t)
	companyID, user := f.company(t, "Montage")
	orderID := f.poolOrder(t)
	f.store.FailOn("AssignmentRepository.Add", errors.New("disk full"))

	err := f.take(t.Context(), orderID, companyID, user)

	require.EqualError(t, err, "disk full")
	assert.Equal(t, order.OpenPool, f.store.Order(orderID).Status())
	assert.Empty(t, f.store.Assignments(orderID))
}

func TestLifecycle_RejectAfterClockAdvance(t *testing.T) {
	f := newFixture(t)
	companyID, user := f.company(t, "Montage")
	orderID := f.inboxOrder(t)
	f.assign(t, orderID, companyID)

	f.clock.Advance(30 * time.Hour)
	require.NoError(t, f.reject(t, orderID, companyID, user, ""))

	assert.Equal(t, "-50.00", f.store.Company(companyID).Balance().String())
}
