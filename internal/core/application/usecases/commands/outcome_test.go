package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePhoto = commands.Photo{Filename: "wall.jpg", Content: []byte{0xff, 0xd8, 0xff}}

func (f *fixture) reportOutcome(
	t *testing.T,
	orderID, companyID kernel.UUID,
	outcome order.Status,
	category order.ReasonCategory,
	a actor.Actor,
) error {
	t.Helper()
	cmd, err := commands.NewReportOutcomeCommand(orderID, companyID, outcome, category, "wall not load-bearing", samplePhoto, a)
	require.NoError(t, err)
	return commands.NewReportOutcomeCommandHandler(f.factory, f.blobs, f.clock).Handle(t.Context(), cmd)
}

func TestReportOutcomeCommandHandler_Storno(t *testing.T) {
	f := newFixture(t)
	companyID, user := f.company(t, "Montage")
	orderID := f.inboxOrder(t)
	f.assign(t, orderID, companyID)

	require.NoError(t, f.reportOutcome(t, orderID, companyID, order.Storno, order.ReasonNeutral, user))

	o := f.store.Order(orderID)
	assert.Equal(t, order.Storno, o.Status())
	require.NotNil(t, o.Reason())
	assert.Equal(t, order.ReasonNeutral, o.Reason().Category())
	assert.Equal(t, "wall not load-bearing", o.Reason().Text())

	photo, err := f.blobs.Get(t.Context(), o.Reason().PhotoRef())
	require.NoError(t, err)
	assert.Equal(t, samplePhoto.Content, photo)

	c := f.store.Company(companyID)
	assert.Equal(t, 1, c.Performance().StornoCount)
	assert.Equal(t, "3.00", c.Rating().StringFixed(2))
	assert.Empty(t, f.store.Entries(companyID))
}

func TestReportOutcomeCommandHandler_NotPossibleByFault(t *testing.T) {
	f := newFixture(t)
	companyID, user := f.company(t, "Montage")
	orderID := f.inboxOrder(t)
	f.assign(t, orderID, companyID)

	require.NoError(t, f.reportOutcome(t, orderID, companyID, order.NotPossible, order.ReasonCompanyFault, user))

	c := f.store.Company(companyID)
	assert.Equal(t, 1, c.Performance().NotPossibleCount)
	assert.Equal(t, 1, c.Performance().CompanyFaultCount)
	assert.Equal(t, "1.00", c.Rating().StringFixed(2))
}

func TestReportOutcomeCommandHandler_RefusalsLeaveNoPhoto(t *testing.T) {
	f := newFixture(t)
	companyA, userA := f.company(t, "Montage A")
	companyB, userB := f.company(t, "Montage B")

	t.Run("not the holder", func(t *testing.T) {
		orderID := f.inboxOrder(t)
		f.assign(t, orderID, companyA)

		err := f.reportOutcome(t, orderID, companyB, order.Storno, order.ReasonNeutral, userB)

		require.ErrorIs(t, err, errs.ErrNotOwner)
	})

	t.Run("already finished", func(t *testing.T) {
		orderID := f.inboxOrder(t)
		f.assign(t, orderID, companyA)
		require.NoError(t, f.finish(t, orderID, companyA, userA))

		err := f.reportOutcome(t, orderID, companyA, order.Storno, order.ReasonNeutral, userA)

		require.ErrorIs(t, err, errs.ErrAlreadyFinished)
	})

	t.Run("already storno", func(t *testing.T) {
		orderID := f.inboxOrder(t)
		f.assign(t, orderID, companyA)
		require.NoError(t, f.reportOutcome(t, orderID, companyA, order.Storno, order.ReasonNeutral, userA))
		stored := f.blobs.Len()

		err := f.reportOutcome(t, orderID, companyA, order.NotPossible, order.ReasonNeutral, userA)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, stored, f.blobs.Len())
	})

	assert.Equal(t, 1, f.blobs.Len())
}

func TestNewReportOutcomeCommand_Validation(t *testing.T) {
	orderID, companyID := kernel.NewUUID(), kernel.NewUUID()
	user, err := actor.NewCompanyUser(kernel.NewUUID(), companyID)
	require.NoError(t, err)

	tests := []struct {
		name     string
		outcome  order.Status
		category order.ReasonCategory
		text     string
		photo    commands.Photo
		want     error
	}{
		{"finished is not an outcome", order.Finished, order.ReasonNeutral, "x", samplePhoto, errs.ErrValueIsInvalid},
		{"missing category", order.Storno, "", "x", samplePhoto, errs.ErrValueIsInvalid},
		{"blank text", order.Storno, order.ReasonNeutral, "  ", samplePhoto, errs.ErrValueIsRequired},
		{"missing photo", order.NotPossible, order.ReasonNeutral, "x", commands.Photo{}, errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewReportOutcomeCommand(orderID, companyID, tt.outcome, tt.category, tt.text, tt.photo, user)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRecordReasonCommandHandler(t *testing.T) {
	f := newFixture(t)
	companyA, userA := f.company(t, "Montage A")
	_, userB := f.company(t, "Montage B")

	record := func(t *testing.T, orderID kernel.UUID, a actor.Actor) error {
		cmd, err := commands.NewRecordReasonCommand(orderID, order.ReasonCompanyFault, "customer complaint", a)
		require.NoError(t, err)
		return commands.NewRecordReasonCommandHandler(f.factory, f.clock).Handle(t.Context(), cmd)
	}

	t.Run("dispatcher blames the holder of a finished order", func(t *testing.T) {
		orderID := f.inboxOrder(t)
		f.assign(t, orderID, companyA)
		require.NoError(t, f.finish(t, orderID, companyA, userA))

		require.NoError(t, record(t, orderID, f.dispatcher))

		o := f.store.Order(orderID)
		require.NotNil(t, o.Reason())
		assert.True(t, o.Reason().IsCompanyFault())
		assert.Equal(t, 1, f.store.Company(companyA).Performance().CompanyFaultCount)
		assert.Equal(t, "2.00", f.store.Company(companyA).Rating().StringFixed(2))
	})

	t.Run("other company is refused", func(t *testing.T) {
		orderID := f.inboxOrder(t)
		f.assign(t, orderID, companyA)

		require.ErrorIs(t, record(t, orderID, userB), errs.ErrForbidden)
	})

	t.Run("unheld order", func(t *testing.T) {
		orderID := f.poolOrder(t)

		require.ErrorIs(t, record(t, orderID, f.dispatcher), errs.ErrInvalidState)
	})

	t.Run("recategorising a storno keeps its photo", func(t *testing.T) {
		orderID := f.inboxOrder(t)
		f.assign(t, orderID, companyA)
		require.NoError(t, f.reportOutcome(t, orderID, companyA, order.Storno, order.ReasonNeutral, userA))
		photoRef := f.store.Order(orderID).Reason().PhotoRef()

		require.NoError(t, record(t, orderID, f.dispatcher))

		reason := f.store.Order(orderID).Reason()
		assert.Equal(t, photoRef, reason.PhotoRef())
		assert.Equal(t, "customer complaint", reason.Text())
	})
}
