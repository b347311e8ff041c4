package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/penalty"
	"dispatch/internal/core/ports/portstest"

	"github.com/stretchr/testify/require"
)

// installAt is 2025-03-14 10:00 in a UTC+1 business zone, i.e. 09:00 UTC.
var (
	businessZone = time.FixedZone("CET", 60*60)
	installDate  = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	installAt    = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
)

type storeFactory struct{ store *portstest.Store }

func (f storeFactory) Create() commands.UoW {
	return f.store.Create()
}

type fixture struct {
	store      *portstest.Store
	factory    storeFactory
	clock      *portstest.Clock
	blobs      *portstest.BlobStore
	dispatcher actor.Actor
}

// newFixture starts the clock 48 hours before installation and seeds the
// penalty table: 0-24h costs 50, 25-48h costs 20, 49-72h costs 10.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := portstest.NewStore()
	store.SeedRules(
		mustRule(t, "last day", 0, 24, "50"),
		mustRule(t, "second day", 25, 48, "20"),
		mustRule(t, "third day", 49, 72, "10"),
	)

	dispatcher, err := actor.NewDispatcher(kernel.NewUUID())
	require.NoError(t, err)

	return &fixture{
		store:      store,
		factory:    storeFactory{store: store},
		clock:      portstest.NewClock(installAt.Add(-48*time.Hour), businessZone),
		blobs:      portstest.NewBlobStore(),
		dispatcher: dispatcher,
	}
}

func mustRule(t *testing.T, name string, from, to int, amount string) penalty.Rule {
	t.Helper()
	rule, err := penalty.NewRule(kernel.NewUUID(), name, from, to, kernel.MustMoney(amount), true)
	require.NoError(t, err)
	return rule
}

// company seeds a company and returns it with an actor acting for it.
func (f *fixture) company(t *testing.T, name string) (kernel.UUID, actor.Actor) {
	t.Helper()

	c, err := company.NewCompany(kernel.NewUUID(), name, "", f.clock.Now())
	require.NoError(t, err)
	f.store.SeedCompany(c)

	user, err := actor.NewCompanyUser(kernel.NewUUID(), c.ID())
	require.NoError(t, err)
	return c.ID(), user
}

func (f *fixture) newOrder(t *testing.T, number string) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("Erika Mustermann", "Hauptstr. 1, Berlin", "+49 30 1234")
	require.NoError(t, err)
	from, _ := order.NewTimeOfDay(10, 0)
	to, _ := order.NewTimeOfDay(12, 0)
	schedule, err := order.NewSchedule(installDate, from, to)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), number, customer, schedule, kernel.MustMoney("100"), nil, f.clock.Now())
	require.NoError(t, err)
	return o
}

// inboxOrder seeds an order in the inbox.
func (f *fixture) inboxOrder(t *testing.T) kernel.UUID {
	t.Helper()
	o := f.newOrder(t, kernel.NewUUID().String()[:8])
	f.store.SeedOrder(o)
	return o.ID()
}

// poolOrder seeds an order in the open pool.
func (f *fixture) poolOrder(t *testing.T) kernel.UUID {
	t.Helper()
	o := f.newOrder(t, kernel.NewUUID().String()[:8])
	require.NoError(t, o.Publish(f.clock.Now()))
	f.store.SeedOrder(o)
	return o.ID()
}

func (f *fixture) assign(t *testing.T, orderID, companyID kernel.UUID) {
	t.Helper()
	cmd, err := commands.NewAssignOrderCommand(orderID, companyID, f.dispatcher)
	require.NoError(t, err)
	require.NoError(t, commands.NewAssignOrderCommandHandler(f.factory, f.clock).Handle(t.Context(), cmd))
}

func (f *fixture) take(ctx context.Context, orderID, companyID kernel.UUID, a actor.Actor) error {
	cmd, err := commands.NewTakeFromPoolCommand(orderID, companyID, a)
	if err != nil {
		return err
	}
	return commands.NewTakeFromPoolCommandHandler(f.factory, f.clock).Handle(ctx, cmd)
}

func (f *fixture) reject(t *testing.T, orderID, companyID kernel.UUID, a actor.Actor, reason string) error {
	t.Helper()
	cmd, err := commands.NewRejectOrderCommand(orderID, companyID, reason, a)
	require.NoError(t, err)
	return commands.NewRejectOrderCommandHandler(f.factory, f.clock).Handle(t.Context(), cmd)
}

func (f *fixture) finish(t *testing.T, orderID, companyID kernel.UUID, a actor.Actor) error {
	t.Helper()
	cmd, err := commands.NewFinishOrderCommand(orderID, companyID, a)
	require.NoError(t, err)
	return commands.NewFinishOrderCommandHandler(f.factory, f.clock).Handle(t.Context(), cmd)
}

// requireBalanced asserts the stored balance equals the ledger sum.
func (f *fixture) requireBalanced(t *testing.T, companyID kernel.UUID) {
	t.Helper()
	sum := kernel.ZeroMoney()
	for _, e := range f.store.Entries(companyID) {
		sum = sum.Add(e.Amount())
	}
	require.True(t, f.store.Company(companyID).Balance().Equal(sum),
		"balance %s != ledger sum %s", f.store.Company(companyID).Balance(), sum)
}
