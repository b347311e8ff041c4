package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, number string) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("Max Muster", "Ringstr. 5, Hamburg", "")
	require.NoError(t, err)
	from, _ := order.NewTimeOfDay(10, 0)
	to, _ := order.NewTimeOfDay(14, 0)
	schedule, err := order.NewSchedule(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), from, to)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), number, customer, schedule, kernel.MustMoney("100"), nil, testNow)
	require.NoError(t, err)
	return o
}

// heldOrder returns an order held by companyID, moved to status and, when
// category is set, carrying a reason of that category.
func heldOrder(t *testing.T, companyID kernel.UUID, status order.Status, category order.ReasonCategory) *order.Order {
	t.Helper()

	o := newOrder(t, kernel.NewUUID().String())
	require.NoError(t, o.Assign(companyID, testNow))

	switch status {
	case order.Assigned:
	case order.InProgress:
		require.NoError(t, o.Start(companyID, testNow))
	case order.Finished:
		_, err := o.Finish(companyID, testNow)
		require.NoError(t, err)
	case order.NotPossible, order.Storno:
		reason, err := order.NewReason(category, "documented", "photos/p.jpg")
		require.NoError(t, err)
		require.NoError(t, o.ReportOutcome(companyID, status, reason, testNow))
	default:
		t.Fatalf("unsupported status %s", status)
	}

	if category != "" && !status.IsNegativeOutcome() {
		reason, err := order.NewReason(category, "", "")
		require.NoError(t, err)
		require.NoError(t, o.RecordReason(reason, testNow))
	}
	return o
}
