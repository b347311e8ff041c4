package portstest

import (
	"context"
	"slices"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/document"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/penalty"
	"dispatch/internal/pkg/errs"
)

type orderRepository struct{ store *Store }

func (r orderRepository) Add(_ context.Context, o *order.Order) error {
	if err := r.store.fail("OrderRepository.Add"); err != nil {
		return err
	}
	for _, existing := range r.store.data.orders {
		if existing.Number() == o.Number() {
			return errs.NewConflictError("order number", o.Number())
		}
	}
	r.store.data.orders[o.ID()] = *o
	return nil
}

func (r orderRepository) Update(_ context.Context, o *order.Order) error {
	if err := r.store.fail("OrderRepository.Update"); err != nil {
		return err
	}
	if _, ok := r.store.data.orders[o.ID()]; !ok {
		return errs.NewObjectNotFoundError("order", o.ID())
	}
	r.store.data.orders[o.ID()] = *o
	return nil
}

func (r orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := r.store.data.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return &o, nil
}

func (r orderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r orderRepository) ListHeldBy(_ context.Context, companyID kernel.UUID) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.store.data.orders {
		if o.IsHeldBy(companyID) {
			out = append(out, &o)
		}
	}
	return out, nil
}

type companyRepository struct{ store *Store }

func (r companyRepository) Add(_ context.Context, c *company.Company) error {
	if _, ok := r.store.data.companies[c.ID()]; ok {
		return errs.NewConflictError("company", c.ID())
	}
	r.store.data.companies[c.ID()] = *c
	return nil
}

func (r companyRepository) Get(_ context.Context, id kernel.UUID) (*company.Company, error) {
	c, ok := r.store.data.companies[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("company", id)
	}
	return &c, nil
}

func (r companyRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*company.Company, error) {
	return r.Get(ctx, id)
}

// SavePerformance keeps the stored balance, as the SQL UPDATE does.
func (r companyRepository) SavePerformance(_ context.Context, c *company.Company) error {
	stored, ok := r.store.data.companies[c.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("company", c.ID())
	}
	updated, err := company.RestoreCompany(c.ID(), c.Name(), c.Email(), c.Rating(),
		c.Performance(), stored.Balance(), c.CreatedAt())
	if err != nil {
		return err
	}
	r.store.data.companies[c.ID()] = *updated
	return nil
}

func (r companyRepository) AdjustBalance(_ context.Context, id kernel.UUID, delta kernel.Money) error {
	if err := r.store.fail("CompanyRepository.AdjustBalance"); err != nil {
		return err
	}
	stored, ok := r.store.data.companies[id]
	if !ok {
		return errs.NewObjectNotFoundError("company", id)
	}
	updated, err := company.RestoreCompany(stored.ID(), stored.Name(), stored.Email(), stored.Rating(),
		stored.Performance(), stored.Balance().Add(delta), stored.CreatedAt())
	if err != nil {
		return err
	}
	r.store.data.companies[id] = *updated
	return nil
}

func (r companyRepository) List(_ context.Context) ([]*company.Company, error) {
	out := make([]*company.Company, 0, len(r.store.data.companies))
	for _, c := range r.store.data.companies {
		out = append(out, &c)
	}
	return out, nil
}

type assignmentRepository struct{ store *Store }

func (r assignmentRepository) Add(_ context.Context, a *assignment.Assignment) error {
	if err := r.store.fail("AssignmentRepository.Add"); err != nil {
		return err
	}
	for _, existing := range r.store.data.assignments {
		if existing.IsActive() && existing.OrderID().IsEqual(a.OrderID()) {
			return errs.NewConflictError("order assignment", a.OrderID())
		}
	}
	r.store.data.assignments = append(r.store.data.assignments, *a)
	return nil
}

func (r assignmentRepository) Update(_ context.Context, a *assignment.Assignment) error {
	for i, existing := range r.store.data.assignments {
		if existing.ID().IsEqual(a.ID()) {
			r.store.data.assignments[i] = *a
			return nil
		}
	}
	return errs.NewObjectNotFoundError("assignment", a.ID())
}

func (r assignmentRepository) FindActiveByOrder(_ context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	for _, a := range r.store.data.assignments {
		if a.IsActive() && a.OrderID().IsEqual(orderID) {
			return &a, nil
		}
	}
	return nil, nil
}

func (r assignmentRepository) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*assignment.Assignment, error) {
	var out []*assignment.Assignment
	for _, a := range r.store.data.assignments {
		if a.OrderID().IsEqual(orderID) {
			out = append(out, &a)
		}
	}
	return out, nil
}

type penaltyRuleRepository struct{ store *Store }

func (r penaltyRuleRepository) ListActive(_ context.Context) ([]penalty.Rule, error) {
	var out []penalty.Rule
	for _, rule := range r.store.data.rules {
		if rule.IsActive() {
			out = append(out, rule)
		}
	}
	slices.SortStableFunc(out, func(a, b penalty.Rule) int {
		return a.HoursFrom() - b.HoursFrom()
	})
	return out, nil
}

func (r penaltyRuleRepository) ReplaceAll(_ context.Context, rules []penalty.Rule) error {
	r.store.data.rules = slices.Clone(rules)
	return nil
}

type ledgerRepository struct{ store *Store }

func (r ledgerRepository) Add(_ context.Context, e *ledger.Entry) error {
	if err := r.store.fail("LedgerRepository.Add"); err != nil {
		return err
	}
	r.store.data.entries = append(r.store.data.entries, *e)
	return nil
}

func (r ledgerRepository) SumByCompany(_ context.Context, companyID kernel.UUID) (kernel.Money, error) {
	sum := kernel.ZeroMoney()
	for _, e := range r.store.data.entries {
		if e.CompanyID().IsEqual(companyID) {
			sum = sum.Add(e.Amount())
		}
	}
	return sum, nil
}

func (r ledgerRepository) ListByCompany(_ context.Context, companyID kernel.UUID) ([]*ledger.Entry, error) {
	var out []*ledger.Entry
	for _, e := range r.store.data.entries {
		if e.CompanyID().IsEqual(companyID) {
			out = append(out, &e)
		}
	}
	return out, nil
}

type documentRepository struct{ store *Store }

func (r documentRepository) Add(_ context.Context, d *document.Document) error {
	for _, existing := range r.store.data.documents {
		if existing.SHA256() == d.SHA256() {
			return errs.NewDuplicateDocumentError(d.SHA256())
		}
	}
	r.store.data.documents[d.ID()] = *d
	return nil
}

func (r documentRepository) Update(_ context.Context, d *document.Document) error {
	if _, ok := r.store.data.documents[d.ID()]; !ok {
		return errs.NewObjectNotFoundError("document", d.ID())
	}
	r.store.data.documents[d.ID()] = *d
	return nil
}

func (r documentRepository) GetForUpdate(_ context.Context, id kernel.UUID) (*document.Document, error) {
	d, ok := r.store.data.documents[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("document", id)
	}
	return &d, nil
}

func (r documentRepository) ExistsBySHA256(_ context.Context, sha256 string) (bool, error) {
	for _, d := range r.store.data.documents {
		if d.SHA256() == sha256 {
			return true, nil
		}
	}
	return false, nil
}

type deliveryRepository struct{ store *Store }

func (r deliveryRepository) Add(_ context.Context, d *delivery.Delivery) error {
	if _, ok := r.store.data.deliveries[d.OrderID()]; ok {
		return errs.NewConflictError("delivery", d.OrderID())
	}
	r.store.data.deliveries[d.OrderID()] = *d
	return nil
}

func (r deliveryRepository) Update(_ context.Context, d *delivery.Delivery) error {
	if _, ok := r.store.data.deliveries[d.OrderID()]; !ok {
		return errs.NewObjectNotFoundError("delivery", d.OrderID())
	}
	r.store.data.deliveries[d.OrderID()] = *d
	return nil
}

func (r deliveryRepository) GetByOrder(_ context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	d, ok := r.store.data.deliveries[orderID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery", orderID)
	}
	return &d, nil
}
