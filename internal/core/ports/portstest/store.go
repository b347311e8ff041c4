// Package portstest provides an in-memory implementation of the repository
// ports for handler and service tests. A unit of work holds the store mutex
// from Begin until Commit or Rollback, which serializes transactions the way
// the order row lock does in postgres, and Rollback restores the snapshot
// taken at Begin.
package portstest

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/document"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/penalty"
	"dispatch/internal/core/ports"
)

var ErrNoTransaction = errors.New("no active transaction")

type data struct {
	orders      map[kernel.UUID]order.Order
	companies   map[kernel.UUID]company.Company
	assignments []assignment.Assignment
	rules       []penalty.Rule
	entries     []ledger.Entry
	documents   map[kernel.UUID]document.Document
	deliveries  map[kernel.UUID]delivery.Delivery
}

func (d data) clone() data {
	return data{
		orders:      maps.Clone(d.orders),
		companies:   maps.Clone(d.companies),
		assignments: slices.Clone(d.assignments),
		rules:       slices.Clone(d.rules),
		entries:     slices.Clone(d.entries),
		documents:   maps.Clone(d.documents),
		deliveries:  maps.Clone(d.deliveries),
	}
}

// Store is the shared in-memory database.
type Store struct {
	mu       sync.Mutex
	data     data
	failures map[string]error
}

func NewStore() *Store {
	return &Store{
		data: data{
			orders:     map[kernel.UUID]order.Order{},
			companies:  map[kernel.UUID]company.Company{},
			documents:  map[kernel.UUID]document.Document{},
			deliveries: map[kernel.UUID]delivery.Delivery{},
		},
		failures: map[string]error{},
	}
}

// FailOn makes the named operation, e.g. "LedgerRepository.Add", return err.
func (s *Store) FailOn(operation string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[operation] = err
}

func (s *Store) fail(operation string) error {
	return s.failures[operation]
}

// Create implements ports.UnitOfWorkFactory.
func (s *Store) Create() ports.UnitOfWork {
	return &UnitOfWork{store: s}
}

// Seed helpers write directly, outside any transaction.

func (s *Store) SeedCompany(c *company.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.companies[c.ID()] = *c
}

func (s *Store) SeedOrder(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.orders[o.ID()] = *o
}

func (s *Store) SeedRules(rules ...penalty.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.rules = append(s.data.rules, rules...)
}

// Read helpers return copies of the committed state.

func (s *Store) Order(id kernel.UUID) *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.data.orders[id]
	if !ok {
		return nil
	}
	return &o
}

func (s *Store) Company(id kernel.UUID) *company.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.data.companies[id]
	if !ok {
		return nil
	}
	return &c
}

func (s *Store) Assignments(orderID kernel.UUID) []*assignment.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*assignment.Assignment
	for _, a := range s.data.assignments {
		if a.OrderID().IsEqual(orderID) {
			out = append(out, &a)
		}
	}
	return out
}

func (s *Store) ActiveAssignments(orderID kernel.UUID) []*assignment.Assignment {
	var out []*assignment.Assignment
	for _, a := range s.Assignments(orderID) {
		if a.IsActive() {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) Entries(companyID kernel.UUID) []*ledger.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*ledger.Entry
	for _, e := range s.data.entries {
		if e.CompanyID().IsEqual(companyID) {
			out = append(out, &e)
		}
	}
	return out
}

func (s *Store) Documents() []*document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*document.Document, 0, len(s.data.documents))
	for _, d := range s.data.documents {
		out = append(out, &d)
	}
	return out
}

func (s *Store) Delivery(orderID kernel.UUID) *delivery.Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data.deliveries[orderID]
	if !ok {
		return nil
	}
	return &d
}

// UnitOfWork implements ports.UnitOfWork over a Store.
type UnitOfWork struct {
	store    *Store
	snapshot *data
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.snapshot != nil {
		return nil
	}
	u.store.mu.Lock()
	if err := u.store.fail("Begin"); err != nil {
		u.store.mu.Unlock()
		return err
	}
	snap := u.store.data.clone()
	u.snapshot = &snap
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if u.snapshot == nil {
		return ErrNoTransaction
	}
	if err := u.store.fail("Commit"); err != nil {
		u.store.data = *u.snapshot
		u.snapshot = nil
		u.store.mu.Unlock()
		return err
	}
	u.snapshot = nil
	u.store.mu.Unlock()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.snapshot == nil {
		return ErrNoTransaction
	}
	u.store.data = *u.snapshot
	u.snapshot = nil
	u.store.mu.Unlock()
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return orderRepository{store: u.store}
}

func (u *UnitOfWork) CompanyRepository() ports.CompanyRepository {
	return companyRepository{store: u.store}
}

func (u *UnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentRepository{store: u.store}
}

func (u *UnitOfWork) PenaltyRuleRepository() ports.PenaltyRuleRepository {
	return penaltyRuleRepository{store: u.store}
}

func (u *UnitOfWork) LedgerRepository() ports.LedgerRepository {
	return ledgerRepository{store: u.store}
}

func (u *UnitOfWork) DocumentRepository() ports.DocumentRepository {
	return documentRepository{store: u.store}
}

func (u *UnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryRepository{store: u.store}
}
