package commands_test

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/penalty"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListHeldBy(ctx context.Context, companyID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockPenaltyRuleRepository struct{ mock.Mock }

func (m *MockPenaltyRuleRepository) ListActive(ctx context.Context) ([]penalty.Rule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]penalty.Rule), args.Error(1)
}

func (m *MockPenaltyRuleRepository) ReplaceAll(ctx context.Context, rules []penalty.Rule) error {
	args := m.Called(ctx, rules)
	return args.Error(0)
}

type MockTxManager struct{ mock.Mock }

func (m *MockTxManager) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTxManager) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockUoW struct{ MockTxManager }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CompanyRepository() ports.CompanyRepository {
	args := m.Called()
	return args.Get(0).(ports.CompanyRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) PenaltyRuleRepository() ports.PenaltyRuleRepository {
	args := m.Called()
	return args.Get(0).(ports.PenaltyRuleRepository)
}

func (m *MockUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

func (m *MockUoW) DocumentRepository() ports.DocumentRepository {
	args := m.Called()
	return args.Get(0).(ports.DocumentRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockPenaltyRuleUoW struct{ MockTxManager }

func (m *MockPenaltyRuleUoW) PenaltyRuleRepository() ports.PenaltyRuleRepository {
	args := m.Called()
	return args.Get(0).(ports.PenaltyRuleRepository)
}

type MockPenaltyRuleUoWFactory struct{ mock.Mock }

func (m *MockPenaltyRuleUoWFactory) Create() commands.PenaltyRuleUoW {
	args := m.Called()
	return args.Get(0).(commands.PenaltyRuleUoW)
}
