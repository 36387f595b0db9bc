package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	catalogModel "hotel-backend/internal/domains/catalog/model"
	customer "hotel-backend/internal/domains/customer/model"
	"hotel-backend/internal/domains/promotion/model"
)

type mockPromotionRepo struct {
	mock.Mock
}

func (m *mockPromotionRepo) ListActive(ctx context.Context) ([]*model.Promotion, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]*model.Promotion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPromotionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Promotion, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*model.Promotion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPromotionRepo) CreateUsage(ctx context.Context, tx pgx.Tx, usage *model.PromotionUsage) error {
	return m.Called(ctx, tx, usage).Error(0)
}

func (m *mockPromotionRepo) CountUsagesSince(ctx context.Context, customerID, promotionID uuid.UUID, since time.Time) (int, error) {
	args := m.Called(ctx, customerID, promotionID, since)
	return args.Int(0), args.Error(1)
}

type mockCustomers struct {
	mock.Mock
}

func (m *mockCustomers) FindSnapshot(ctx context.Context, id uuid.UUID) (*customer.Snapshot, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*customer.Snapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) FindByID(ctx context.Context, id uuid.UUID) (*catalogModel.ServiceDefinition, error) {
	args := m.Called(ctx, id)
	if def := args.Get(0); def != nil {
		return def.(*catalogModel.ServiceDefinition), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalog) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalogModel.ServiceDefinition, error) {
	args := m.Called(ctx, ids)
	if defs := args.Get(0); defs != nil {
		return defs.(map[uuid.UUID]*catalogModel.ServiceDefinition), args.Error(1)
	}
	return nil, args.Error(1)
}
