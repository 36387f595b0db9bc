package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	catalogModel "hotel-backend/internal/domains/catalog/model"
	customer "hotel-backend/internal/domains/customer/model"
	"hotel-backend/internal/domains/order/model"
	promoModel "hotel-backend/internal/domains/promotion/model"
	"hotel-backend/pkg/database"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) CreateOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	return m.Called(ctx, tx, order).Error(0)
}

func (m *mockOrderRepo) CreateOrderLinesWithTx(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error {
	return m.Called(ctx, tx, lines).Error(0)
}

func (m *mockOrderRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*model.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepo) GetOrderLines(ctx context.Context, orderID uuid.UUID) ([]model.OrderLine, error) {
	args := m.Called(ctx, orderID)
	if l := args.Get(0); l != nil {
		return l.([]model.OrderLine), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.Status, at time.Time) error {
	return m.Called(ctx, id, from, to, at).Error(0)
}

type mockPromotionRepo struct {
	mock.Mock
}

func (m *mockPromotionRepo) ListActive(ctx context.Context) ([]*promoModel.Promotion, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]*promoModel.Promotion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPromotionRepo) FindByID(ctx context.Context, id uuid.UUID) (*promoModel.Promotion, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*promoModel.Promotion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPromotionRepo) CreateUsage(ctx context.Context, tx pgx.Tx, usage *promoModel.PromotionUsage) error {
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

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(task, opts)
	if info := args.Get(0); info != nil {
		return info.(*asynq.TaskInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeTx runs fn without a database and remembers how often it was asked to.
type fakeTx struct {
	calls int
}

func (f *fakeTx) WithTx(_ context.Context, fn database.TxFunc) error {
	f.calls++
	return fn(nil)
}
