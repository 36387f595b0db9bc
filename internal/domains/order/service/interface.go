package service

import (
	"context"

	"github.com/google/uuid"

	"hotel-backend/internal/domains/order/model"
)

type OrderService interface {
	// PriceAndApplyOrder prices the lines, re-checks the chosen promotion and
	// persists the order together with its promotion usage.
	PriceAndApplyOrder(ctx context.Context, req *model.PriceOrderRequest) (*model.OrderResponse, error)

	// QuoteOrder runs the same pricing without writing anything.
	QuoteOrder(ctx context.Context, req *model.PriceOrderRequest) (*model.OrderResponse, error)

	GetOrder(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)
}
