package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"hotel-backend/internal/domains/order/model"
)

type OrderRepository interface {
	CreateOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error
	CreateOrderLinesWithTx(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error

	GetOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	GetOrderLines(ctx context.Context, orderID uuid.UUID) ([]model.OrderLine, error)

	// UpdateStatus only succeeds while the stored status still equals from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.Status, at time.Time) error
}
