package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hotel-backend/internal/domains/order/model"
	promotion "hotel-backend/internal/domains/promotion/model"
)

type postgresOrderRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &postgresOrderRepository{pool: pool}
}

func (r *postgresOrderRepository) CreateOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, customer_id, status,
			subtotal, discount_total, grand_total,
			promotion_id, free_service_id, free_service_qty,
			as_of_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	var freeServiceID *uuid.UUID
	var freeServiceQty *int
	if order.FreeService != nil {
		freeServiceID = &order.FreeService.ServiceID
		freeServiceQty = &order.FreeService.Quantity
	}

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.CustomerID,
		string(order.Status),
		order.Subtotal,
		order.DiscountTotal,
		order.GrandTotal,
		order.PromotionID,
		freeServiceID,
		freeServiceQty,
		order.AsOfDate,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *postgresOrderRepository) CreateOrderLinesWithTx(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO order_items (
			id, order_id, service_id, quantity, selected_options,
			unit_price, line_subtotal, line_discount, line_total,
			is_promotion_grant, details, answers, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	for i, line := range lines {
		details, err := json.Marshal(line.Details)
		if err != nil {
			return fmt.Errorf("marshal line details: %w", err)
		}
		var answers []byte
		if len(line.Answers) > 0 {
			answers = line.Answers
		}

		batch.Queue(query,
			line.ID,
			line.OrderID,
			line.ServiceID,
			line.Quantity,
			nonNilStrings(line.SelectedOptions),
			line.UnitPrice,
			line.LineSubtotal,
			line.LineDiscount,
			line.LineTotal,
			line.IsPromotionGrant,
			details,
			answers,
			i,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range lines {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to create order line %d: %w", i, err)
		}
	}

	return nil
}

func (r *postgresOrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `
		SELECT
			id, customer_id, status,
			subtotal, discount_total, grand_total,
			promotion_id, free_service_id, free_service_qty,
			as_of_date, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var (
		o              model.Order
		status         string
		freeServiceID  *uuid.UUID
		freeServiceQty *int32
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CustomerID, &status,
		&o.Subtotal, &o.DiscountTotal, &o.GrandTotal,
		&o.PromotionID, &freeServiceID, &freeServiceQty,
		&o.AsOfDate, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	o.Status = model.Status(status)
	if freeServiceID != nil && freeServiceQty != nil {
		o.FreeService = &promotion.FreeServiceGrant{
			ServiceID: *freeServiceID,
			Quantity:  int(*freeServiceQty),
		}
	}
	return &o, nil
}

func (r *postgresOrderRepository) GetOrderLines(ctx context.Context, orderID uuid.UUID) ([]model.OrderLine, error) {
	query := `
		SELECT
			id, order_id, service_id, quantity, selected_options,
			unit_price, line_subtotal, line_discount, line_total,
			is_promotion_grant, details, answers
		FROM order_items
		WHERE order_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	var lines []model.OrderLine
	for rows.Next() {
		var (
			l       model.OrderLine
			details []byte
			answers []byte
		)
		if err := rows.Scan(
			&l.ID, &l.OrderID, &l.ServiceID, &l.Quantity, &l.SelectedOptions,
			&l.UnitPrice, &l.LineSubtotal, &l.LineDiscount, &l.LineTotal,
			&l.IsPromotionGrant, &details, &answers,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &l.Details); err != nil {
				return nil, fmt.Errorf("decode line details: %w", err)
			}
		}
		if len(answers) > 0 {
			l.Answers = answers
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order lines: %w", err)
	}

	return lines, nil
}

func (r *postgresOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.Status, at time.Time) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`

	result, err := r.pool.Exec(ctx, query, string(to), at, id, string(from))
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Someone else moved the order first.
		return model.NewTransitionError(from, to)
	}
	return nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
