package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hotel-backend/internal/domains/customer/model"
)

type CustomerReader interface {
	FindSnapshot(ctx context.Context, id uuid.UUID) (*model.Snapshot, error)
}

type postgresCustomerRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCustomerRepository(pool *pgxpool.Pool) CustomerReader {
	return &postgresCustomerRepository{pool: pool}
}

func (r *postgresCustomerRepository) FindSnapshot(ctx context.Context, id uuid.UUID) (*model.Snapshot, error) {
	query := `
		SELECT id, birth_date, NULLIF(TRIM(membership_tier), '')
		FROM customers
		WHERE id = $1 AND deleted_at IS NULL
	`

	var s model.Snapshot
	err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.BirthDate, &s.MembershipTier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer snapshot: %w", err)
	}

	return &s, nil
}
