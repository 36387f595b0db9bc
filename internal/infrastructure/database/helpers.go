package database

import (
	"context"
	"fmt"
	"time"

	"hotel-backend/pkg/logger"
)

// Ping verifies the pool is initialised and the server answers within 5s.
func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close is idempotent.
func (db *PostgresDB) Close() {
	if db.Pool == nil {
		return
	}

	logger.Info("[DATABASE] Closing connection pool", nil)
	db.Pool.Close()
	db.Pool = nil
}
