package postgres

import (
	"context"
	"log/slog"

	"docmanagement/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionManager opens pgx transactions on the pool
type TransactionManager struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewTransactionManager creates a transaction manager over pool
func NewTransactionManager(pool *pgxpool.Pool, logger *slog.Logger) repositories.TransactionManager {
	return &TransactionManager{pool: pool, logger: logger}
}

// ExecTx runs fn in a transaction, or in the caller's when ctx has one
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if repositories.TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	err := pgx.BeginFunc(ctx, tm.pool, func(tx pgx.Tx) error {
		return fn(repositories.ContextWithTx(ctx, tx))
	})
	if err != nil {
		tm.logger.Debug("transaction rolled back", "error", err)
	}
	return err
}
