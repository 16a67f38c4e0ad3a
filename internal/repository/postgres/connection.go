package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"docmanagement/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool sizing
const (
	maxConns        = 25
	minConns        = 5
	maxConnIdleTime = 5 * time.Minute

	// pgBouncerPort is where transaction pooling runs; prepared statements
	// do not survive it.
	pgBouncerPort = 6543
)

// RepositoryConfig is shared by the folder and document repositories
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds the environment-prefixed table names
type TableNames struct {
	Folders   string
	Documents string
	Versions  string // goose version table
}

// NewTableNames prefixes every table, e.g. "dev_" gives dev_folders
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Folders:   prefix + "folders",
		Documents: prefix + "documents",
		Versions:  prefix + "schema_versions",
	}
}

// CreateConnectionPool opens and pings a pool for databaseURL.
//
// Port 6543 is the PgBouncer (Supabase pooler) port, which runs in
// transaction pooling mode. There a server connection is handed to another
// client after every transaction, so named prepared statements created by
// pgx's default cache_statement mode end up on backends that have never
// seen them and fail with "prepared statement does not exist". The pool
// switches to cache_describe on that port: statements are described once
// and then sent unnamed, which survives backend swaps at the cost of one
// extra round trip per new query text. Any other mode set in the URL via
// default_query_exec_mode is left alone.
//
// Table names are interpolated from the environment prefix, so each prefix
// yields its own query texts and its own cache entries. That is expected.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.MaxConnIdleTime = maxConnIdleTime

	conn := cfg.ConnConfig
	if conn.Port == pgBouncerPort && conn.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		conn.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// GetExecutor returns the transaction carried by ctx, falling back to pool
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}
