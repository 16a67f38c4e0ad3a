package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// Migrate brings the prefixed schema up to date. Migrations are Go functions
// rather than embedded SQL files because every table name carries the
// environment prefix.
func Migrate(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, logger *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := newProvider(db, tables)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, res := range results {
		logger.Info("migration applied",
			"version", res.Source.Version,
			"duration", res.Duration,
		)
	}

	return nil
}

// Rollback reverts every applied migration, dropping the prefixed tables.
func Rollback(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, logger *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := newProvider(db, tables)
	if err != nil {
		return err
	}

	results, err := provider.DownTo(ctx, 0)
	if err != nil {
		return fmt.Errorf("revert migrations: %w", err)
	}

	for _, res := range results {
		logger.Info("migration reverted",
			"version", res.Source.Version,
			"duration", res.Duration,
		)
	}

	return nil
}

func newProvider(db *sql.DB, tables *TableNames) (*goose.Provider, error) {
	store, err := database.NewStore(database.DialectPostgres, tables.Versions)
	if err != nil {
		return nil, fmt.Errorf("create migration store: %w", err)
	}

	provider, err := goose.NewProvider("", db, nil,
		goose.WithStore(store),
		goose.WithGoMigrations(migrations(tables)...),
	)
	if err != nil {
		return nil, fmt.Errorf("create migration provider: %w", err)
	}
	return provider, nil
}

// migrations returns the ordered schema history for tables.
func migrations(tables *TableNames) []*goose.Migration {
	return []*goose.Migration{
		goose.NewGoMigration(1,
			execTx(fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					id          BIGSERIAL PRIMARY KEY,
					title       VARCHAR(255) NOT NULL,
					description TEXT,
					created     TIMESTAMPTZ
				)`, tables.Folders)),
			execTx(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, tables.Folders)),
		),
		goose.NewGoMigration(2,
			execTx(fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					id                BIGSERIAL PRIMARY KEY,
					title             VARCHAR(255) NOT NULL,
					description       TEXT,
					data              BYTEA NOT NULL,
					data_content_type VARCHAR(255) NOT NULL,
					uploaded          TIMESTAMPTZ,
					folder_id         BIGINT REFERENCES %s (id)
				)`, tables.Documents, tables.Folders)),
			execTx(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, tables.Documents)),
		),
		goose.NewGoMigration(3,
			execTx(fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_folder_id_idx ON %s (folder_id)`,
				tables.Documents, tables.Documents)),
			execTx(fmt.Sprintf(`DROP INDEX IF EXISTS %s_folder_id_idx`, tables.Documents)),
		),
	}
}

// execTx wraps a single statement as a transactional goose step
func execTx(statement string) *goose.GoFunc {
	return &goose.GoFunc{
		RunTx: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, statement)
			return err
		},
	}
}
