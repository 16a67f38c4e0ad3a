package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories translate
const (
	codeForeignKeyViolation = "23503"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// violatesForeignKey reports a folder/document reference that does not
// hold: an unknown folder_id on write, or a folder still referenced on delete.
func violatesForeignKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}
