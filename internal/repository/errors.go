package repository

import (
	"errors"

	"blogcms/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// mapErr decides the error kind at the persistence boundary.
func mapErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.Wrap(errs.NotFound, what+" not found", err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return errs.Wrap(errs.Conflict, what+" already exists", err).WithDetails(map[string]string{
			"constraint": pgErr.ConstraintName,
		})
	}
	return errs.Wrap(errs.Unknown, what+" query failed", err)
}
