package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrEmailTaken is returned when a user is created with an email already on file.
var ErrEmailTaken = errors.New("email already exists")

const (
	uniqueViolation = "23505"
	// Raised when a path id is not a valid UUID. Enum-like columns are TEXT
	// with CHECK constraints, so UUID keys are the only source.
	invalidTextRepresentation = "22P02"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// notFoundOnMalformedID reports a lookup by a malformed id as a missing row.
func notFoundOnMalformedID(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation {
		return pgx.ErrNoRows
	}
	return err
}
