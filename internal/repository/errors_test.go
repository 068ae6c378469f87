package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func TestNotFoundOnMalformedID(t *testing.T) {
	malformed := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}
	other := errors.New("connection reset")

	assert.ErrorIs(t, notFoundOnMalformedID(malformed), pgx.ErrNoRows)
	assert.ErrorIs(t, notFoundOnMalformedID(fmt.Errorf("query: %w", malformed)), pgx.ErrNoRows)
	assert.Same(t, other, notFoundOnMalformedID(other))
	assert.NoError(t, notFoundOnMalformedID(nil))

	unique := &pgconn.PgError{Code: "23505"}
	assert.Same(t, unique, notFoundOnMalformedID(unique))
	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(malformed))
}

func TestScannersReportMalformedIDAsNotFound(t *testing.T) {
	row := errRow{err: &pgconn.PgError{Code: "22P02"}}

	_, err := scanTask(row)
	require.Error(t, err)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	_, err = scanUser(row)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	_, err = scanNotification(row)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
