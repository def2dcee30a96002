package repository

import (
	"errors"
	"fmt"
	"testing"

	"blogcms/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErr(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "posts_slug_key"}
	fkey := &pgconn.PgError{Code: "23503", ConstraintName: "posts_author_fkey"}
	plain := errors.New("connection reset")

	cases := []struct {
		name    string
		in      error
		kind    errs.Kind
		message string
	}{
		{"no rows", pgx.ErrNoRows, errs.NotFound, "post not found"},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), errs.NotFound, "post not found"},
		{"unique violation", unique, errs.Conflict, "post already exists"},
		{"wrapped unique violation", fmt.Errorf("insert: %w", unique), errs.Conflict, "post already exists"},
		{"other pg error", fkey, errs.Unknown, "post query failed"},
		{"plain error", plain, errs.Unknown, "post query failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := mapErr(tc.in, "post")
			require.Error(t, err)

			e, ok := errs.As(err)
			require.True(t, ok)
			assert.Equal(t, tc.kind, e.Kind)
			assert.Equal(t, tc.message, e.Message)
			assert.ErrorIs(t, err, tc.in)
		})
	}
}

func TestMapErr_Nil(t *testing.T) {
	assert.NoError(t, mapErr(nil, "post"))
}

func TestMapErr_ConflictNamesConstraint(t *testing.T) {
	err := mapErr(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"}, "user")

	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"constraint": "users_email_key"}, e.Details)
}
