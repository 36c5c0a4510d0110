package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	require.False(t, IsUniqueViolation(nil, "idx_users_email"))

	pg := errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
	require.True(t, IsUniqueViolation(pg, "idx_users_email"))
	require.True(t, IsUniqueViolation(pg, ""))

	// sqlite omits the index name; the named lookup must still fall
	// through to the generic wording.
	lite := errors.New("UNIQUE constraint failed: users.email")
	require.True(t, IsUniqueViolation(lite, "idx_users_email"))
	require.True(t, IsUniqueViolation(lite, ""))

	require.False(t, IsUniqueViolation(errors.New("connection refused"), "idx_users_email"))
}
