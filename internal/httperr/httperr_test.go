package httperr

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBusinessCodeUnwraps(t *testing.T) {
	err := fmt.Errorf("cancel: %w", ErrBusiness("invalid_state"))

	code, ok := BusinessCode(err)
	require.True(t, ok)
	require.Equal(t, "invalid_state", code)
	require.True(t, IsBusiness(err, "invalid_state"))
	require.False(t, IsBusiness(err, "client_not_found"))

	_, ok = BusinessCode(fmt.Errorf("plain"))
	require.False(t, ok)
}

func TestPostgresViolations(t *testing.T) {
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})
	require.True(t, IsForeignKeyViolation(fk))
	require.False(t, IsUniqueViolation(fk))

	require.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	require.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	require.True(t, IsExclusionConflict(&pgconn.PgError{Code: "23P01"}))
}
