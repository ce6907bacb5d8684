package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, IsPgUniqueViolation(unique))
	assert.False(t, IsPgForeignKeyViolation(unique))
	assert.True(t, IsPgForeignKeyViolation(fk))
	assert.False(t, IsPgUniqueViolation(errors.New("boom")))
	assert.False(t, IsPgUniqueViolation(nil))
}
