package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
)

func TestClassify(t *testing.T) {
	unique := fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "transactions_sequence_number_key"})
	check := &pgconn.PgError{Code: pgCheckViolation}
	other := errors.New("connection reset")

	assert.ErrorIs(t, classify(unique, "insert"), apperrors.ErrDuplicate)
	assert.ErrorIs(t, classify(check, "insert"), apperrors.ErrValidation)

	err := classify(other, "insert")
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestPlaceholders(t *testing.T) {
	var p placeholders
	assert.Equal(t, "$1", p.add("a"))
	assert.Equal(t, "$2", p.add(3))
	assert.Equal(t, []any{"a", 3}, p.args)
}
