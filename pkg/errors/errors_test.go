package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeIdempotency, status: http.StatusConflict, publicMsg: "idempotency key reused", detailsOK: true},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		assert.Equal(t, tt.status, meta.HTTPStatus, "status for %s", tt.code)
		assert.Equal(t, tt.publicMsg, meta.PublicMessage, "message for %s", tt.code)
		assert.Equal(t, tt.retryable, meta.Retryable, "retryable for %s", tt.code)
		assert.Equal(t, tt.detailsOK, meta.DetailsAllowed, "details for %s", tt.code)
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
}

func TestWrapPreservesCause(t *testing.T) {
	sentinel := stdErrors.New("package not found")
	wrapped := Wrap(CodeValidation, sentinel, `package "gold" not found`)

	require.ErrorIs(t, wrapped, sentinel)
	assert.Equal(t, CodeValidation, wrapped.Code())

	outer := fmt.Errorf("calculate: %w", wrapped)
	typed := As(outer)
	require.NotNil(t, typed)
	assert.True(t, IsCode(outer, CodeValidation))
	assert.False(t, IsCode(outer, CodeInternal))
}

func TestAsNil(t *testing.T) {
	assert.Nil(t, As(nil))
	assert.Nil(t, As(stdErrors.New("plain")))
}

func TestDumpCollectsChain(t *testing.T) {
	err := fmt.Errorf("save: %w", Wrap(CodeDependency, stdErrors.New("connection refused"), "upsert pricing configuration"))
	dump := Dump(err)

	assert.Equal(t, CodeDependency, dump.Code)
	assert.Len(t, dump.Chain, 3)
	assert.Empty(t, dump.StoreCode)
}

func TestDumpReadsPostgresErrors(t *testing.T) {
	err := fmt.Errorf("upsert: %w", &pgconn.PgError{
		Code:           "23514",
		ConstraintName: "pricing_configurations_custom_basic_price_check",
		TableName:      "pricing_configurations",
		Message:        "new row violates check constraint",
	})
	dump := Dump(err)

	assert.Equal(t, "23514", dump.StoreCode)
	assert.Equal(t, "pricing_configurations", dump.StoreTable)
	assert.True(t, dump.ConstraintViolation)
	assert.True(t, IsConstraintViolation(err))

	fields := dump.LogFields()
	assert.Equal(t, "pricing_configurations_custom_basic_price_check", fields["store_constraint"])
	assert.NotContains(t, fields, "store_column")
}

func TestDumpReadsLibPQErrors(t *testing.T) {
	dump := Dump(&pq.Error{Code: "08006", Message: "connection failure"})
	assert.Equal(t, "08006", dump.StoreCode)
	assert.False(t, dump.ConstraintViolation)
}
