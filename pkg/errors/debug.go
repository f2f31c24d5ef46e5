package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrorDump is the log-side view of an error chain. It is never sent to clients.
type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	// Store fields are filled from postgres (pgx or lib/pq) or sqlite errors.
	StoreCode       string `json:"store_code,omitempty"`
	StoreConstraint string `json:"store_constraint,omitempty"`
	StoreTable      string `json:"store_table,omitempty"`
	StoreColumn     string `json:"store_column,omitempty"`
	StoreDetail     string `json:"store_detail,omitempty"`
	StoreMessage    string `json:"store_message,omitempty"`

	ConstraintViolation bool `json:"constraint_violation,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		d.StoreCode = pgxErr.Code
		d.StoreConstraint = pgxErr.ConstraintName
		d.StoreTable = pgxErr.TableName
		d.StoreColumn = pgxErr.ColumnName
		d.StoreDetail = pgxErr.Detail
		d.StoreMessage = pgxErr.Message
		d.ConstraintViolation = isIntegrityClass(pgxErr.Code)
		return d
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		d.StoreCode = string(pqErr.Code)
		d.StoreConstraint = pqErr.Constraint
		d.StoreTable = pqErr.Table
		d.StoreColumn = pqErr.Column
		d.StoreDetail = pqErr.Detail
		d.StoreMessage = pqErr.Message
		d.ConstraintViolation = isIntegrityClass(string(pqErr.Code))
		return d
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		d.StoreCode = liteErr.ExtendedCode.Error()
		d.StoreMessage = liteErr.Error()
		d.ConstraintViolation = liteErr.Code == sqlite3.ErrConstraint
		return d
	}

	return d
}

// LogFields flattens the dump for structured logging, skipping empty store fields.
func (d ErrorDump) LogFields() map[string]any {
	fields := map[string]any{
		"error":       d.TopMessage,
		"error_code":  d.Code,
		"error_chain": d.Chain,
	}
	for key, value := range map[string]string{
		"store_code":       d.StoreCode,
		"store_constraint": d.StoreConstraint,
		"store_table":      d.StoreTable,
		"store_column":     d.StoreColumn,
		"store_detail":     d.StoreDetail,
		"store_message":    d.StoreMessage,
	} {
		if value != "" {
			fields[key] = value
		}
	}
	if d.ConstraintViolation {
		fields["constraint_violation"] = true
	}
	return fields
}

// IsConstraintViolation reports whether err carries a store integrity error.
func IsConstraintViolation(err error) bool {
	return Dump(err).ConstraintViolation
}

// SQLSTATE class 23 covers not-null, unique, foreign key and check violations.
func isIntegrityClass(code string) bool {
	return strings.HasPrefix(code, "23")
}
