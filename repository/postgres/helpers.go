package postgres

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation reports whether err is a Postgres unique-index
// violation (SQLSTATE 23505).
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// marshalStrings encodes a string slice for a jsonb column, mapping a
// nil slice to an empty array so jsonb operators keep working.
func marshalStrings(values []string) []byte {
	if len(values) == 0 {
		return []byte(`[]`)
	}
	b, err := json.Marshal(values)
	if err != nil {
		return []byte(`[]`)
	}
	return b
}

func unmarshalStrings(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	return values
}

func marshalJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte(`{}`)
	}
	return b
}

func unmarshalJSON(raw []byte, dst interface{}) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

// textArray normalizes a string slice for a text[] bind. pgx encodes a
// nil slice as SQL NULL, which poisons cardinality/ANY comparisons, so
// an absent filter must bind as an empty array instead.
func textArray(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
