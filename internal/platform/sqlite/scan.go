package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// timestampLayouts are the text forms SQLite's CURRENT_TIMESTAMP and the
// driver may produce.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
}

// timestamp scans a DATETIME column whether the driver hands back a
// time.Time (declared type preserved) or raw text (computed column).
type timestamp struct {
	t *time.Time
}

func (ts timestamp) Scan(v any) error {
	switch x := v.(type) {
	case nil:
		*ts.t = time.Time{}
		return nil
	case time.Time:
		*ts.t = x
		return nil
	case string:
		return ts.parse(x)
	case []byte:
		return ts.parse(string(x))
	default:
		return fmt.Errorf("cannot scan %T into timestamp", v)
	}
}

func (ts timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*ts.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// pageArgs converts a limit/offset pair into SQLite LIMIT/OFFSET arguments,
// where a negative limit means no limit.
func pageArgs(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
