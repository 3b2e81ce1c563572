package sqlite

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// timeLayout keeps a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// nullTime returns nil for a missing timestamp so the column stays NULL.
func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// parseTime parses a stored timestamp.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseTime(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t.UTC(), nil
}

// parseNullTime parses a nullable stored timestamp.
func parseNullTime(value *string, fieldName string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseTime(*value, fieldName)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func encodeMeta(meta map[string]string) (string, error) {
	if len(meta) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to encode meta: %w", err)
	}
	return string(b), nil
}

func decodeMeta(value string) (map[string]string, error) {
	meta := make(map[string]string)
	if value == "" {
		return meta, nil
	}
	if err := json.Unmarshal([]byte(value), &meta); err != nil {
		return nil, fmt.Errorf("failed to decode meta: %w", err)
	}
	return meta, nil
}

// paginate applies LIMIT and OFFSET if values are > 0.
// SQLite requires a LIMIT whenever OFFSET is present.
func paginate(b sq.SelectBuilder, limit, offset int) sq.SelectBuilder {
	if limit > 0 {
		b = b.Limit(uint64(limit))
	} else if offset > 0 {
		b = b.Limit(math.MaxInt64)
	}
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}
	return b
}
