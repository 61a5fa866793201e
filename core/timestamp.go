package core

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a timestamp decoded defensively from loosely formatted
// strings. A value that fails to parse becomes an invalid (zero)
// timestamp instead of failing the whole record.
type Timestamp struct {
	time.Time
}

// NewTimestamp timestamp from a time value
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// ParseTimestamp parse a timestamp string, zero value if no layout matches
func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t.UTC()}
		}
	}

	return Timestamp{}
}

// Valid report whether the timestamp parsed successfully
func (t Timestamp) Valid() bool {
	return !t.Time.IsZero()
}

// MarshalJSON implement json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return []byte("null"), nil
	}

	return json.Marshal(t.Time.UTC().Format(time.RFC3339))
}

// UnmarshalJSON implement json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch v := v.(type) {
	case nil:
		*t = Timestamp{}
	case string:
		*t = ParseTimestamp(v)
	case float64:
		*t = Timestamp{Time: time.Unix(int64(v), 0).UTC()}
	default:
		*t = Timestamp{}
	}

	return nil
}

// Value implement driver.Valuer
func (t Timestamp) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, nil
	}

	return t.Time.UTC().Format(time.RFC3339), nil
}

// Scan implement sql.Scanner
func (t *Timestamp) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		*t = Timestamp{}
	case time.Time:
		*t = NewTimestamp(src)
	case string:
		*t = ParseTimestamp(src)
	case []byte:
		*t = ParseTimestamp(string(src))
	default:
		return fmt.Errorf("core: cannot scan %T into Timestamp", src)
	}

	return nil
}
