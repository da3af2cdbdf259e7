package research

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date form used on the wire and in
// normalized queries.
const DateLayout = "2006-01-02"

// Date is a calendar date that tolerates the mixed date encodings returned by
// the research service ("2023-01-05", RFC 3339 timestamps, null, "").  The
// zero Date means "unknown" and marshals as null.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD (with or without zero padding) or an RFC 3339
// timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range []string{"2006-1-2", time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t), nil
		}
	}
	return Date{}, fmt.Errorf("research: unparsable date %q", s)
}

// String renders the date as YYYY-MM-DD, or "" when unknown.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("research: date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysUntil returns the whole days from d to end, or false when either side
// is unknown or end precedes d.
func (d Date) DaysUntil(end Date) (float64, bool) {
	if d.IsZero() || end.IsZero() || end.Before(d.Time) {
		return 0, false
	}
	return end.Sub(d.Time).Hours() / 24, true
}
