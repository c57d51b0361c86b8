package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date without a time-of-day component. Policy
// evaluation receives "today" as a Date from the caller, so derivations
// stay deterministic and testable.
type Date struct {
	t time.Time
}

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date in the timestamp's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses "YYYY-MM-DD"
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// Time returns the date as a midnight-UTC timestamp
func (d Date) Time() time.Time {
	return d.t
}

// Year returns the calendar year
func (d Date) Year() int { return d.t.Year() }

// Month returns the calendar month
func (d Date) Month() time.Month { return d.t.Month() }

// Day returns the day of month
func (d Date) Day() int { return d.t.Day() }

// IsZero reports whether the date is the zero value
func (d Date) IsZero() bool { return d.t.IsZero() }

// AddDays returns the date shifted by n calendar days
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Before reports d < other
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports d > other
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports d == other
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// DaysSince returns the number of whole calendar days from other to d:
// floor((d_midnight - other_midnight) / 24h). Negative when d precedes other.
func (d Date) DaysSince(other Date) int {
	return int(d.t.Sub(other.t) / (24 * time.Hour))
}

// String returns "YYYY-MM-DD"
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes "YYYY-MM-DD"
func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer for database storage
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.t, nil
}

// Scan implements sql.Scanner for database retrieval
func (d *Date) Scan(value any) error {
	if value == nil {
		*d = Date{}
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}
