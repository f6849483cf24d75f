package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day. It is always held at
// midnight UTC so that stored values compare consistently across drivers.
type Date struct {
	time.Time
}

// NewDate returns the date for year, month and day. Out of range values are
// normalized the way time.Date does it.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf keeps only the calendar part of t, read in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year(), d.Month(), d.Day()+n)
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// GormDataType sets the column type for migrations.
func (Date) GormDataType() string {
	return "date"
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) < len(DateLayout) {
		return fmt.Errorf("cannot scan %q into Date", s)
	}
	t, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return err
	}
	*d = DateOf(t)
	return nil
}

// MarshalJSON renders the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts the formats understood by ParseDate.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
