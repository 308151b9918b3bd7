package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

// Date is a calendar date without time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return Date{}, errors.Wrapf(ErrInvalidDate, "%q", s)
	}
	return DateOf(t), nil
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeOfDay is a wall-clock time in HH:MM form.
type TimeOfDay string

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(TimeFormat, strings.TrimSpace(s))
	if err != nil {
		return "", errors.Wrapf(ErrInvalidTime, "%q", s)
	}
	return TimeOfDay(t.Format(TimeFormat)), nil
}

func (t TimeOfDay) String() string {
	return string(t)
}

// Selection is a validated (date, time) pair.
type Selection struct {
	Date Date      `json:"date"`
	Time TimeOfDay `json:"time"`
}

// SlotChecker answers whether a (date, time) pair can be booked.
type SlotChecker interface {
	IsAvailable(date Date) bool
	TrySelect(date Date, t TimeOfDay) (Selection, error)
}
