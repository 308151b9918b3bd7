package slots

import (
	"sort"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/robertarktes/visa-appointments/internal/domain"
)

var (
	ErrDateUnavailable = errors.New("date unavailable")
	ErrSlotUnavailable = errors.New("slot unavailable")
	ErrInvalidCalendar = errors.New("invalid slot calendar")
)

// DefaultTimes are the half-hour slots offered on every available date.
var DefaultTimes = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00",
	"12:30", "13:00", "13:30", "14:00", "14:30", "15:00",
}

// Calendar is the read-only availability for one booking period: a set of
// open dates within a month and one slot sequence shared by all of them.
// It keeps no per-slot capacity, so selecting a slot reserves nothing.
type Calendar struct {
	year  int
	month time.Month
	dates []domain.Date
	open  map[domain.Date]struct{}
	times []domain.TimeOfDay
	valid map[domain.TimeOfDay]struct{}
}

type Day struct {
	Date      domain.Date `json:"date"`
	Available bool        `json:"available"`
}

func NewCalendar(year int, month time.Month, days []int, times []string) (*Calendar, error) {
	if month < time.January || month > time.December {
		return nil, errors.Wrapf(ErrInvalidCalendar, "month %d", int(month))
	}
	if len(times) == 0 {
		return nil, errors.Wrap(ErrInvalidCalendar, "no time slots")
	}

	c := &Calendar{
		year:  year,
		month: month,
		open:  make(map[domain.Date]struct{}, len(days)),
		valid: make(map[domain.TimeOfDay]struct{}, len(times)),
	}

	last := daysIn(year, month)
	for _, day := range days {
		if day < 1 || day > last {
			return nil, errors.Wrapf(ErrInvalidCalendar, "day %d outside %s %d", day, month, year)
		}
		d := domain.NewDate(year, month, day)
		if _, dup := c.open[d]; dup {
			continue
		}
		c.open[d] = struct{}{}
		c.dates = append(c.dates, d)
	}
	sort.Slice(c.dates, func(i, j int) bool { return c.dates[i].Day < c.dates[j].Day })

	for _, raw := range times {
		t, err := domain.ParseTimeOfDay(raw)
		if err != nil {
			return nil, errors.Mark(err, ErrInvalidCalendar)
		}
		if _, dup := c.valid[t]; dup {
			return nil, errors.Wrapf(ErrInvalidCalendar, "duplicate slot %s", t)
		}
		c.valid[t] = struct{}{}
		c.times = append(c.times, t)
	}
	return c, nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (c *Calendar) IsAvailable(date domain.Date) bool {
	_, ok := c.open[date]
	return ok
}

// SlotsFor returns the slot sequence for an available date and nil otherwise.
func (c *Calendar) SlotsFor(date domain.Date) []domain.TimeOfDay {
	if !c.IsAvailable(date) {
		return nil
	}
	out := make([]domain.TimeOfDay, len(c.times))
	copy(out, c.times)
	return out
}

func (c *Calendar) TrySelect(date domain.Date, t domain.TimeOfDay) (domain.Selection, error) {
	if !c.IsAvailable(date) {
		return domain.Selection{}, errors.Wrapf(ErrDateUnavailable, "%s", date)
	}
	if _, ok := c.valid[t]; !ok {
		return domain.Selection{}, errors.Wrapf(ErrSlotUnavailable, "%s %s", date, t)
	}
	return domain.Selection{Date: date, Time: t}, nil
}

// Dates returns the available dates in ascending order.
func (c *Calendar) Dates() []domain.Date {
	out := make([]domain.Date, len(c.dates))
	copy(out, c.dates)
	return out
}

// MonthDays returns every day of the period flagged with its availability.
func (c *Calendar) MonthDays() []Day {
	n := daysIn(c.year, c.month)
	out := make([]Day, 0, n)
	for day := 1; day <= n; day++ {
		d := domain.NewDate(c.year, c.month, day)
		out = append(out, Day{Date: d, Available: c.IsAvailable(d)})
	}
	return out
}

func (c *Calendar) Period() (int, time.Month) {
	return c.year, c.month
}
