package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DateRange is a half-open calendar interval [start, end): the start night is
// included, checkout day is excluded. Nights are whole days between the two.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if !start.Before(end) {
		return DateRange{}, errors.New("start date must be before end date")
	}
	return DateRange{start: start, end: end}, nil
}

func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return NewDateRange(s, e)
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

func (r DateRange) Nights() int {
	return int(r.end.Sub(r.start).Hours() / 24)
}

// Overlaps uses the half-open comparison: [a,b) and [c,d) overlap iff a < d && c < b.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}

// Contains reports whether day falls on a booked night of the range.
func (r DateRange) Contains(day time.Time) bool {
	day = truncateToDay(day)
	return !day.Before(r.start) && day.Before(r.end)
}

// Days yields every night of the range in order.
func (r DateRange) Days() []time.Time {
	days := make([]time.Time, 0, r.Nights())
	for d := r.start; d.Before(r.end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// ToDaterange renders the range as a PostgreSQL daterange literal.
func (r DateRange) ToDaterange() string {
	return fmt.Sprintf("[%s,%s)", r.start.Format(dateLayout), r.end.Format(dateLayout))
}

func (r DateRange) String() string {
	return r.ToDaterange()
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

func (m Money) Mul(n int) Money {
	return Money{cents: m.cents * int64(n)}
}

func (m Money) IsNegative() bool { return m.cents < 0 }

// Guest is the contact snapshot captured on the booking itself; bookings are
// not tied to a user account.
type Guest struct {
	name  string
	email string
	phone string
}

func NewGuest(name, email, phone string) (Guest, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return Guest{}, errors.New("guest name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return Guest{}, errors.New("guest email is invalid")
	}
	return Guest{name: name, email: email, phone: strings.TrimSpace(phone)}, nil
}

func (g Guest) Name() string  { return g.name }
func (g Guest) Email() string { return g.email }
func (g Guest) Phone() string { return g.phone }
