package utils

import (
	"errors"
	"time"

	"lodge-backend/models"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.Time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// DateOnly truncates a time to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NightsBetween counts the occupied nights of a stay; checkout is exclusive.
func NightsBetween(checkin, checkout time.Time) int {
	n := int(DateOnly(checkout).Sub(DateOnly(checkin)).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// EachNight returns every occupied night of [checkin, checkout) in order.
func EachNight(checkin, checkout time.Time) []time.Time {
	var nights []time.Time
	for d := DateOnly(checkin); d.Before(DateOnly(checkout)); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

// DayClassFor buckets a date into the day_class pricing dimension.
func DayClassFor(t time.Time) string {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return models.DayClassWeekend
	default:
		return models.DayClassWeekday
	}
}
