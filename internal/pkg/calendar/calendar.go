package calendar

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidRange is returned when the end of a range precedes its start.
var ErrInvalidRange = errors.New("end must not be before start")

// DateOf truncates an instant to its calendar day at midnight UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// InclusiveDayCount returns the number of calendar days spanning
// start..end, counting both endpoints. Hours are ignored; only the
// calendar day matters.
func InclusiveDayCount(start, end time.Time) (int, error) {
	startDay := DateOf(start)
	endDay := DateOf(end)

	if endDay.Before(startDay) {
		return 0, ErrInvalidRange
	}

	return int(endDay.Sub(startDay).Hours()/24) + 1, nil
}

// NetWorkHours returns the duration between check-in and check-out in
// hours, net of break time, clamped at 0 and rounded to 2 decimals.
func NetWorkHours(checkIn, checkOut time.Time, breakMinutes int) (float64, error) {
	if checkOut.Before(checkIn) {
		return 0, ErrInvalidRange
	}

	netMinutes := checkOut.Sub(checkIn).Minutes() - float64(breakMinutes)
	if netMinutes < 0 {
		netMinutes = 0
	}

	return math.Round(netMinutes/60*100) / 100, nil
}

// Overlaps reports whether two inclusive date ranges share at least
// one calendar day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !DateOf(aStart).After(DateOf(bEnd)) && !DateOf(bStart).After(DateOf(aEnd))
}
