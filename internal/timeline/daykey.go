// Package timeline implements the shift timeline and coverage-analysis
// engine behind the property-shifts view: effective interval resolution,
// visual lane assignment, guard double-booking detection, coverage gap
// detection against service windows, calendar annotations, and the
// drag-to-edit state machine.
package timeline

import "time"

// DayKey is a timezone-naive YYYY-MM-DD string built from local calendar
// fields. Deriving it from a UTC conversion would push shifts near
// midnight into the wrong bucket, so every date bucket in this package
// goes through DayKeyOf.
type DayKey string

const dayKeyLayout = "2006-01-02"

func DayKeyOf(t time.Time) DayKey {
	return DayKey(t.Format(dayKeyLayout))
}

// ParseDayKey interprets k as midnight of that calendar day in loc.
func ParseDayKey(k DayKey, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, string(k), loc)
}

// DayStart returns midnight of the local day containing t.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysTouched lists the local days the half-open interval [start, end)
// overlaps, in chronological order. An interval ending exactly at
// midnight does not touch the following day.
func DaysTouched(start, end time.Time) []DayKey {
	if !end.After(start) {
		return nil
	}

	keys := make([]DayKey, 0, 2)
	for day := DayStart(start); day.Before(end); day = day.AddDate(0, 0, 1) {
		keys = append(keys, DayKeyOf(day))
	}
	return keys
}
