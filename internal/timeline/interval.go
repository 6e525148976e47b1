package timeline

import (
	"time"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

// DefaultShiftDuration is assumed when a shift has a start but no end.
const DefaultShiftDuration = time.Hour

// Interval is a shift's effective range clamped to a single local day.
// The crossing flags record that the raw interval extends beyond the day
// boundary; the renderer uses them to suppress the resize handle on a
// synthetic edge.
type Interval struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	CrossesIntoDay  bool      `json:"crossesIntoDay"`
	CrossesOutOfDay bool      `json:"crossesOutOfDay"`
}

// Overlaps reports whether two half-open intervals share any time.
// Touching edges do not count as overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// EffectiveRange resolves the interval used for all display and
// analysis. The actual pair wins over the planned pair; within the
// chosen pair a missing end defaults to one hour after the start. A
// shift with no resolvable start, or with an end at or before its
// start, has no position on the timeline and reports ok == false.
func EffectiveRange(s *domain.Shift) (start, end time.Time, ok bool) {
	var rawStart, rawEnd *time.Time
	switch {
	case s.ActualStart != nil:
		rawStart, rawEnd = s.ActualStart, s.ActualEnd
	case s.PlannedStart != nil:
		rawStart, rawEnd = s.PlannedStart, s.PlannedEnd
	default:
		return time.Time{}, time.Time{}, false
	}

	start = *rawStart
	if rawEnd == nil {
		return start, start.Add(DefaultShiftDuration), true
	}

	end = *rawEnd
	if !end.After(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// ClampToDay clamps [start, end) to the local day beginning at dayStart.
// ok is false when the interval does not touch the day at all.
func ClampToDay(start, end, dayStart time.Time) (Interval, bool) {
	dayEnd := dayStart.AddDate(0, 0, 1)
	if !start.Before(dayEnd) || !end.After(dayStart) {
		return Interval{}, false
	}

	iv := Interval{Start: start, End: end}
	if start.Before(dayStart) {
		iv.Start = dayStart
		iv.CrossesIntoDay = true
	}
	if end.After(dayEnd) {
		iv.End = dayEnd
		iv.CrossesOutOfDay = true
	}
	return iv, true
}

// TimedShift pairs a shift with its effective interval on one day.
type TimedShift struct {
	Shift    *domain.Shift `json:"shift"`
	Interval Interval      `json:"interval"`
}

// ShiftsForDay resolves every shift's effective interval and clamps it
// onto the local day beginning at dayStart. A voided shift holds no
// time and never appears; unplaceable shifts are counted, not reported.
func ShiftsForDay(shifts []*domain.Shift, dayStart time.Time) (out []TimedShift, excluded int) {
	out = make([]TimedShift, 0, len(shifts))
	for _, s := range shifts {
		if s.Status == domain.ShiftStatusVoided {
			continue
		}
		start, end, ok := EffectiveRange(s)
		if !ok {
			excluded++
			continue
		}
		iv, touches := ClampToDay(start, end, dayStart)
		if !touches {
			continue
		}
		out = append(out, TimedShift{Shift: s, Interval: iv})
	}
	return out, excluded
}
