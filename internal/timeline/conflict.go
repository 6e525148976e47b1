package timeline

import (
	"sort"
	"time"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

// ConflictReport is the set of guard double-bookings found across the
// whole shift collection. Conflicts are surfaced, never blocked or
// auto-corrected.
type ConflictReport struct {
	Dates    map[DayKey]bool
	ShiftIDs map[int64]bool
	GuardIDs map[int64]bool
}

func (r ConflictReport) SortedDates() []DayKey {
	keys := make([]DayKey, 0, len(r.Dates))
	for k := range r.Dates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (r ConflictReport) SortedShiftIDs() []int64 { return sortedIDs(r.ShiftIDs) }

func (r ConflictReport) SortedGuardIDs() []int64 { return sortedIDs(r.GuardIDs) }

func sortedIDs(set map[int64]bool) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DetectConflicts scans all shifts, not just the selected day or
// service, for same-guard time overlaps. A guard double-booked across
// two different services or properties is still flagged. Voided shifts
// hold no time and never conflict.
func DetectConflicts(shifts []*domain.Shift) ConflictReport {
	report := ConflictReport{
		Dates:    make(map[DayKey]bool),
		ShiftIDs: make(map[int64]bool),
		GuardIDs: make(map[int64]bool),
	}

	type placed struct {
		shift      *domain.Shift
		start, end time.Time
	}

	byGuard := make(map[int64][]placed)
	for _, s := range shifts {
		if s.Status == domain.ShiftStatusVoided {
			continue
		}
		start, end, ok := EffectiveRange(s)
		if !ok {
			continue
		}
		byGuard[s.GuardID] = append(byGuard[s.GuardID], placed{shift: s, start: start, end: end})
	}

	for guardID, own := range byGuard {
		// Bucket the guard's shifts by every local day they touch, then
		// compare clamped intervals within each bucket.
		type dayItem struct {
			shift    *domain.Shift
			interval Interval
		}
		byDay := make(map[DayKey][]dayItem)
		for _, p := range own {
			for _, key := range DaysTouched(p.start, p.end) {
				dayStart := DayStart(p.start)
				for DayKeyOf(dayStart) != key {
					dayStart = dayStart.AddDate(0, 0, 1)
				}
				iv, touches := ClampToDay(p.start, p.end, dayStart)
				if !touches {
					continue
				}
				byDay[key] = append(byDay[key], dayItem{shift: p.shift, interval: iv})
			}
		}

		for key, items := range byDay {
			for i := 0; i < len(items); i++ {
				for j := i + 1; j < len(items); j++ {
					if !items[i].interval.Overlaps(items[j].interval) {
						continue
					}
					report.Dates[key] = true
					report.ShiftIDs[items[i].shift.ID] = true
					report.ShiftIDs[items[j].shift.ID] = true
					report.GuardIDs[guardID] = true
				}
			}
		}
	}

	return report
}
