package timeline

import (
	"fmt"
	"time"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

// Selection carries the console's ambient filter state explicitly. The
// detectors are pure functions of (shifts, services, selection) and
// never read globals, which keeps them independently testable.
type Selection struct {
	PropertyID int64
	Day        DayKey
	ServiceID  *int64
}

// Snapshot is everything the property-shifts view needs for one day:
// lane layout, double-booking marks, coverage gaps, calendar badges and
// guard colors, plus the count of shifts excluded as malformed.
type Snapshot struct {
	Day              DayKey                   `json:"day"`
	Shifts           []TimedShift             `json:"shifts"`
	Lanes            []LaneSlot               `json:"lanes"`
	ConflictDates    []DayKey                 `json:"conflictDates"`
	ConflictShiftIDs []int64                  `json:"conflictShiftIDs"`
	ConflictGuardIDs []int64                  `json:"conflictGuardIDs"`
	GapsByDate       map[DayKey][]Gap         `json:"gapsByDate"`
	DatesWithGaps    []DayKey                 `json:"datesWithGaps"`
	Calendar         map[DayKey]DayAnnotation `json:"calendar"`
	GuardColors      map[int64]string         `json:"guardColors"`
	ExcludedShifts   int                      `json:"excludedShifts"`
}

// BuildSnapshot recomputes the analysis from scratch for one property's
// shift collection. All of it is synchronous and side-effect free; the
// caller re-runs it whenever the collection changes.
func BuildSnapshot(shifts []*domain.Shift, services []*domain.Service, guards []*domain.Guard, sel Selection, loc *time.Location, minGap time.Duration) (*Snapshot, error) {
	if loc == nil {
		loc = time.Local
	}

	dayStart, err := ParseDayKey(sel.Day, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid day %q: %w", sel.Day, err)
	}

	// Lanes and the calendar lay out the selected property's shifts;
	// when a service is selected the lane view narrows further.
	propertyShifts := make([]*domain.Shift, 0, len(shifts))
	laneInput := make([]*domain.Shift, 0, len(shifts))
	for _, s := range shifts {
		if s.PropertyID != sel.PropertyID {
			continue
		}
		propertyShifts = append(propertyShifts, s)
		if sel.ServiceID != nil && (s.ServiceID == nil || *s.ServiceID != *sel.ServiceID) {
			continue
		}
		laneInput = append(laneInput, s)
	}
	dayShifts, excluded := ShiftsForDay(laneInput, dayStart)
	lanes := AssignLanes(dayShifts)

	// Conflicts always run over the whole collection: a guard
	// double-booked across services must still be flagged.
	conflicts := DetectConflicts(shifts)

	gaps := GapReport{ByDate: map[DayKey][]Gap{}, Dates: map[DayKey]bool{}}
	if sel.ServiceID != nil {
		for _, svc := range services {
			if svc.ID != *sel.ServiceID {
				continue
			}
			gaps, err = DetectGaps(svc, shifts, loc, minGap)
			if err != nil {
				return nil, err
			}
			break
		}
	}

	guardIDs := make([]int64, 0, len(guards))
	for _, g := range guards {
		guardIDs = append(guardIDs, g.ID)
	}
	colors := AssignColors(guardIDs)

	return &Snapshot{
		Day:              sel.Day,
		Shifts:           dayShifts,
		Lanes:            lanes,
		ConflictDates:    conflicts.SortedDates(),
		ConflictShiftIDs: conflicts.SortedShiftIDs(),
		ConflictGuardIDs: conflicts.SortedGuardIDs(),
		GapsByDate:       gaps.ByDate,
		DatesWithGaps:    gaps.SortedDates(),
		Calendar:         AnnotateCalendar(propertyShifts, colors, conflicts, gaps),
		GuardColors:      colors,
		ExcludedShifts:   excluded,
	}, nil
}
