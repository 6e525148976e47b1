package timeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

// DefaultMinGap is the minimum significant gap duration; shorter gaps
// are rounding noise and stay unreported.
const DefaultMinGap = 15 * time.Minute

// Gap is an uncovered sub-interval of a service's coverage window.
type Gap struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// GapReport lists coverage gaps per active service date.
type GapReport struct {
	ByDate map[DayKey][]Gap
	Dates  map[DayKey]bool
}

func (r GapReport) SortedDates() []DayKey {
	keys := make([]DayKey, 0, len(r.Dates))
	for k := range r.Dates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

const clockLayout = "15:04"

// ServiceWindow resolves a service's coverage window for one schedule
// date. A window whose end time is at or before its start time wraps
// past midnight into the next day.
func ServiceWindow(svc *domain.Service, date DayKey, loc *time.Location) (start, end time.Time, err error) {
	day, err := ParseDayKey(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid schedule date %q: %w", date, err)
	}
	startClock, err := time.Parse(clockLayout, svc.DailyStartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid daily start time %q: %w", svc.DailyStartTime, err)
	}
	endClock, err := time.Parse(clockLayout, svc.DailyEndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid daily end time %q: %w", svc.DailyEndTime, err)
	}

	start = day.Add(time.Duration(startClock.Hour())*time.Hour + time.Duration(startClock.Minute())*time.Minute)
	end = day.Add(time.Duration(endClock.Hour())*time.Hour + time.Duration(endClock.Minute())*time.Minute)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}

// DetectGaps computes the uncovered sub-intervals of svc's coverage
// window on each of its schedule dates. A degenerate configuration
// (missing daily times or an empty schedule) is not an error: gap
// detection is simply skipped and an empty report returned. A date with
// no covering shift at all produces one gap spanning the whole window.
func DetectGaps(svc *domain.Service, shifts []*domain.Shift, loc *time.Location, minGap time.Duration) (GapReport, error) {
	report := GapReport{
		ByDate: make(map[DayKey][]Gap),
		Dates:  make(map[DayKey]bool),
	}
	if svc == nil || svc.DailyStartTime == "" || svc.DailyEndTime == "" || len(svc.ScheduleDates) == 0 {
		return report, nil
	}
	if minGap <= 0 {
		minGap = DefaultMinGap
	}

	// Only this service's shifts cover its window.
	own := make([]*domain.Shift, 0, len(shifts))
	for _, s := range shifts {
		if s.Status == domain.ShiftStatusVoided {
			continue
		}
		if s.ServiceID == nil || *s.ServiceID != svc.ID {
			continue
		}
		own = append(own, s)
	}

	for _, dateStr := range svc.ScheduleDates {
		date := DayKey(dateStr)
		windowStart, windowEnd, err := ServiceWindow(svc, date, loc)
		if err != nil {
			return GapReport{}, err
		}

		covered := coveredIntervals(own, windowStart, windowEnd)
		gaps := complementGaps(covered, windowStart, windowEnd, minGap)
		if len(gaps) == 0 {
			continue
		}
		report.ByDate[date] = gaps
		report.Dates[date] = true
	}

	return report, nil
}

type span struct {
	start, end time.Time
}

// coveredIntervals intersects each shift's effective interval with the
// window and merges the results into a sorted disjoint list. Adjacent
// spans merge too: touching coverage leaves no gap between them.
func coveredIntervals(shifts []*domain.Shift, windowStart, windowEnd time.Time) []span {
	spans := make([]span, 0, len(shifts))
	for _, s := range shifts {
		start, end, ok := EffectiveRange(s)
		if !ok {
			continue
		}
		if !start.Before(windowEnd) || !end.After(windowStart) {
			continue
		}
		if start.Before(windowStart) {
			start = windowStart
		}
		if end.After(windowEnd) {
			end = windowEnd
		}
		spans = append(spans, span{start: start, end: end})
	}

	sort.Slice(spans, func(i, j int) bool {
		if !spans[i].start.Equal(spans[j].start) {
			return spans[i].start.Before(spans[j].start)
		}
		return spans[i].end.Before(spans[j].end)
	})

	merged := make([]span, 0, len(spans))
	for _, sp := range spans {
		if len(merged) > 0 && !sp.start.After(merged[len(merged)-1].end) {
			if sp.end.After(merged[len(merged)-1].end) {
				merged[len(merged)-1].end = sp.end
			}
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// complementGaps returns the uncovered remainder of the window: the
// leading gap, the gaps between merged spans, and the trailing gap,
// dropping any shorter than minGap.
func complementGaps(covered []span, windowStart, windowEnd time.Time, minGap time.Duration) []Gap {
	gaps := make([]Gap, 0, len(covered)+1)
	cursor := windowStart
	for _, sp := range covered {
		if sp.start.Sub(cursor) >= minGap {
			gaps = append(gaps, Gap{Start: cursor, End: sp.start})
		}
		if sp.end.After(cursor) {
			cursor = sp.end
		}
	}
	if windowEnd.Sub(cursor) >= minGap {
		gaps = append(gaps, Gap{Start: cursor, End: windowEnd})
	}
	return gaps
}
