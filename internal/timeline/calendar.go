package timeline

import (
	"sort"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

// GuardBadge is one guard's presence on a calendar day.
type GuardBadge struct {
	GuardID    int64  `json:"guardID"`
	Color      string `json:"color"`
	ShiftCount int    `json:"shiftCount"`
}

// DayAnnotation is the per-date rollup the calendar-day renderer
// consumes: which guards are present and whether the date carries a
// conflict or a coverage gap.
type DayAnnotation struct {
	Guards      []GuardBadge `json:"guards"`
	HasConflict bool         `json:"hasConflict"`
	HasGap      bool         `json:"hasGap"`
}

// AnnotateCalendar rolls up every shift-touched day. Pure aggregation;
// the only contract is determinism: the same inputs always produce the
// same annotation set with badges ordered by guard id.
func AnnotateCalendar(shifts []*domain.Shift, colors map[int64]string, conflicts ConflictReport, gaps GapReport) map[DayKey]DayAnnotation {
	counts := make(map[DayKey]map[int64]int)
	for _, s := range shifts {
		if s.Status == domain.ShiftStatusVoided {
			continue
		}
		start, end, ok := EffectiveRange(s)
		if !ok {
			continue
		}
		for _, key := range DaysTouched(start, end) {
			if counts[key] == nil {
				counts[key] = make(map[int64]int)
			}
			counts[key][s.GuardID]++
		}
	}

	annotations := make(map[DayKey]DayAnnotation, len(counts))
	for key, guards := range counts {
		badges := make([]GuardBadge, 0, len(guards))
		for guardID, count := range guards {
			badges = append(badges, GuardBadge{
				GuardID:    guardID,
				Color:      colors[guardID],
				ShiftCount: count,
			})
		}
		sort.Slice(badges, func(i, j int) bool { return badges[i].GuardID < badges[j].GuardID })

		annotations[key] = DayAnnotation{
			Guards:      badges,
			HasConflict: conflicts.Dates[key],
			HasGap:      gaps.Dates[key],
		}
	}

	// Days that gap without any shift still deserve a mark.
	for key := range gaps.Dates {
		if _, exists := annotations[key]; !exists {
			annotations[key] = DayAnnotation{
				Guards: []GuardBadge{},
				HasGap: true,
			}
		}
	}

	return annotations
}
