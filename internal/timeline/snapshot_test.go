package timeline

import (
	"testing"
	"time"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

func TestBuildSnapshot(t *testing.T) {
	serviceID := int64(5)
	shifts := []*domain.Shift{
		// Selected property and service, on the selected day.
		{ID: 1, GuardID: 7, PropertyID: 1, ServiceID: &serviceID, PlannedStart: tp(t, "2025-08-10 08:00"), PlannedEnd: tp(t, "2025-08-10 12:00")},
		// Selected property, different (no) service.
		{ID: 2, GuardID: 8, PropertyID: 1, PlannedStart: tp(t, "2025-08-10 09:00"), PlannedEnd: tp(t, "2025-08-10 13:00")},
		// Other property; guard 7 is double-booked across properties.
		{ID: 3, GuardID: 7, PropertyID: 2, PlannedStart: tp(t, "2025-08-10 10:00"), PlannedEnd: tp(t, "2025-08-10 14:00")},
		// Selected property, malformed.
		{ID: 4, GuardID: 8, PropertyID: 1, ServiceID: &serviceID},
	}
	services := []*domain.Service{
		{ID: 5, PropertyID: 1, DailyStartTime: "08:00", DailyEndTime: "20:00", ScheduleDates: []string{"2025-08-10"}},
	}
	guards := []*domain.Guard{{ID: 7}, {ID: 8}}

	t.Run("service selected", func(t *testing.T) {
		sel := Selection{PropertyID: 1, Day: "2025-08-10", ServiceID: &serviceID}
		snap, err := BuildSnapshot(shifts, services, guards, sel, time.Local, 15*time.Minute)
		if err != nil {
			t.Fatalf("BuildSnapshot: %v", err)
		}

		// Lanes narrow to the selected service: only shift 1.
		if len(snap.Lanes) != 1 || snap.Lanes[0].ShiftID != 1 {
			t.Errorf("lanes = %+v, want only shift 1", snap.Lanes)
		}
		if snap.ExcludedShifts != 1 {
			t.Errorf("excludedShifts = %d, want 1 (the malformed record)", snap.ExcludedShifts)
		}

		// Conflicts come from the whole collection: guard 7 overlaps
		// across properties 1 and 2.
		assertIDs(t, "conflictGuardIDs", snap.ConflictGuardIDs, []int64{7})
		assertIDs(t, "conflictShiftIDs", snap.ConflictShiftIDs, []int64{1, 3})

		// Only shift 1 covers the window, so the evening gapes open.
		gaps := snap.GapsByDate["2025-08-10"]
		if len(gaps) != 1 {
			t.Fatalf("gaps = %+v, want one", gaps)
		}
		if !gaps[0].Start.Equal(at(t, "2025-08-10 12:00")) || !gaps[0].End.Equal(at(t, "2025-08-10 20:00")) {
			t.Errorf("gap = %v..%v, want 12:00..20:00", gaps[0].Start, gaps[0].End)
		}

		// The calendar rolls up the property's shifts only: the other
		// property's shift must not add a badge.
		day := snap.Calendar["2025-08-10"]
		if len(day.Guards) != 2 {
			t.Errorf("calendar badges = %+v, want guards 7 and 8 once each", day.Guards)
		}
		if !day.HasConflict || !day.HasGap {
			t.Errorf("day marks = conflict %v gap %v, want both", day.HasConflict, day.HasGap)
		}

		if _, ok := snap.GuardColors[7]; !ok {
			t.Error("guard 7 missing from the color map")
		}
	})

	t.Run("no service selected", func(t *testing.T) {
		sel := Selection{PropertyID: 1, Day: "2025-08-10"}
		snap, err := BuildSnapshot(shifts, services, guards, sel, time.Local, 15*time.Minute)
		if err != nil {
			t.Fatalf("BuildSnapshot: %v", err)
		}

		// Without a service filter both property-1 timed shifts lane up
		// and they overlap, so they share a two-lane component.
		if len(snap.Lanes) != 2 {
			t.Fatalf("lanes = %+v, want two", snap.Lanes)
		}
		for _, slot := range snap.Lanes {
			if slot.LaneCount != 2 {
				t.Errorf("shift %d laneCount = %d, want 2", slot.ShiftID, slot.LaneCount)
			}
		}

		// Gap analysis is off without a selected service.
		if len(snap.GapsByDate) != 0 || len(snap.DatesWithGaps) != 0 {
			t.Errorf("gaps reported without a service selection: %+v", snap.GapsByDate)
		}
	})

	t.Run("voided shift holds no time", func(t *testing.T) {
		voided := []*domain.Shift{
			{ID: 9, GuardID: 7, PropertyID: 1, Status: domain.ShiftStatusVoided, PlannedStart: tp(t, "2025-08-10 09:00"), PlannedEnd: tp(t, "2025-08-10 13:00")},
		}
		sel := Selection{PropertyID: 1, Day: "2025-08-10"}
		snap, err := BuildSnapshot(voided, services, guards, sel, time.Local, 15*time.Minute)
		if err != nil {
			t.Fatalf("BuildSnapshot: %v", err)
		}

		if len(snap.Shifts) != 0 {
			t.Errorf("day shifts = %+v, want none", snap.Shifts)
		}
		if len(snap.Lanes) != 0 {
			t.Errorf("lanes = %+v, want none", snap.Lanes)
		}
		if snap.ExcludedShifts != 0 {
			t.Errorf("excludedShifts = %d, want 0 (voided is not malformed)", snap.ExcludedShifts)
		}
	})

	t.Run("invalid day", func(t *testing.T) {
		sel := Selection{PropertyID: 1, Day: "10/08/2025"}
		if _, err := BuildSnapshot(shifts, services, guards, sel, time.Local, 15*time.Minute); err == nil {
			t.Error("expected an error for a malformed day key")
		}
	})
}
