package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/aegisops/guardpost/backend/internal/domain"
	"github.com/aegisops/guardpost/backend/internal/timeline"
)

func shiftAt(t *testing.T, id, guardID int64, start, end string) *domain.Shift {
	t.Helper()
	s, err := time.ParseInLocation("2006-01-02 15:04", start, time.Local)
	if err != nil {
		t.Fatalf("bad test time %q: %v", start, err)
	}
	e, err := time.ParseInLocation("2006-01-02 15:04", end, time.Local)
	if err != nil {
		t.Fatalf("bad test time %q: %v", end, err)
	}
	return &domain.Shift{ID: id, GuardID: guardID, PlannedStart: &s, PlannedEnd: &e}
}

func TestConflictLines(t *testing.T) {
	shifts := []*domain.Shift{
		shiftAt(t, 1, 7, "2025-08-10 08:00", "2025-08-10 16:00"),
		shiftAt(t, 2, 7, "2025-08-10 15:00", "2025-08-10 22:00"),
		shiftAt(t, 3, 8, "2025-08-10 08:00", "2025-08-10 16:00"),
		shiftAt(t, 4, 7, "2025-08-12 08:00", "2025-08-12 16:00"),
	}
	conflicts := timeline.DetectConflicts(shifts)
	names := map[int64]string{7: "Dana Reyes"}

	t.Run("conflicted day names the guard once", func(t *testing.T) {
		lines := conflictLines(shifts, conflicts, names, "2025-08-10")
		if len(lines) != 1 {
			t.Fatalf("lines = %v, want exactly one", lines)
		}
		if !strings.Contains(lines[0], "Dana Reyes") {
			t.Errorf("line %q does not name the guard", lines[0])
		}
	})

	t.Run("clean day produces no lines", func(t *testing.T) {
		if lines := conflictLines(shifts, conflicts, names, "2025-08-12"); len(lines) != 0 {
			t.Errorf("lines = %v, want none", lines)
		}
	})

	t.Run("unknown guard falls back to the id", func(t *testing.T) {
		lines := conflictLines(shifts, conflicts, map[int64]string{}, "2025-08-10")
		if len(lines) != 1 || !strings.Contains(lines[0], "guard 7") {
			t.Errorf("lines = %v, want a guard-id fallback", lines)
		}
	})
}
