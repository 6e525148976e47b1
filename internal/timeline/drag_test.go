package timeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

// fakeWriter records commits; one pixel equals one minute under the
// test geometry below.
type fakeWriter struct {
	err error

	updateCalls int
	lastID      int64
	lastStart   time.Time
	lastEnd     time.Time

	createCalls int
	lastCreated *domain.Shift
}

func (w *fakeWriter) UpdateShiftTimes(_ context.Context, id int64, start, end time.Time) (*domain.Shift, error) {
	w.updateCalls++
	w.lastID = id
	w.lastStart = start
	w.lastEnd = end
	if w.err != nil {
		return nil, w.err
	}
	return &domain.Shift{ID: id, PlannedStart: &start, PlannedEnd: &end}, nil
}

func (w *fakeWriter) CreateShift(_ context.Context, shift *domain.Shift) (*domain.Shift, error) {
	w.createCalls++
	w.lastCreated = shift
	if w.err != nil {
		return nil, w.err
	}
	created := *shift
	created.ID = 99
	return &created, nil
}

func testController(writer ShiftWriter) *DragController {
	return NewDragController(DragConfig{
		DayHeightPx:     1440, // 1px per minute
		SnapStep:        15 * time.Minute,
		MinDuration:     15 * time.Minute,
		MoveThresholdPx: 5,
		DropDuration:    6 * time.Hour,
	}, writer)
}

func TestSnapIsIdempotent(t *testing.T) {
	c := testController(&fakeWriter{})

	raw := at(t, "2025-08-10 08:00").Add(7 * time.Minute)
	once := c.Snap(raw)
	twice := c.Snap(once)

	if !once.Equal(twice) {
		t.Errorf("Snap(Snap(t)) = %v, want %v", twice, once)
	}
	if once.Minute()%15 != 0 {
		t.Errorf("snapped minute %d is off the grid", once.Minute())
	}
}

func TestResizeActivatesImmediately(t *testing.T) {
	c := testController(&fakeWriter{})
	shift := &domain.Shift{ID: 1, PlannedStart: tp(t, "2025-08-10 08:00"), PlannedEnd: tp(t, "2025-08-10 16:00")}

	if err := c.PointerDown(shift, DragModeEnd, at(t, "2025-08-10 00:00"), 0, 0); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	if !c.Dragging() {
		t.Error("resize gesture should be active straight from pointer-down")
	}
}

func TestMoveBelowThresholdIsAClick(t *testing.T) {
	writer := &fakeWriter{}
	c := testController(writer)
	shift := &domain.Shift{ID: 1, PlannedStart: tp(t, "2025-08-10 08:00"), PlannedEnd: tp(t, "2025-08-10 16:00")}

	if err := c.PointerDown(shift, DragModeMove, at(t, "2025-08-10 00:00"), 0, 0); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	if c.Dragging() {
		t.Error("move gesture must stay pending until the threshold")
	}

	c.PointerMove(0, 3)
	if c.Dragging() {
		t.Error("3px of travel is below the threshold")
	}

	confirmed, committed, err := c.PointerUp(context.Background())
	if err != nil {
		t.Fatalf("PointerUp: %v", err)
	}
	if committed || confirmed != nil {
		t.Error("a click must not commit anything")
	}
	if writer.updateCalls != 0 {
		t.Errorf("writer called %d times on a click", writer.updateCalls)
	}
}

func TestMovePreservesDurationAcrossMidnight(t *testing.T) {
	writer := &fakeWriter{}
	c := testController(writer)
	shift := &domain.Shift{ID: 1, PlannedStart: tp(t, "2025-08-10 20:00"), PlannedEnd: tp(t, "2025-08-10 23:00")}

	if err := c.PointerDown(shift, DragModeMove, at(t, "2025-08-10 00:00"), 0, 0); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	c.PointerMove(0, 240) // four hours down, well past the threshold

	start, end, ok := c.Draft()
	if !ok {
		t.Fatal("expected an active draft")
	}
	if !start.Equal(at(t, "2025-08-11 00:00")) {
		t.Errorf("draft start = %v, want midnight of the next day", start)
	}
	if got := end.Sub(start); got != 3*time.Hour {
		t.Errorf("draft duration = %v, want the original 3h", got)
	}
}

func TestResizeEndClampsToDayAndMinimum(t *testing.T) {
	tests := []struct {
		name    string
		travel  float64
		wantEnd string
	}{
		{
			name:    "pulled past midnight clamps to the day edge",
			travel:  180,
			wantEnd: "2025-08-11 00:00",
		},
		{
			name:    "pulled through the start clamps to the minimum duration",
			travel:  -240,
			wantEnd: "2025-08-10 22:15",
		},
		{
			name:    "ordinary resize snaps to the grid",
			travel:  -52, // 52 minutes up, snaps to -45
			wantEnd: "2025-08-10 22:15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testController(&fakeWriter{})
			shift := &domain.Shift{ID: 1, PlannedStart: tp(t, "2025-08-10 22:00"), PlannedEnd: tp(t, "2025-08-10 23:00")}

			if err := c.PointerDown(shift, DragModeEnd, at(t, "2025-08-10 00:00"), 0, 0); err != nil {
				t.Fatalf("PointerDown: %v", err)
			}
			c.PointerMove(0, tt.travel)

			_, end, ok := c.Draft()
			if !ok {
				t.Fatal("expected an active draft")
			}
			if !end.Equal(at(t, tt.wantEnd)) {
				t.Errorf("draft end = %v, want %s", end, tt.wantEnd)
			}
		})
	}
}

func TestResizeStartClampsToDayStart(t *testing.T) {
	c := testController(&fakeWriter{})
	shift := &domain.Shift{ID: 1, PlannedStart: tp(t, "2025-08-10 01:00"), PlannedEnd: tp(t, "2025-08-10 09:00")}

	if err := c.PointerDown(shift, DragModeStart, at(t, "2025-08-10 00:00"), 0, 0); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	c.PointerMove(0, -180)

	start, _, ok := c.Draft()
	if !ok {
		t.Fatal("expected an active draft")
	}
	if !start.Equal(at(t, "2025-08-10 00:00")) {
		t.Errorf("draft start = %v, want the day start", start)
	}
}

func TestCommitSuccessReturnsConfirmedRecord(t *testing.T) {
	writer := &fakeWriter{}
	c := testController(writer)
	shift := &domain.Shift{ID: 42, PlannedStart: tp(t, "2025-08-10 08:00"), PlannedEnd: tp(t, "2025-08-10 16:00")}

	if err := c.PointerDown(shift, DragModeEnd, at(t, "2025-08-10 00:00"), 0, 0); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	c.PointerMove(0, 60)

	confirmed, committed, err := c.PointerUp(context.Background())
	if err != nil {
		t.Fatalf("PointerUp: %v", err)
	}
	if !committed {
		t.Fatal("expected a committed gesture")
	}
	if confirmed == nil || confirmed.ID != 42 {
		t.Fatalf("confirmed = %+v, want the record for shift 42", confirmed)
	}
	if writer.updateCalls != 1 || writer.lastID != 42 {
		t.Errorf("writer calls = %d (id %d), want exactly one for shift 42", writer.updateCalls, writer.lastID)
	}
	if !writer.lastEnd.Equal(at(t, "2025-08-10 17:00")) {
		t.Errorf("committed end = %v, want 17:00", writer.lastEnd)
	}
	if c.Dragging() {
		t.Error("controller must return to idle after the commit")
	}
}

func TestCommitFailureDiscardsTheDraft(t *testing.T) {
	writer := &fakeWriter{err: errors.New("boom")}
	c := testController(writer)
	original := &domain.Shift{ID: 42, PlannedStart: tp(t, "2025-08-10 08:00"), PlannedEnd: tp(t, "2025-08-10 16:00")}

	if err := c.PointerDown(original, DragModeEnd, at(t, "2025-08-10 00:00"), 0, 0); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	c.PointerMove(0, 60)

	confirmed, committed, err := c.PointerUp(context.Background())
	if err == nil {
		t.Fatal("expected the writer error to surface")
	}
	if committed || confirmed != nil {
		t.Error("a failed commit must not report success")
	}

	// The pre-drag record is untouched and the controller accepts a
	// fresh gesture.
	if !original.PlannedEnd.Equal(at(t, "2025-08-10 16:00")) {
		t.Errorf("original end mutated to %v", *original.PlannedEnd)
	}
	if err := c.PointerDown(original, DragModeEnd, at(t, "2025-08-10 00:00"), 0, 0); err != nil {
		t.Errorf("controller stuck after a failed commit: %v", err)
	}
}

func TestGestureExclusivity(t *testing.T) {
	c := testController(&fakeWriter{})
	shift := &domain.Shift{ID: 1, PlannedStart: tp(t, "2025-08-10 08:00"), PlannedEnd: tp(t, "2025-08-10 16:00")}

	if _, _, err := c.PointerUp(context.Background()); !errors.Is(err, ErrNoActiveGesture) {
		t.Errorf("PointerUp with no gesture = %v, want ErrNoActiveGesture", err)
	}

	if err := c.PointerDown(shift, DragModeEnd, at(t, "2025-08-10 00:00"), 0, 0); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	if err := c.PointerDown(shift, DragModeEnd, at(t, "2025-08-10 00:00"), 0, 0); !errors.Is(err, ErrGestureInProgress) {
		t.Errorf("second PointerDown = %v, want ErrGestureInProgress", err)
	}

	c.Cancel()
	if c.Dragging() {
		t.Error("Cancel must return the controller to idle")
	}
}

func TestDropGuardCreatesDefaultLengthShift(t *testing.T) {
	writer := &fakeWriter{}
	c := testController(writer)

	serviceID := int64(5)
	created, err := c.DropGuard(context.Background(), 7, 3, &serviceID, at(t, "2025-08-10 00:00"), 487)
	if err != nil {
		t.Fatalf("DropGuard: %v", err)
	}
	if created.ID != 99 {
		t.Errorf("created.ID = %d, want the server-assigned id", created.ID)
	}
	if writer.createCalls != 1 {
		t.Fatalf("writer.CreateShift called %d times, want 1", writer.createCalls)
	}

	draft := writer.lastCreated
	if draft.GuardID != 7 || draft.PropertyID != 3 || draft.ServiceID == nil || *draft.ServiceID != 5 {
		t.Errorf("draft identity = guard %d property %d service %v", draft.GuardID, draft.PropertyID, draft.ServiceID)
	}
	if !draft.PlannedStart.Equal(at(t, "2025-08-10 08:00")) {
		t.Errorf("draft start = %v, want the snapped drop point 08:00", *draft.PlannedStart)
	}
	if got := draft.PlannedEnd.Sub(*draft.PlannedStart); got != 6*time.Hour {
		t.Errorf("draft duration = %v, want the 6h default", got)
	}
	if draft.Status != domain.ShiftStatusScheduled {
		t.Errorf("draft status = %s, want scheduled", draft.Status)
	}
}
