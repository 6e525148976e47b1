package timeline

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

// Drag controller errors.
var (
	ErrGestureInProgress = errors.New("a drag gesture is already in progress")
	ErrNoActiveGesture   = errors.New("no drag gesture in progress")
)

// DragMode selects which edge moves, or the whole block.
type DragMode int

const (
	DragModeStart DragMode = iota
	DragModeEnd
	DragModeMove
)

type dragPhase int

const (
	phaseIdle dragPhase = iota
	phasePending
	phaseActive
	phaseCommitting
)

// DragConfig holds the view geometry and snapping rules for a drag
// session.
type DragConfig struct {
	DayHeightPx     float64       // pixel height of one 24h day column
	SnapStep        time.Duration // time grid for edges, usually 15m
	MinDuration     time.Duration // shortest allowed shift
	MoveThresholdPx float64       // movement below this is a click
	DropDuration    time.Duration // default length of a dropped-in shift
}

// ShiftWriter persists the outcome of a gesture and returns the
// server-confirmed record, which replaces any optimistic draft.
type ShiftWriter interface {
	UpdateShiftTimes(ctx context.Context, id int64, start, end time.Time) (*domain.Shift, error)
	CreateShift(ctx context.Context, shift *domain.Shift) (*domain.Shift, error)
}

// DragController is the edit state machine behind resize and move
// gestures: idle → pending → active → committing → idle. It is driven
// by discrete pointer events so it can be exercised without a pointer
// device. Only one gesture runs at a time; the commit is the single
// asynchronous step and a failed commit leaves the pre-drag shift
// standing.
type DragController struct {
	cfg    DragConfig
	writer ShiftWriter

	phase     dragPhase
	mode      DragMode
	gestureID uuid.UUID

	shift                *domain.Shift
	dayStart             time.Time
	origStart, origEnd   time.Time
	draftStart, draftEnd time.Time
	downX, downY         float64
}

func NewDragController(cfg DragConfig, writer ShiftWriter) *DragController {
	if cfg.SnapStep <= 0 {
		cfg.SnapStep = 15 * time.Minute
	}
	if cfg.MinDuration <= 0 {
		cfg.MinDuration = 15 * time.Minute
	}
	if cfg.DropDuration <= 0 {
		cfg.DropDuration = 6 * time.Hour
	}
	return &DragController{cfg: cfg, writer: writer}
}

// Snap rounds t to the nearest grid instant. Snapping an already
// aligned instant returns it unchanged.
func (c *DragController) Snap(t time.Time) time.Time {
	return t.Round(c.cfg.SnapStep)
}

// GestureID identifies the gesture currently in flight, for logging.
func (c *DragController) GestureID() uuid.UUID { return c.gestureID }

// Dragging reports whether a gesture has activated (pointer-down alone
// in move mode has not).
func (c *DragController) Dragging() bool { return c.phase == phaseActive }

// Draft returns the current optimistic interval while a gesture is
// active.
func (c *DragController) Draft() (start, end time.Time, ok bool) {
	if c.phase != phaseActive {
		return time.Time{}, time.Time{}, false
	}
	return c.draftStart, c.draftEnd, true
}

// PointerDown begins a gesture on a shift. Grabbing a resize handle
// activates immediately; grabbing the body stays pending until the
// pointer travels past the click threshold, so a plain click is left to
// the caller to open the detail view.
func (c *DragController) PointerDown(shift *domain.Shift, mode DragMode, dayStart time.Time, x, y float64) error {
	if c.phase != phaseIdle {
		return ErrGestureInProgress
	}
	start, end, ok := EffectiveRange(shift)
	if !ok {
		return errors.New("shift has no effective interval to drag")
	}

	c.gestureID = uuid.New()
	c.shift = shift
	c.mode = mode
	c.dayStart = dayStart
	c.origStart, c.origEnd = start, end
	c.draftStart, c.draftEnd = start, end
	c.downX, c.downY = x, y

	if mode == DragModeMove {
		c.phase = phasePending
	} else {
		c.phase = phaseActive
	}
	return nil
}

// PointerMove updates the draft interval. Vertical travel maps to
// minutes through the day-height ratio and the result snaps to the
// grid. Resizing clamps the moving edge inside the visual day and never
// lets the duration fall below the minimum; moving preserves the
// duration and is deliberately unclamped, so a block may be dragged
// across midnight.
func (c *DragController) PointerMove(x, y float64) {
	switch c.phase {
	case phasePending:
		if math.Hypot(x-c.downX, y-c.downY) < c.cfg.MoveThresholdPx {
			return
		}
		c.phase = phaseActive
	case phaseActive:
	default:
		return
	}

	delta := c.pixelsToDuration(y - c.downY)
	dayEnd := c.dayStart.AddDate(0, 0, 1)

	switch c.mode {
	case DragModeStart:
		start := c.Snap(c.origStart.Add(delta))
		if start.Before(c.dayStart) {
			start = c.dayStart
		}
		if latest := c.draftEnd.Add(-c.cfg.MinDuration); start.After(latest) {
			start = latest
		}
		c.draftStart = start
	case DragModeEnd:
		end := c.Snap(c.origEnd.Add(delta))
		if end.After(dayEnd) {
			end = dayEnd
		}
		if earliest := c.draftStart.Add(c.cfg.MinDuration); end.Before(earliest) {
			end = earliest
		}
		c.draftEnd = end
	case DragModeMove:
		duration := c.origEnd.Sub(c.origStart)
		start := c.Snap(c.origStart.Add(delta))
		c.draftStart = start
		c.draftEnd = start.Add(duration)
	}
}

// PointerUp ends the gesture. A move gesture that never activated is a
// click and mutates nothing. Otherwise the draft is committed through
// the writer; on success the confirmed record is returned for the
// caller to merge, on failure the draft is discarded and the error
// reported.
func (c *DragController) PointerUp(ctx context.Context) (confirmed *domain.Shift, committed bool, err error) {
	switch c.phase {
	case phaseIdle:
		return nil, false, ErrNoActiveGesture
	case phasePending:
		c.reset()
		return nil, false, nil
	}

	c.phase = phaseCommitting
	start, end := c.draftStart, c.draftEnd
	id := c.shift.ID

	updated, err := c.writer.UpdateShiftTimes(ctx, id, start, end)
	c.reset()
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

// Cancel abandons the gesture and restores the pre-drag state.
func (c *DragController) Cancel() {
	c.reset()
}

// DropGuard creates a brand-new shift from a guard identifier dropped
// onto the timeline: the drop position snaps to the grid and produces a
// default-length block inheriting the active property and, when one is
// selected, the current service.
func (c *DragController) DropGuard(ctx context.Context, guardID, propertyID int64, serviceID *int64, dayStart time.Time, y float64) (*domain.Shift, error) {
	if c.phase != phaseIdle {
		return nil, ErrGestureInProgress
	}

	start := c.Snap(dayStart.Add(c.pixelsToDuration(y)))
	end := start.Add(c.cfg.DropDuration)
	draft := &domain.Shift{
		GuardID:      guardID,
		PropertyID:   propertyID,
		ServiceID:    serviceID,
		PlannedStart: &start,
		PlannedEnd:   &end,
		Status:       domain.ShiftStatusScheduled,
	}
	return c.writer.CreateShift(ctx, draft)
}

func (c *DragController) pixelsToDuration(px float64) time.Duration {
	if c.cfg.DayHeightPx <= 0 {
		return 0
	}
	minutes := px / c.cfg.DayHeightPx * 24 * 60
	return time.Duration(minutes * float64(time.Minute))
}

func (c *DragController) reset() {
	c.phase = phaseIdle
	c.shift = nil
	c.gestureID = uuid.Nil
}
