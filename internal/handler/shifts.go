package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aegisops/guardpost/backend/internal/domain"
	"github.com/aegisops/guardpost/backend/internal/timeline"
)

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GuardID      int64      `json:"guardID" validate:"required"`
		PropertyID   int64      `json:"propertyID" validate:"required"`
		ServiceID    *int64     `json:"serviceID"`
		PlannedStart *time.Time `json:"plannedStart"`
		PlannedEnd   *time.Time `json:"plannedEnd"`
		ActualStart  *time.Time `json:"actualStart"`
		ActualEnd    *time.Time `json:"actualEnd"`
		Status       string     `json:"status" validate:"omitempty,oneof=scheduled completed voided"`
		HoursWorked  float64    `json:"hoursWorked" validate:"gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	status := domain.ShiftStatus(req.Status)
	if status == "" {
		status = domain.ShiftStatusScheduled
	}

	shift := &domain.Shift{
		GuardID:      req.GuardID,
		PropertyID:   req.PropertyID,
		ServiceID:    req.ServiceID,
		PlannedStart: req.PlannedStart,
		PlannedEnd:   req.PlannedEnd,
		ActualStart:  req.ActualStart,
		ActualEnd:    req.ActualEnd,
		Status:       status,
		HoursWorked:  req.HoursWorked,
	}

	created, err := h.repository.CreateShift(r.Context(), shift)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "shifts_guard_id_fkey":
				h.badRequest(w, r, errors.New("the guard does not exist"))
			case "shifts_property_id_fkey":
				h.badRequest(w, r, errors.New("the property does not exist"))
			case "shifts_service_id_fkey":
				h.badRequest(w, r, errors.New("the service does not exist"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidateTimelineCache(r, created.PropertyID)

	h.successResponse(w, r, "shift created", created)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	h.successResponse(w, r, "shift fetched", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		GuardID      *int64     `json:"guardID"`
		ServiceID    *int64     `json:"serviceID"`
		PlannedStart *time.Time `json:"plannedStart"`
		PlannedEnd   *time.Time `json:"plannedEnd"`
		ActualStart  *time.Time `json:"actualStart"`
		ActualEnd    *time.Time `json:"actualEnd"`
		Status       *string    `json:"status" validate:"omitempty,oneof=scheduled completed voided"`
		HoursWorked  *float64   `json:"hoursWorked" validate:"omitempty,gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.GuardID != nil {
		shift.GuardID = *req.GuardID
	}
	if req.ServiceID != nil {
		shift.ServiceID = req.ServiceID
	}
	if req.PlannedStart != nil {
		shift.PlannedStart = req.PlannedStart
	}
	if req.PlannedEnd != nil {
		shift.PlannedEnd = req.PlannedEnd
	}
	if req.ActualStart != nil {
		shift.ActualStart = req.ActualStart
	}
	if req.ActualEnd != nil {
		shift.ActualEnd = req.ActualEnd
	}
	if req.Status != nil {
		shift.Status = domain.ShiftStatus(*req.Status)
	}
	if req.HoursWorked != nil {
		shift.HoursWorked = *req.HoursWorked
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the shift was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidateTimelineCache(r, shift.PropertyID)

	h.successResponse(w, r, "shift updated", shift)
}

// UpdateShiftTimes is the commit target for a drag edit. The request
// carries the raw pointer-derived times; snapping and the minimum
// duration are enforced here so every client observes the same grid.
func (h *Handler) UpdateShiftTimes(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		Start time.Time `json:"start" validate:"required"`
		End   time.Time `json:"end" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	step := time.Duration(h.config.Timeline.SnapStepMinutes) * time.Minute
	minDuration := time.Duration(h.config.Timeline.MinDurationMinutes) * time.Minute

	start := req.Start.Round(step)
	end := req.End.Round(step)
	if !end.After(start.Add(minDuration - 1)) {
		h.badRequest(w, r, fmt.Errorf("a shift must last at least %s", minDuration))
		return
	}

	confirmed, err := h.repository.UpdateShiftTimes(r.Context(), shift.ID, start, end)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateTimelineCache(r, confirmed.PropertyID)

	h.successResponse(w, r, "shift times updated", confirmed)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateTimelineCache(r, shift.PropertyID)

	h.successResponse(w, r, "shift deleted", nil)
}

// ImportShifts accepts records exported from other rostering tools,
// which disagree on field names and timestamp formats. Each record is
// normalized before insert; rejects are reported per index instead of
// failing the whole batch.
func (h *Handler) ImportShifts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Shifts []map[string]any `json:"shifts" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	type reject struct {
		Index  int    `json:"index"`
		Reason string `json:"reason"`
	}

	imported := make([]*domain.Shift, 0, len(req.Shifts))
	rejected := make([]reject, 0)
	touched := make(map[int64]bool)

	for i, raw := range req.Shifts {
		shift, err := timeline.NormalizeShift(raw)
		if err != nil {
			rejected = append(rejected, reject{Index: i, Reason: err.Error()})
			continue
		}

		created, err := h.repository.CreateShift(r.Context(), shift)
		if err != nil {
			rejected = append(rejected, reject{Index: i, Reason: "insert failed"})
			h.logInternalServerError(r, err)
			continue
		}

		imported = append(imported, created)
		touched[created.PropertyID] = true
	}

	for propertyID := range touched {
		h.invalidateTimelineCache(r, propertyID)
	}

	h.successResponse(w, r, "shifts imported", map[string]any{
		"imported": imported,
		"rejected": rejected,
	})
}
