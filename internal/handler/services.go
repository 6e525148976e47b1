package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PropertyID     int64    `json:"propertyID" validate:"required"`
		Name           string   `json:"name" validate:"required"`
		Description    string   `json:"description"`
		DailyStartTime string   `json:"dailyStartTime" validate:"omitempty,datetime=15:04"`
		DailyEndTime   string   `json:"dailyEndTime" validate:"omitempty,datetime=15:04"`
		ScheduleDates  []string `json:"scheduleDates" validate:"dive,datetime=2006-01-02"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	// A half-specified window would silently disable gap analysis, so
	// reject it outright.
	if (req.DailyStartTime == "") != (req.DailyEndTime == "") {
		h.badRequest(w, r, errors.New("dailyStartTime and dailyEndTime must be set together"))
		return
	}

	service := &domain.Service{
		PropertyID:     req.PropertyID,
		Name:           req.Name,
		Description:    req.Description,
		DailyStartTime: req.DailyStartTime,
		DailyEndTime:   req.DailyEndTime,
		ScheduleDates:  req.ScheduleDates,
	}

	if err := h.repository.CreateService(service); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "services_property_id_fkey":
				h.badRequest(w, r, errors.New("the property does not exist"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "service created", service)
}

func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	service := r.Context().Value(ServiceCtx).(*domain.Service)
	h.successResponse(w, r, "service fetched", service)
}

func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	service := r.Context().Value(ServiceCtx).(*domain.Service)

	var req struct {
		Name           *string   `json:"name"`
		Description    *string   `json:"description"`
		DailyStartTime *string   `json:"dailyStartTime" validate:"omitempty,datetime=15:04"`
		DailyEndTime   *string   `json:"dailyEndTime" validate:"omitempty,datetime=15:04"`
		ScheduleDates  *[]string `json:"scheduleDates" validate:"omitempty,dive,datetime=2006-01-02"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DailyStartTime != nil {
		service.DailyStartTime = *req.DailyStartTime
	}
	if req.DailyEndTime != nil {
		service.DailyEndTime = *req.DailyEndTime
	}
	if req.ScheduleDates != nil {
		service.ScheduleDates = *req.ScheduleDates
	}

	if (service.DailyStartTime == "") != (service.DailyEndTime == "") {
		h.badRequest(w, r, errors.New("dailyStartTime and dailyEndTime must be set together"))
		return
	}

	if err := h.repository.UpdateService(service); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the service was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidateTimelineCache(r, service.PropertyID)

	h.successResponse(w, r, "service updated", service)
}

func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	service := r.Context().Value(ServiceCtx).(*domain.Service)

	if err := h.repository.DeleteService(service.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateTimelineCache(r, service.PropertyID)

	h.successResponse(w, r, "service deleted", nil)
}
