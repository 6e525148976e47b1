package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

func (h *Handler) GetAllProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.repository.GetAllProperties()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "properties fetched", properties)
}

func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name" validate:"required"`
		Address string `json:"address" validate:"required"`
		City    string `json:"city"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	property := &domain.Property{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
	}

	if err := h.repository.CreateProperty(property); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "property created", property)
}

func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	property := r.Context().Value(PropertyCtx).(*domain.Property)
	h.successResponse(w, r, "property fetched", property)
}

func (h *Handler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	property := r.Context().Value(PropertyCtx).(*domain.Property)

	var req struct {
		Name     *string `json:"name"`
		Address  *string `json:"address"`
		City     *string `json:"city"`
		IsActive *bool   `json:"isActive"`
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
		property.Name = *req.Name
	}
	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.City != nil {
		property.City = *req.City
	}
	if req.IsActive != nil {
		property.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateProperty(property); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the property was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "property updated", property)
}

func (h *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	property := r.Context().Value(PropertyCtx).(*domain.Property)

	if err := h.repository.DeleteProperty(property.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "property deleted", nil)
}

func (h *Handler) GetPropertyServices(w http.ResponseWriter, r *http.Request) {
	property := r.Context().Value(PropertyCtx).(*domain.Property)

	services, err := h.repository.GetServicesByProperty(property.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "services fetched", services)
}

func (h *Handler) GetPropertyShifts(w http.ResponseWriter, r *http.Request) {
	property := r.Context().Value(PropertyCtx).(*domain.Property)

	shifts, err := h.repository.GetShiftsByProperty(property.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts fetched", shifts)
}

func (h *Handler) GetPropertyNotes(w http.ResponseWriter, r *http.Request) {
	property := r.Context().Value(PropertyCtx).(*domain.Property)

	notes, err := h.repository.GetNotesByProperty(property.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "notes fetched", notes)
}
