package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

func (h *Handler) GetAllGuards(w http.ResponseWriter, r *http.Request) {
	guards, err := h.repository.GetAllGuards()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "guards fetched", guards)
}

func (h *Handler) CreateGuard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"fullName" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Phone    string `json:"phone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	guard := &domain.Guard{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	}

	if err := h.repository.CreateGuard(guard); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "guards_email_key":
				h.badRequest(w, r, errors.New("a guard with this email already exists"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "guard created", guard)
}

func (h *Handler) GetGuard(w http.ResponseWriter, r *http.Request) {
	guard := r.Context().Value(GuardCtx).(*domain.Guard)
	h.successResponse(w, r, "guard fetched", guard)
}

func (h *Handler) UpdateGuard(w http.ResponseWriter, r *http.Request) {
	guard := r.Context().Value(GuardCtx).(*domain.Guard)

	var req struct {
		FullName *string `json:"fullName"`
		Email    *string `json:"email" validate:"omitempty,email"`
		Phone    *string `json:"phone"`
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

	if req.FullName != nil {
		guard.FullName = *req.FullName
	}
	if req.Email != nil {
		guard.Email = *req.Email
	}
	if req.Phone != nil {
		guard.Phone = *req.Phone
	}
	if req.IsActive != nil {
		guard.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateGuard(guard); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the guard was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "guard updated", guard)
}

func (h *Handler) DeleteGuard(w http.ResponseWriter, r *http.Request) {
	guard := r.Context().Value(GuardCtx).(*domain.Guard)

	if err := h.repository.DeleteGuard(guard.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "guard deleted", nil)
}
