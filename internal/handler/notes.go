package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PropertyID int64  `json:"propertyID" validate:"required"`
		GuardID    *int64 `json:"guardID"`
		Body       string `json:"body" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	subString := r.Context().Value(SubCtxKey).(string)
	authorID, err := strconv.ParseInt(subString, 10, 64)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	note := &domain.Note{
		PropertyID: req.PropertyID,
		GuardID:    req.GuardID,
		AuthorID:   authorID,
		Body:       req.Body,
	}

	if err := h.repository.CreateNote(note); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "notes_property_id_fkey":
				h.badRequest(w, r, errors.New("the property does not exist"))
			case "notes_guard_id_fkey":
				h.badRequest(w, r, errors.New("the guard does not exist"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "note created", note)
}

func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	note := r.Context().Value(NoteCtx).(*domain.Note)
	h.successResponse(w, r, "note fetched", note)
}

func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	note := r.Context().Value(NoteCtx).(*domain.Note)

	var req struct {
		Body    *string `json:"body"`
		GuardID *int64  `json:"guardID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Body != nil {
		note.Body = *req.Body
	}
	if req.GuardID != nil {
		note.GuardID = req.GuardID
	}

	if err := h.repository.UpdateNote(note); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the note was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "note updated", note)
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	note := r.Context().Value(NoteCtx).(*domain.Note)

	if err := h.repository.DeleteNote(note.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "note deleted", nil)
}
