package repository

import (
	"context"
	"time"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

func (r *Repository) CreateNote(note *domain.Note) error {
	query := `
		INSERT INTO notes (property_id, guard_id, author_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{note.PropertyID, note.GuardID, note.AuthorID, note.Body}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&note.ID, &note.CreatedAt, &note.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetNoteByID(id int64) (*domain.Note, error) {
	query := `
		SELECT property_id, guard_id, author_id, body, created_at, version
		FROM notes WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	note := &domain.Note{
		ID: id,
	}

	dst := []any{&note.PropertyID, &note.GuardID, &note.AuthorID, &note.Body, &note.CreatedAt, &note.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return note, nil
}

func (r *Repository) GetNotesByProperty(propertyID int64) ([]*domain.Note, error) {
	query := `
		SELECT id, guard_id, author_id, body, created_at, version
		FROM notes WHERE property_id = $1 ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]*domain.Note, 0)
	for rows.Next() {
		note := &domain.Note{PropertyID: propertyID}
		dst := []any{&note.ID, &note.GuardID, &note.AuthorID, &note.Body, &note.CreatedAt, &note.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

func (r *Repository) UpdateNote(note *domain.Note) error {
	query := `
		UPDATE notes
		SET body = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, note.Body, note.ID, note.Version).Scan(&note.CreatedAt, &note.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteNote(id int64) error {
	query := `
		DELETE FROM notes WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
