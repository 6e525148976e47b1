package repository

import (
	"context"
	"time"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

func (r *Repository) CreateGuard(guard *domain.Guard) error {
	query := `
		INSERT INTO guards (full_name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{guard.FullName, guard.Email, guard.Phone}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&guard.ID, &guard.IsActive, &guard.CreatedAt, &guard.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetGuardByID(id int64) (*domain.Guard, error) {
	query := `
		SELECT full_name, email, phone, is_active, created_at, version
		FROM guards WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	guard := &domain.Guard{
		ID: id,
	}

	dst := []any{&guard.FullName, &guard.Email, &guard.Phone, &guard.IsActive, &guard.CreatedAt, &guard.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return guard, nil
}

func (r *Repository) GetAllGuards() ([]*domain.Guard, error) {
	query := `
		SELECT id, full_name, email, phone, is_active, created_at, version FROM guards ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guards := make([]*domain.Guard, 0)
	for rows.Next() {
		guard := &domain.Guard{}
		dst := []any{&guard.ID, &guard.FullName, &guard.Email, &guard.Phone, &guard.IsActive, &guard.CreatedAt, &guard.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		guards = append(guards, guard)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return guards, nil
}

func (r *Repository) UpdateGuard(guard *domain.Guard) error {
	query := `
		UPDATE guards
		SET
			full_name = $1,
			email = $2,
			phone = $3,
			is_active = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{guard.FullName, guard.Email, guard.Phone, guard.IsActive, guard.ID, guard.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&guard.CreatedAt, &guard.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteGuard(id int64) error {
	query := `
		DELETE FROM guards WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
