package repository

import (
	"context"
	"time"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

func (r *Repository) CreateProperty(property *domain.Property) error {
	query := `
		INSERT INTO properties (name, address, city)
		VALUES ($1, $2, $3)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{property.Name, property.Address, property.City}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&property.ID, &property.IsActive, &property.CreatedAt, &property.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetPropertyByID(id int64) (*domain.Property, error) {
	query := `
		SELECT name, address, city, is_active, created_at, version
		FROM properties WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	property := &domain.Property{
		ID: id,
	}

	dst := []any{&property.Name, &property.Address, &property.City, &property.IsActive, &property.CreatedAt, &property.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return property, nil
}

func (r *Repository) GetAllProperties() ([]*domain.Property, error) {
	query := `
		SELECT id, name, address, city, is_active, created_at, version FROM properties ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := make([]*domain.Property, 0)
	for rows.Next() {
		property := &domain.Property{}
		dst := []any{&property.ID, &property.Name, &property.Address, &property.City, &property.IsActive, &property.CreatedAt, &property.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return properties, nil
}

func (r *Repository) UpdateProperty(property *domain.Property) error {
	query := `
		UPDATE properties
		SET
			name = $1,
			address = $2,
			city = $3,
			is_active = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{property.Name, property.Address, property.City, property.IsActive, property.ID, property.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&property.CreatedAt, &property.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteProperty(id int64) error {
	query := `
		DELETE FROM properties WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
