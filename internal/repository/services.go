package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

// Schedule dates live in their own table (service_schedule_dates) and
// get folded back into the Service on read, the way an explicit date
// set rather than a recurrence rule requires.

func (r *Repository) CreateService(service *domain.Service) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO services (property_id, name, description, daily_start_time, daily_end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{service.PropertyID, service.Name, service.Description, service.DailyStartTime, service.DailyEndTime}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&service.ID, &service.CreatedAt, &service.Version); err != nil {
		return err
	}

	for _, date := range service.ScheduleDates {
		if _, err := tx.ExecContext(ctx, `INSERT INTO service_schedule_dates (service_id, date) VALUES ($1, $2)`, service.ID, date); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) GetServiceByID(id int64) (*domain.Service, error) {
	query := `
		SELECT
			s.property_id,
			s.name,
			s.description,
			s.daily_start_time,
			s.daily_end_time,
			s.created_at,
			s.version,
			ssd.date
		FROM services s
		LEFT JOIN service_schedule_dates ssd ON s.id = ssd.service_id
		WHERE s.id = $1
		ORDER BY ssd.date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var service *domain.Service
	for rows.Next() {
		var (
			propertyID int64
			name       string
			desc       string
			startTime  string
			endTime    string
			createdAt  time.Time
			version    int32
			date       sql.NullString
		)
		if err := rows.Scan(&propertyID, &name, &desc, &startTime, &endTime, &createdAt, &version, &date); err != nil {
			return nil, err
		}
		if service == nil {
			service = &domain.Service{
				ID:             id,
				PropertyID:     propertyID,
				Name:           name,
				Description:    desc,
				DailyStartTime: startTime,
				DailyEndTime:   endTime,
				ScheduleDates:  make([]string, 0),
				CreatedAt:      createdAt,
				Version:        version,
			}
		}
		if date.Valid {
			service.ScheduleDates = append(service.ScheduleDates, date.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	if service == nil {
		return nil, sql.ErrNoRows
	}

	return service, nil
}

func (r *Repository) GetServicesByProperty(propertyID int64) ([]*domain.Service, error) {
	query := `
		SELECT
			s.id,
			s.name,
			s.description,
			s.daily_start_time,
			s.daily_end_time,
			s.created_at,
			s.version,
			ssd.date
		FROM services s
		LEFT JOIN service_schedule_dates ssd ON s.id = ssd.service_id
		WHERE s.property_id = $1
		ORDER BY s.id, ssd.date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	servicesMap := make(map[int64]*domain.Service)
	services := make([]*domain.Service, 0)

	for rows.Next() {
		var (
			id        int64
			name      string
			desc      string
			startTime string
			endTime   string
			createdAt time.Time
			version   int32
			date      sql.NullString
		)
		if err := rows.Scan(&id, &name, &desc, &startTime, &endTime, &createdAt, &version, &date); err != nil {
			return nil, err
		}

		service, exists := servicesMap[id]
		if !exists {
			service = &domain.Service{
				ID:             id,
				PropertyID:     propertyID,
				Name:           name,
				Description:    desc,
				DailyStartTime: startTime,
				DailyEndTime:   endTime,
				ScheduleDates:  make([]string, 0),
				CreatedAt:      createdAt,
				Version:        version,
			}
			servicesMap[id] = service
			services = append(services, service)
		}
		if date.Valid {
			service.ScheduleDates = append(service.ScheduleDates, date.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return services, nil
}

func (r *Repository) UpdateService(service *domain.Service) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE services
		SET
			name = $1,
			description = $2,
			daily_start_time = $3,
			daily_end_time = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, version
	`

	args := []any{service.Name, service.Description, service.DailyStartTime, service.DailyEndTime, service.ID, service.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&service.CreatedAt, &service.Version); err != nil {
		return err
	}

	// Replacing the whole date set is simpler than diffing it and the
	// sets are small.
	if _, err := tx.ExecContext(ctx, `DELETE FROM service_schedule_dates WHERE service_id = $1`, service.ID); err != nil {
		return err
	}
	for _, date := range service.ScheduleDates {
		if _, err := tx.ExecContext(ctx, `INSERT INTO service_schedule_dates (service_id, date) VALUES ($1, $2)`, service.ID, date); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) DeleteService(id int64) error {
	query := `
		DELETE FROM services WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
