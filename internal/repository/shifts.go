package repository

import (
	"context"
	"time"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

const shiftColumns = `id, guard_id, property_id, service_id, planned_start, planned_end, actual_start, actual_end, status, hours_worked, created_at, version`

func scanShift(row interface{ Scan(...any) error }) (*domain.Shift, error) {
	shift := &domain.Shift{}
	dst := []any{
		&shift.ID, &shift.GuardID, &shift.PropertyID, &shift.ServiceID,
		&shift.PlannedStart, &shift.PlannedEnd, &shift.ActualStart, &shift.ActualEnd,
		&shift.Status, &shift.HoursWorked, &shift.CreatedAt, &shift.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return shift, nil
}

// CreateShift inserts a shift and returns the server-confirmed record.
// Part of the timeline.ShiftWriter contract, so it accepts the caller's
// context.
func (r *Repository) CreateShift(ctx context.Context, shift *domain.Shift) (*domain.Shift, error) {
	query := `
		INSERT INTO shifts (guard_id, property_id, service_id, planned_start, planned_end, actual_start, actual_end, status, hours_worked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + shiftColumns

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		shift.GuardID, shift.PropertyID, shift.ServiceID,
		shift.PlannedStart, shift.PlannedEnd, shift.ActualStart, shift.ActualEnd,
		shift.Status, shift.HoursWorked,
	}
	return scanShift(r.dbpool.QueryRowContext(ctx, query, args...))
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanShift(r.dbpool.QueryRowContext(ctx, query, id))
}

func (r *Repository) GetAllShifts() ([]*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts ORDER BY id`
	return r.queryShifts(query)
}

func (r *Repository) GetShiftsByProperty(propertyID int64) ([]*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE property_id = $1 ORDER BY id`
	return r.queryShifts(query, propertyID)
}

func (r *Repository) GetShiftsByService(serviceID int64) ([]*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE service_id = $1 ORDER BY id`
	return r.queryShifts(query, serviceID)
}

func (r *Repository) queryShifts(query string, args ...any) ([]*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

// UpdateShiftTimes rewrites the pair of times the timeline actually
// displays: the actual pair when the shift has an actual start, the
// planned pair otherwise. Returns the confirmed record for the caller
// to merge back, replacing any optimistic draft. Part of the
// timeline.ShiftWriter contract.
func (r *Repository) UpdateShiftTimes(ctx context.Context, id int64, start, end time.Time) (*domain.Shift, error) {
	current, err := r.GetShiftByID(id)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE shifts
		SET planned_start = $1, planned_end = $2, version = version + 1
		WHERE id = $3
		RETURNING ` + shiftColumns
	if current.ActualStart != nil {
		query = `
		UPDATE shifts
		SET actual_start = $1, actual_end = $2, version = version + 1
		WHERE id = $3
		RETURNING ` + shiftColumns
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanShift(r.dbpool.QueryRowContext(ctx, query, start, end, id))
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			guard_id = $1,
			service_id = $2,
			planned_start = $3,
			planned_end = $4,
			actual_start = $5,
			actual_end = $6,
			status = $7,
			hours_worked = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		shift.GuardID, shift.ServiceID,
		shift.PlannedStart, shift.PlannedEnd, shift.ActualStart, shift.ActualEnd,
		shift.Status, shift.HoursWorked,
		shift.ID, shift.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
