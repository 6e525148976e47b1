package timeline

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

// The legacy system ships shift records under several field spellings
// (snake_case, camelCase, nested detail objects) and timestamp formats.
// NormalizeShift is the single boundary mapping all of those onto the
// canonical Shift; the detectors only ever see the canonical shape.

var (
	ErrMissingGuard    = errors.New("shift record carries no guard id")
	ErrMissingProperty = errors.New("shift record carries no property id")
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// NormalizeShift converts one loosely-shaped wire record into the
// canonical Shift. Identity fields are required; time fields stay nil
// when absent and the analysis layer excludes shifts it cannot place.
func NormalizeShift(raw map[string]any) (*domain.Shift, error) {
	shift := &domain.Shift{
		Status: domain.ShiftStatusScheduled,
	}

	if id, ok := pickID(raw, "id", "shiftID", "shiftId", "shift_id"); ok {
		shift.ID = id
	}

	guardID, ok := pickRelation(raw, "guard", "guardID", "guardId", "guard_id")
	if !ok {
		return nil, ErrMissingGuard
	}
	shift.GuardID = guardID

	propertyID, ok := pickRelation(raw, "property", "propertyID", "propertyId", "property_id")
	if !ok {
		return nil, ErrMissingProperty
	}
	shift.PropertyID = propertyID

	if serviceID, ok := pickRelation(raw, "service", "serviceID", "serviceId", "service_id"); ok {
		shift.ServiceID = &serviceID
	}

	var err error
	if shift.PlannedStart, err = pickTime(raw, "plannedStart", "planned_start", "plannedStartTime", "planned_start_time"); err != nil {
		return nil, err
	}
	if shift.PlannedEnd, err = pickTime(raw, "plannedEnd", "planned_end", "plannedEndTime", "planned_end_time"); err != nil {
		return nil, err
	}
	if shift.ActualStart, err = pickTime(raw, "actualStart", "actual_start", "actualStartTime", "actual_start_time"); err != nil {
		return nil, err
	}
	if shift.ActualEnd, err = pickTime(raw, "actualEnd", "actual_end", "actualEndTime", "actual_end_time"); err != nil {
		return nil, err
	}

	if v, ok := pickString(raw, "status", "shift_status", "shiftStatus"); ok {
		shift.Status = normalizeStatus(v)
	}

	if v, ok := pickFloat(raw, "hoursWorked", "hours_worked", "hours"); ok {
		shift.HoursWorked = v
	}

	return shift, nil
}

func normalizeStatus(v string) domain.ShiftStatus {
	switch v {
	case "completed", "complete", "done":
		return domain.ShiftStatusCompleted
	case "voided", "void", "cancelled", "canceled":
		return domain.ShiftStatusVoided
	default:
		return domain.ShiftStatusScheduled
	}
}

// pickRelation accepts either a flat id alias or a nested detail object
// ({"guard": {"id": 7, ...}}).
func pickRelation(raw map[string]any, nested string, aliases ...string) (int64, bool) {
	if id, ok := pickID(raw, aliases...); ok {
		return id, true
	}
	detail, ok := raw[nested].(map[string]any)
	if !ok {
		return 0, false
	}
	return pickID(detail, "id", "ID")
}

func pickID(raw map[string]any, aliases ...string) (int64, bool) {
	for _, key := range aliases {
		v, exists := raw[key]
		if !exists || v == nil {
			continue
		}
		switch value := v.(type) {
		case float64:
			return int64(value), true
		case int64:
			return value, true
		case int:
			return int64(value), true
		case string:
			if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

func pickString(raw map[string]any, aliases ...string) (string, bool) {
	for _, key := range aliases {
		if v, ok := raw[key].(string); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func pickFloat(raw map[string]any, aliases ...string) (float64, bool) {
	for _, key := range aliases {
		switch value := raw[key].(type) {
		case float64:
			return value, true
		case string:
			if parsed, err := strconv.ParseFloat(value, 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

func pickTime(raw map[string]any, aliases ...string) (*time.Time, error) {
	for _, key := range aliases {
		v, ok := raw[key].(string)
		if !ok || v == "" {
			continue
		}
		for _, layout := range timestampLayouts {
			if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
				return &t, nil
			}
		}
		return nil, fmt.Errorf("unparseable timestamp %q in field %q", v, key)
	}
	return nil, nil
}
