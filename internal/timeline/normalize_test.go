package timeline

import (
	"errors"
	"testing"

	"github.com/aegisops/guardpost/backend/internal/domain"
)

func TestNormalizeShiftFieldAliases(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{
			name: "camelCase flat ids",
			raw: map[string]any{
				"guardID":      float64(7),
				"propertyID":   float64(3),
				"serviceID":    float64(5),
				"plannedStart": "2025-08-10T08:00:00Z",
			},
		},
		{
			name: "snake_case flat ids",
			raw: map[string]any{
				"guard_id":      float64(7),
				"property_id":   float64(3),
				"service_id":    float64(5),
				"planned_start": "2025-08-10 08:00:00",
			},
		},
		{
			name: "nested detail objects",
			raw: map[string]any{
				"guard":    map[string]any{"id": float64(7), "fullName": "A. Guard"},
				"property": map[string]any{"id": float64(3)},
				"service":  map[string]any{"id": float64(5)},
			},
		},
		{
			name: "string-typed ids",
			raw: map[string]any{
				"guardId":    "7",
				"propertyId": "3",
				"serviceId":  "5",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shift, err := NormalizeShift(tt.raw)
			if err != nil {
				t.Fatalf("NormalizeShift: %v", err)
			}
			if shift.GuardID != 7 {
				t.Errorf("guardID = %d, want 7", shift.GuardID)
			}
			if shift.PropertyID != 3 {
				t.Errorf("propertyID = %d, want 3", shift.PropertyID)
			}
			if shift.ServiceID == nil || *shift.ServiceID != 5 {
				t.Errorf("serviceID = %v, want 5", shift.ServiceID)
			}
		})
	}
}

func TestNormalizeShiftRequiresIdentity(t *testing.T) {
	if _, err := NormalizeShift(map[string]any{"propertyID": float64(3)}); !errors.Is(err, ErrMissingGuard) {
		t.Errorf("missing guard = %v, want ErrMissingGuard", err)
	}
	if _, err := NormalizeShift(map[string]any{"guardID": float64(7)}); !errors.Is(err, ErrMissingProperty) {
		t.Errorf("missing property = %v, want ErrMissingProperty", err)
	}
}

func TestNormalizeShiftTimestampFormats(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{name: "rfc3339", value: "2025-08-10T08:00:00+02:00", ok: true},
		{name: "iso without zone", value: "2025-08-10T08:00:00", ok: true},
		{name: "space separated with seconds", value: "2025-08-10 08:00:00", ok: true},
		{name: "space separated without seconds", value: "2025-08-10 08:00", ok: true},
		{name: "garbage", value: "next tuesday", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]any{
				"guardID":      float64(7),
				"propertyID":   float64(3),
				"plannedStart": tt.value,
			}
			shift, err := NormalizeShift(raw)
			if tt.ok {
				if err != nil {
					t.Fatalf("NormalizeShift: %v", err)
				}
				if shift.PlannedStart == nil {
					t.Fatal("plannedStart dropped")
				}
			} else if err == nil {
				t.Fatal("expected an error for an unparseable timestamp")
			}
		})
	}
}

func TestNormalizeShiftAbsentTimesStayNil(t *testing.T) {
	shift, err := NormalizeShift(map[string]any{
		"guardID":    float64(7),
		"propertyID": float64(3),
	})
	if err != nil {
		t.Fatalf("NormalizeShift: %v", err)
	}
	if shift.PlannedStart != nil || shift.PlannedEnd != nil || shift.ActualStart != nil || shift.ActualEnd != nil {
		t.Error("absent time fields must stay nil, not zero")
	}
}

func TestNormalizeShiftStatusAliases(t *testing.T) {
	tests := []struct {
		value string
		want  domain.ShiftStatus
	}{
		{value: "completed", want: domain.ShiftStatusCompleted},
		{value: "complete", want: domain.ShiftStatusCompleted},
		{value: "done", want: domain.ShiftStatusCompleted},
		{value: "voided", want: domain.ShiftStatusVoided},
		{value: "void", want: domain.ShiftStatusVoided},
		{value: "cancelled", want: domain.ShiftStatusVoided},
		{value: "canceled", want: domain.ShiftStatusVoided},
		{value: "scheduled", want: domain.ShiftStatusScheduled},
		{value: "anything else", want: domain.ShiftStatusScheduled},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			shift, err := NormalizeShift(map[string]any{
				"guardID":    float64(7),
				"propertyID": float64(3),
				"status":     tt.value,
			})
			if err != nil {
				t.Fatalf("NormalizeShift: %v", err)
			}
			if shift.Status != tt.want {
				t.Errorf("status %q normalized to %s, want %s", tt.value, shift.Status, tt.want)
			}
		})
	}
}

func TestNormalizeShiftHoursWorked(t *testing.T) {
	shift, err := NormalizeShift(map[string]any{
		"guardID":      float64(7),
		"propertyID":   float64(3),
		"hours_worked": "7.5",
	})
	if err != nil {
		t.Fatalf("NormalizeShift: %v", err)
	}
	if shift.HoursWorked != 7.5 {
		t.Errorf("hoursWorked = %v, want 7.5", shift.HoursWorked)
	}
}
