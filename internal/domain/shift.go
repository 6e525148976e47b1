package domain

import "time"

type ShiftStatus string

const (
	ShiftStatusScheduled ShiftStatus = "scheduled"
	ShiftStatusCompleted ShiftStatus = "completed"
	ShiftStatusVoided    ShiftStatus = "voided"
)

// Shift assigns a guard to a property, optionally under a service. The
// actual times, when present, take precedence over the planned ones for
// all display and analysis; a shift with neither a usable actual nor
// planned start carries no position on the timeline.
type Shift struct {
	ID           int64       `json:"id"`
	GuardID      int64       `json:"guardID"`
	PropertyID   int64       `json:"propertyID"`
	ServiceID    *int64      `json:"serviceID"`
	PlannedStart *time.Time  `json:"plannedStart"`
	PlannedEnd   *time.Time  `json:"plannedEnd"`
	ActualStart  *time.Time  `json:"actualStart"`
	ActualEnd    *time.Time  `json:"actualEnd"`
	Status       ShiftStatus `json:"status"`
	HoursWorked  float64     `json:"hoursWorked"`
	CreatedAt    time.Time   `json:"createdAt"`
	Version      int32       `json:"-"`
}
