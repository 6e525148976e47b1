package domain

import "time"

// Service is a recurring coverage requirement for a property. The daily
// window is a pair of local times of day ("HH:MM"); when DailyEndTime is
// less than or equal to DailyStartTime the window wraps past midnight.
// ScheduleDates is an explicit set of "YYYY-MM-DD" dates, not a
// recurrence rule. Gap detection is disabled while either daily time is
// empty or ScheduleDates is empty.
type Service struct {
	ID             int64     `json:"id"`
	PropertyID     int64     `json:"propertyID"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	DailyStartTime string    `json:"dailyStartTime"`
	DailyEndTime   string    `json:"dailyEndTime"`
	ScheduleDates  []string  `json:"scheduleDates"`
	CreatedAt      time.Time `json:"createdAt"`
	Version        int32     `json:"-"`
}
