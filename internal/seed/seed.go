// Package seed populates a development database with a demo dataset:
// guards, properties, services and a week of shifts. The shifts are
// arranged so the dashboard has something to show, including one
// double-booked guard and one under-covered service date.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/aegisops/guardpost/backend/internal/domain"
	"github.com/aegisops/guardpost/backend/internal/repository"
	"github.com/aegisops/guardpost/backend/internal/utils"
)

type demoService struct {
	name       string
	start, end string
}

var demoProperties = []struct {
	name     string
	address  string
	city     string
	services []demoService
}{
	{
		name:    "Riverside Business Park",
		address: "1200 Riverside Dr",
		city:    "Portland",
		services: []demoService{
			{name: "Night Watch", start: "22:00", end: "06:00"},
			{name: "Day Patrol", start: "08:00", end: "16:00"},
		},
	},
	{
		name:    "Meridian Tower",
		address: "455 5th Ave",
		city:    "Seattle",
		services: []demoService{
			{name: "Lobby Desk", start: "06:00", end: "18:00"},
		},
	},
	{
		name:    "Harborview Warehouse",
		address: "88 Pier Rd",
		city:    "Tacoma",
		services: []demoService{
			{name: "Overnight Guard", start: "20:00", end: "04:00"},
		},
	},
}

// SeedDemoData wires a full week of demo data starting today. It is
// additive, run it against an empty database.
func SeedDemoData(repo *repository.Repository) error {
	now := time.Now()
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	dates := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		dates = append(dates, weekStart.AddDate(0, 0, i).Format("2006-01-02"))
	}

	guards := make([]*domain.Guard, 0, 8)
	for i := 0; i < 8; i++ {
		fullName := utils.GenerateRandomFullName()
		guard := &domain.Guard{
			FullName: fullName,
			Email:    fmt.Sprintf("%s@guardpost.example.com", utils.GenerateUsernameFromFullName(fullName)),
			Phone:    utils.GenerateRandomPhone(),
		}
		if err := repo.CreateGuard(guard); err != nil {
			return fmt.Errorf("seed guard: %w", err)
		}
		guards = append(guards, guard)
	}

	ctx := context.Background()
	shiftCount := 0

	for _, dp := range demoProperties {
		property := &domain.Property{
			Name:    dp.name,
			Address: dp.address,
			City:    dp.city,
		}
		if err := repo.CreateProperty(property); err != nil {
			return fmt.Errorf("seed property: %w", err)
		}

		for _, ds := range dp.services {
			service := &domain.Service{
				PropertyID:     property.ID,
				Name:           ds.name,
				Description:    fmt.Sprintf("%s at %s", ds.name, dp.name),
				DailyStartTime: ds.start,
				DailyEndTime:   ds.end,
				ScheduleDates:  dates,
			}
			if err := repo.CreateService(service); err != nil {
				return fmt.Errorf("seed service: %w", err)
			}

			for i, date := range dates {
				// Leave the third date uncovered so gap
				// detection has something to flag.
				if i == 2 {
					continue
				}

				day, err := time.ParseInLocation("2006-01-02", date, time.Local)
				if err != nil {
					return err
				}

				start := atClock(day, ds.start)
				end := atClock(day, ds.end)
				if !end.After(start) {
					end = end.AddDate(0, 0, 1)
				}

				guard := guards[rand.Intn(len(guards))]
				shift := &domain.Shift{
					GuardID:      guard.ID,
					PropertyID:   property.ID,
					ServiceID:    &service.ID,
					PlannedStart: &start,
					PlannedEnd:   &end,
					Status:       domain.ShiftStatusScheduled,
				}
				if _, err := repo.CreateShift(ctx, shift); err != nil {
					return fmt.Errorf("seed shift: %w", err)
				}
				shiftCount++
			}
		}

		note := &domain.Note{
			PropertyID: property.ID,
			AuthorID:   1,
			Body:       fmt.Sprintf("Access instructions for %s are on file with dispatch.", dp.name),
		}
		if err := repo.CreateNote(note); err != nil {
			return fmt.Errorf("seed note: %w", err)
		}
	}

	// Double-book the first guard tomorrow across two properties so
	// conflict detection has something to flag.
	if err := doubleBook(ctx, repo, guards[0], weekStart.AddDate(0, 0, 1)); err != nil {
		return err
	}
	shiftCount += 2

	slog.Info("demo data seeded",
		"guards", len(guards),
		"properties", len(demoProperties),
		"shifts", shiftCount,
	)
	return nil
}

func doubleBook(ctx context.Context, repo *repository.Repository, guard *domain.Guard, day time.Time) error {
	properties, err := repo.GetAllProperties()
	if err != nil {
		return err
	}
	if len(properties) < 2 {
		return fmt.Errorf("need at least two properties to double-book")
	}

	firstStart := atClock(day, "09:00")
	firstEnd := atClock(day, "17:00")
	secondStart := atClock(day, "14:00")
	secondEnd := atClock(day, "22:00")

	for i, span := range [][2]time.Time{{firstStart, firstEnd}, {secondStart, secondEnd}} {
		start, end := span[0], span[1]
		shift := &domain.Shift{
			GuardID:      guard.ID,
			PropertyID:   properties[i].ID,
			PlannedStart: &start,
			PlannedEnd:   &end,
			Status:       domain.ShiftStatusScheduled,
		}
		if _, err := repo.CreateShift(ctx, shift); err != nil {
			return fmt.Errorf("seed double booking: %w", err)
		}
	}
	return nil
}

func atClock(day time.Time, clock string) time.Time {
	t, _ := time.ParseInLocation("15:04", clock, time.Local)
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
}
