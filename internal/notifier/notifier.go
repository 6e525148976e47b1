// Package notifier assembles the daily coverage digest: per property
// and service, the coverage gaps and double-booked guards for the day,
// mailed to every active admin and manager through the mail queue.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/aegisops/guardpost/backend/internal/config"
	"github.com/aegisops/guardpost/backend/internal/domain"
	"github.com/aegisops/guardpost/backend/internal/repository"
	"github.com/aegisops/guardpost/backend/internal/timeline"
)

type Notifier struct {
	cfg         *config.Config
	repository  *repository.Repository
	mailChannel *amqp.Channel
}

func NewNotifier(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel) *Notifier {
	return &Notifier{
		cfg:         cfg,
		repository:  repo,
		mailChannel: mailCh,
	}
}

// Run builds and mails the digest for today. A day with nothing to
// report sends no mail.
func (n *Notifier) Run(ctx context.Context) error {
	return n.RunForDay(ctx, timeline.DayKeyOf(time.Now()))
}

func (n *Notifier) RunForDay(ctx context.Context, day timeline.DayKey) error {
	entries, err := n.BuildEntries(day)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		slog.Info("coverage digest clean, nothing to send", "day", day)
		return nil
	}

	recipients := make([]*domain.User, 0)
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleManager} {
		users, err := n.repository.GetActiveUsersByRole(role)
		if err != nil {
			return err
		}
		recipients = append(recipients, users...)
	}

	for _, user := range recipients {
		body, err := json.Marshal(domain.MailMessage{
			Type: "coverage_digest",
			To:   user.Email,
			Data: domain.CoverageDigestMailData{
				FullName: user.FullName,
				Date:     string(day),
				Entries:  entries,
			},
		})
		if err != nil {
			return err
		}

		if err := n.mailChannel.PublishWithContext(
			ctx,
			"",
			"email_queue",
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        body,
			},
		); err != nil {
			return err
		}
	}

	slog.Info("coverage digest sent", "day", day, "entries", len(entries), "recipients", len(recipients))
	return nil
}

// BuildEntries computes one digest entry per service that has a gap or
// a conflict on the given day. Conflict detection runs over the whole
// shift collection so cross-property double-bookings surface on every
// affected property.
func (n *Notifier) BuildEntries(day timeline.DayKey) ([]domain.CoverageDigestEntry, error) {
	shifts, err := n.repository.GetAllShifts()
	if err != nil {
		return nil, err
	}
	properties, err := n.repository.GetAllProperties()
	if err != nil {
		return nil, err
	}
	guards, err := n.repository.GetAllGuards()
	if err != nil {
		return nil, err
	}

	guardNames := make(map[int64]string, len(guards))
	for _, g := range guards {
		guardNames[g.ID] = g.FullName
	}

	conflicts := timeline.DetectConflicts(shifts)
	minGap := time.Duration(n.cfg.Timeline.MinGapMinutes) * time.Minute

	entries := make([]domain.CoverageDigestEntry, 0)
	for _, property := range properties {
		services, err := n.repository.GetServicesByProperty(property.ID)
		if err != nil {
			return nil, err
		}

		propertyShifts := make([]*domain.Shift, 0)
		for _, s := range shifts {
			if s.PropertyID == property.ID {
				propertyShifts = append(propertyShifts, s)
			}
		}

		conflictLines := conflictLines(propertyShifts, conflicts, guardNames, day)

		for _, svc := range services {
			serviceShifts := make([]*domain.Shift, 0)
			for _, s := range propertyShifts {
				if s.ServiceID != nil && *s.ServiceID == svc.ID {
					serviceShifts = append(serviceShifts, s)
				}
			}

			report, err := timeline.DetectGaps(svc, serviceShifts, time.Local, minGap)
			if err != nil {
				return nil, err
			}

			spans := make([]string, 0)
			for _, gap := range report.ByDate[day] {
				spans = append(spans, fmt.Sprintf("%s - %s",
					gap.Start.Format("15:04"), gap.End.Format("15:04")))
			}

			if len(spans) == 0 && len(conflictLines) == 0 {
				continue
			}

			entries = append(entries, domain.CoverageDigestEntry{
				PropertyName: property.Name,
				ServiceName:  svc.Name,
				GapSpans:     spans,
				Conflicts:    conflictLines,
			})
		}
	}

	return entries, nil
}

func conflictLines(shifts []*domain.Shift, conflicts timeline.ConflictReport, guardNames map[int64]string, day timeline.DayKey) []string {
	if !conflicts.Dates[day] {
		return nil
	}

	seen := make(map[int64]bool)
	lines := make([]string, 0)
	for _, s := range shifts {
		if !conflicts.ShiftIDs[s.ID] || seen[s.GuardID] {
			continue
		}
		start, end, ok := timeline.EffectiveRange(s)
		if !ok {
			continue
		}
		touchesDay := false
		for _, k := range timeline.DaysTouched(start, end) {
			if k == day {
				touchesDay = true
				break
			}
		}
		if !touchesDay {
			continue
		}

		seen[s.GuardID] = true
		name := guardNames[s.GuardID]
		if name == "" {
			name = fmt.Sprintf("guard %d", s.GuardID)
		}
		lines = append(lines, fmt.Sprintf("%s is double-booked", name))
	}
	return lines
}
