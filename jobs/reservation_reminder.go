package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/savoria-erp/savoria/internal/reservations"
)

// ReservationReminderJob finds confirmed reservations inside the reminder
// window and logs a reminder for each. Delivery over email is a follow-up
// once an SMTP relay is provisioned.
type ReservationReminderJob struct {
	Repo   *reservations.Repository
	Logger *slog.Logger
	clock  func() time.Time
}

// NewReservationReminderJob initialises the reminder handler.
func NewReservationReminderJob(repo *reservations.Repository, logger *slog.Logger) *ReservationReminderJob {
	return &ReservationReminderJob{
		Repo:   repo,
		Logger: logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes one reminder run.
func (j *ReservationReminderJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Repo == nil {
		return errors.New("reservation reminder: handler not configured")
	}
	var payload ReservationReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.WindowHours <= 0 {
		payload.WindowHours = 24
	}

	now := j.clock()
	cutoff := now.Add(time.Duration(payload.WindowHours) * time.Hour)

	upcoming, err := j.Repo.ListUpcoming(ctx)
	if err != nil {
		j.logger().Error("list upcoming", slog.Any("error", err))
		return err
	}

	reminded := 0
	for _, res := range upcoming {
		if res.Status != reservations.StatusConfirmed {
			continue
		}
		if res.At.Before(now) || res.At.After(cutoff) {
			continue
		}
		j.logger().Info("reservation reminder",
			slog.Int64("id", res.ID),
			slog.String("email", res.CustomerEmail),
			slog.Time("at", res.At),
			slog.Int("party_size", res.PartySize),
		)
		reminded++
	}

	j.logger().Info("completed reminder run",
		slog.Int("window_hours", payload.WindowHours),
		slog.Int("reminded", reminded),
	)
	return nil
}

func (j *ReservationReminderJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskReservationReminder))
	}
	return slog.Default().With(slog.String("job", TaskReservationReminder))
}
