package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/savoria-erp/savoria/internal/grants"
)

// GrantSweepJob deactivates elevation grants whose validity has lapsed.
// Elevation checks the clock at consumption time, so the sweep only keeps
// the management screens honest.
type GrantSweepJob struct {
	Service *grants.Service
	Logger  *slog.Logger
}

// NewGrantSweepJob initialises the sweep handler.
func NewGrantSweepJob(service *grants.Service, logger *slog.Logger) *GrantSweepJob {
	return &GrantSweepJob{Service: service, Logger: logger}
}

// Handle executes one sweep run.
func (j *GrantSweepJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("grant sweep: handler not configured")
	}
	var payload GrantSweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	start := time.Now()
	swept, err := j.Service.SweepExpired(ctx)
	if err != nil {
		j.logger().Error("sweep failed", slog.Any("error", err))
		return err
	}
	j.logger().Info("completed grant sweep",
		slog.Int("swept", swept),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *GrantSweepJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskGrantSweep))
	}
	return slog.Default().With(slog.String("job", TaskGrantSweep))
}
