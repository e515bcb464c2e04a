package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskGrantSweep deactivates expired elevation grants.
	TaskGrantSweep = "grants:sweep"
	// TaskReservationReminder notifies guests about upcoming reservations.
	TaskReservationReminder = "reservations:remind"
)

// GrantSweepPayload configures a sweep run. Empty today; kept as a struct
// so the wire format can grow without a new task type.
type GrantSweepPayload struct{}

// ReservationReminderPayload configures a reminder run.
type ReservationReminderPayload struct {
	WindowHours int `json:"windowHours"`
}

// NewGrantSweepTask constructs an Asynq task.
func NewGrantSweepTask() (*asynq.Task, error) {
	data, err := json.Marshal(GrantSweepPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGrantSweep, data), nil
}

// NewReservationReminderTask constructs an Asynq task.
func NewReservationReminderTask(windowHours int) (*asynq.Task, error) {
	data, err := json.Marshal(ReservationReminderPayload{WindowHours: windowHours})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReservationReminder, data), nil
}
