package feedback

import "time"

// Entry is a visitor feedback submission.
type Entry struct {
	ID        int64
	Name      string
	Email     string
	Rating    int
	Message   string
	CreatedAt time.Time
}
