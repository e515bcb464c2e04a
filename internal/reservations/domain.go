package reservations

import "time"

// Status tracks a reservation through its short life.
type Status string

const (
	StatusRequested Status = "requested"
	StatusConfirmed Status = "confirmed"
	StatusSeated    Status = "seated"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates a stored status string.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusRequested, StatusConfirmed, StatusSeated, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// Reservation is a requested table booking.
type Reservation struct {
	ID            int64
	CustomerEmail string
	GuestName     string
	At            time.Time
	PartySize     int
	Notes         string
	Status        Status
	CreatedAt     time.Time
}
