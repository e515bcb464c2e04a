package customers

import "time"

// Customer is a directory entry maintained by staff.
type Customer struct {
	ID       int64
	Name     string
	Email    string
	Phone    string
	Notes    string
	JoinedAt time.Time
}
