package employees

import "time"

// Employee is a staff roster entry. The staff ID's first letter encodes
// the role granted at sign-in: A for admin, E for employee.
type Employee struct {
	ID       int64
	StaffID  string
	Name     string
	Email    string
	Position string
	Active   bool
	HiredAt  time.Time
}
