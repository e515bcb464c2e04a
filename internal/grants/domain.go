// Package grants manages time-limited elevation credentials. An admin
// issues a code; a customer login supplying a usable code is elevated to
// the employer role.
package grants

import "time"

// Kind selects which grant pool a record belongs to.
type Kind string

const (
	// KindEmployer holds codes that elevate a login to employer.
	KindEmployer Kind = "employer"
	// KindAdmin holds codes reserved for admin onboarding. Parallel
	// structure, lower activity.
	KindAdmin Kind = "admin"
)

// Grant is a time-limited elevation credential.
type Grant struct {
	ID             string    `json:"id"`
	OwnerEmail     string    `json:"ownerEmail"`
	EmployerName   string    `json:"employerName"`
	RestaurantName string    `json:"restaurantName"`
	ValidUntil     time.Time `json:"validUntil"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Usable reports whether the grant can elevate a login at the given
// moment. Expiry is enforced here, at consumption; a grant is never
// expired in place except by explicit deactivation or the sweep job.
func (g Grant) Usable(now time.Time) bool {
	return g.IsActive && now.Before(g.ValidUntil)
}
