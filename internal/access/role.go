// Package access is the single source of truth for who is signed in and
// which routes they may reach. It owns the role vocabulary, the static
// route permission table, the login and logout transitions, and the
// request guard that enforces them.
package access

// Role is an enumerated privilege level attached to a session.
type Role string

// The closed role set, in ascending order of privilege. The permission
// table is an explicit allow-list per route, not derived from this order.
const (
	RoleGuest      Role = "guest"
	RoleCustomer   Role = "customer"
	RoleEmployee   Role = "employee"
	RoleEmployer   Role = "employer"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole maps a stored string onto the role set. Anything outside the
// closed set degrades to guest so a corrupt store never yields privilege.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleCustomer, RoleEmployee, RoleEmployer, RoleAdmin, RoleSuperAdmin:
		return Role(s)
	default:
		return RoleGuest
	}
}

// IsValid reports whether the role belongs to the closed set.
func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleCustomer, RoleEmployee, RoleEmployer, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// String returns the stored representation.
func (r Role) String() string {
	return string(r)
}
