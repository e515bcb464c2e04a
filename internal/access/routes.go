package access

import "strings"

// Well-known paths consulted by the guard and the login flow.
const (
	PathHome         = "/"
	PathLogin        = "/login"
	PathSignup       = "/signup"
	PathUnauthorized = "/unauthorized"
)

// routePermissions maps a route key (the first path segment) to the set of
// roles allowed to reach it. The table is configuration: immutable at
// runtime, consulted on every navigation. Keys absent from the table deny
// every role, including super_admin.
var routePermissions = map[string][]Role{
	PathHome:         {RoleGuest, RoleCustomer, RoleEmployee, RoleEmployer, RoleAdmin, RoleSuperAdmin},
	"/menu":          {RoleGuest, RoleCustomer, RoleEmployee, RoleEmployer, RoleAdmin, RoleSuperAdmin},
	"/contact":       {RoleGuest, RoleCustomer, RoleEmployee, RoleEmployer, RoleAdmin, RoleSuperAdmin},
	"/feedback":      {RoleGuest, RoleCustomer, RoleEmployee, RoleEmployer, RoleAdmin, RoleSuperAdmin},
	PathUnauthorized: {RoleGuest, RoleCustomer, RoleEmployee, RoleEmployer, RoleAdmin, RoleSuperAdmin},

	PathLogin:  {RoleGuest},
	PathSignup: {RoleGuest},

	"/reservations":     {RoleCustomer, RoleEmployee, RoleEmployer, RoleAdmin, RoleSuperAdmin},
	"/orders":           {RoleCustomer, RoleEmployee, RoleEmployer, RoleAdmin, RoleSuperAdmin},
	"/order-placement":  {RoleCustomer, RoleEmployee, RoleEmployer, RoleAdmin, RoleSuperAdmin},
	"/order-placed":     {RoleCustomer, RoleEmployee, RoleEmployer, RoleAdmin, RoleSuperAdmin},
	"/profile":          {RoleCustomer, RoleEmployee, RoleEmployer, RoleAdmin, RoleSuperAdmin},
	"/shipping-address": {RoleCustomer, RoleEmployee, RoleEmployer, RoleAdmin, RoleSuperAdmin},

	"/customers": {RoleEmployee, RoleEmployer, RoleAdmin, RoleSuperAdmin},
	"/inventory": {RoleEmployee, RoleEmployer, RoleAdmin, RoleSuperAdmin},

	"/employees":          {RoleEmployer, RoleAdmin, RoleSuperAdmin},
	"/employer-dashboard": {RoleEmployer, RoleAdmin, RoleSuperAdmin},
	"/reports":            {RoleEmployer, RoleAdmin, RoleSuperAdmin},
	"/settings":           {RoleEmployer, RoleAdmin, RoleSuperAdmin},

	"/admin": {RoleAdmin, RoleSuperAdmin},

	"/super-admin": {RoleSuperAdmin},
}

// RouteKey reduces a path to its first slash-delimited segment, so
// "/orders/123" resolves through the "/orders" entry. The bare root maps
// to itself. Matching on the first segment is deliberate: nested paths
// share their parent's entry instead of being silently denied.
func RouteKey(path string) string {
	if path == "" || path == PathHome {
		return PathHome
	}
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	if trimmed == "" {
		return PathHome
	}
	return "/" + trimmed
}

// lookupRoute returns the allowed roles for a path and whether the route
// key is present in the table at all.
func lookupRoute(path string) ([]Role, bool) {
	allowed, ok := routePermissions[RouteKey(path)]
	return allowed, ok
}
