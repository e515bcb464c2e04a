package access

import "github.com/savoria-erp/savoria/internal/shared"

// Session value keys. The names mirror the persisted state layout consumed
// by earlier clients, so a stored session stays readable across versions.
const (
	KeyAuthenticated = "isAuthenticated"
	KeyEmail         = "userEmail"
	KeyRole          = "userRole"
	KeyRedirectPath  = "redirectPath"

	authenticatedMarker = "true"
)

// Identity is the current actor: an email once authenticated and always a
// role. The zero value is not meaningful; use Guest.
type Identity struct {
	Email string
	Role  Role
}

// Guest is the unauthenticated identity.
func Guest() Identity {
	return Identity{Role: RoleGuest}
}

// IsAuthenticated reports whether the identity carries a signed-in role.
// It is true exactly when the role is not guest.
func (id Identity) IsAuthenticated() bool {
	return id.Role != RoleGuest && id.Role.IsValid()
}

// IsEmployee reports whether the role is exactly employee.
func (id Identity) IsEmployee() bool { return id.Role == RoleEmployee }

// IsEmployer reports whether the role is exactly employer.
func (id Identity) IsEmployer() bool { return id.Role == RoleEmployer }

// IsAdmin reports whether the role is exactly admin.
func (id Identity) IsAdmin() bool { return id.Role == RoleAdmin }

// IsSuperAdmin reports whether the role is exactly super_admin.
func (id Identity) IsSuperAdmin() bool { return id.Role == RoleSuperAdmin }

// Store is the typed view over a session's key-value surface. It owns the
// three identity keys and the pending redirect target.
type Store struct {
	sess *shared.Session
}

// NewStore wraps a session. A nil session yields a store that always reads
// guest and ignores writes.
func NewStore(sess *shared.Session) *Store {
	return &Store{sess: sess}
}

// Identity reconstructs the identity from the session. The authenticated
// marker, email and a valid role must all be present; anything missing or
// corrupt degrades to guest. Never errors.
func (s *Store) Identity() Identity {
	if s.sess == nil {
		return Guest()
	}
	if s.sess.Get(KeyAuthenticated) != authenticatedMarker {
		return Guest()
	}
	email := s.sess.Get(KeyEmail)
	role := ParseRole(s.sess.Get(KeyRole))
	if email == "" || role == RoleGuest {
		return Guest()
	}
	return Identity{Email: email, Role: role}
}

// SetIdentity persists an identity under the fixed keys. Storing a guest
// identity is equivalent to Clear.
func (s *Store) SetIdentity(id Identity) {
	if s.sess == nil {
		return
	}
	if !id.IsAuthenticated() {
		s.Clear()
		return
	}
	s.sess.Set(KeyAuthenticated, authenticatedMarker)
	s.sess.Set(KeyEmail, id.Email)
	s.sess.Set(KeyRole, id.Role.String())
}

// Clear removes the identity keys, returning the session to guest.
func (s *Store) Clear() {
	if s.sess == nil {
		return
	}
	s.sess.Delete(KeyAuthenticated)
	s.sess.Delete(KeyEmail)
	s.sess.Delete(KeyRole)
}

// StashRedirect records the path an unauthenticated visitor attempted, to
// be replayed after login.
func (s *Store) StashRedirect(path string) {
	if s.sess == nil || path == "" {
		return
	}
	s.sess.Set(KeyRedirectPath, path)
}

// ConsumeRedirect returns the pending redirect target and clears it, so a
// stored target is replayed at most once.
func (s *Store) ConsumeRedirect() string {
	if s.sess == nil {
		return ""
	}
	path := s.sess.Get(KeyRedirectPath)
	if path != "" {
		s.sess.Delete(KeyRedirectPath)
	}
	return path
}
