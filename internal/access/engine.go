package access

import (
	"context"
	"log/slog"
	"strings"

	"github.com/savoria-erp/savoria/internal/shared"
)

// CredentialVerifier checks an email/password pair. The engine treats it
// as an external collaborator so a real identity service can be swapped in
// without touching the guard or the permission table.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) error
}

// AcceptAllVerifier accepts every credential pair. Field presence is
// enforced by form validation before the engine is called; beyond that the
// platform performs no server-side verification for customer sign-in.
type AcceptAllVerifier struct{}

// Verify always succeeds.
func (AcceptAllVerifier) Verify(ctx context.Context, email, password string) error {
	return nil
}

// GrantValidator reports whether an elevation code names an active,
// unexpired employer grant.
type GrantValidator interface {
	ValidateCode(ctx context.Context, code string) (bool, error)
}

// Engine decides who is signed in and what they may reach. Construct one
// at application root and hand it to the guard and the auth handlers.
type Engine struct {
	verifier CredentialVerifier
	grants   GrantValidator
	logger   *slog.Logger

	superEmail    string
	superPassword string
}

// EngineConfig carries the engine's collaborators and the super admin
// credential pair.
type EngineConfig struct {
	Verifier      CredentialVerifier
	Grants        GrantValidator
	Logger        *slog.Logger
	SuperEmail    string
	SuperPassword string
}

// NewEngine constructs an Engine.
func NewEngine(cfg EngineConfig) *Engine {
	verifier := cfg.Verifier
	if verifier == nil {
		verifier = AcceptAllVerifier{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		verifier:      verifier,
		grants:        cfg.Grants,
		logger:        logger,
		superEmail:    cfg.SuperEmail,
		superPassword: cfg.SuperPassword,
	}
}

// HasPermission reports whether a role may reach a path. Pure function of
// the route key and the role; safe to call on every request. Unknown route
// keys deny every role.
func (e *Engine) HasPermission(path string, role Role) bool {
	allowed, ok := lookupRoute(path)
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// RouteKnown reports whether a path resolves to any entry in the
// permission table. The guard uses it to tell "denied" apart from "no such
// route".
func (e *Engine) RouteKnown(path string) bool {
	_, ok := lookupRoute(path)
	return ok
}

// Login authenticates an email/password pair and resolves the resulting
// role, first match wins: the super admin pair, then a valid elevation
// code, then the customer default. The identity is persisted to the store
// and returned.
func (e *Engine) Login(ctx context.Context, store *Store, email, password, elevationCode string) (Identity, error) {
	if err := e.verifier.Verify(ctx, email, password); err != nil {
		return Guest(), err
	}

	id := Identity{Email: email, Role: RoleCustomer}
	switch {
	case e.isSuperAdmin(email, password):
		id.Role = RoleSuperAdmin
	case elevationCode != "":
		if e.elevationValid(ctx, elevationCode) {
			id.Role = RoleEmployer
		}
	}

	store.SetIdentity(id)
	return id, nil
}

// LoginStaff signs in with a staff ID. The ID's first letter selects the
// role: A for admin, E for employee. Any other prefix is rejected with
// ErrInvalidCredentialFormat and the session is left untouched.
func (e *Engine) LoginStaff(ctx context.Context, store *Store, staffID, password string) (Identity, error) {
	staffID = strings.TrimSpace(staffID)
	var role Role
	switch {
	case staffID == "":
		return Guest(), shared.ErrInvalidCredentialFormat
	case staffID[0] == 'A' || staffID[0] == 'a':
		role = RoleAdmin
	case staffID[0] == 'E' || staffID[0] == 'e':
		role = RoleEmployee
	default:
		return Guest(), shared.ErrInvalidCredentialFormat
	}

	if err := e.verifier.Verify(ctx, staffID, password); err != nil {
		return Guest(), err
	}

	id := Identity{Email: staffID, Role: role}
	store.SetIdentity(id)
	return id, nil
}

// Logout resets the store to the guest identity. It has no failure mode
// and is idempotent.
func (e *Engine) Logout(store *Store) {
	store.Clear()
}

func (e *Engine) isSuperAdmin(email, password string) bool {
	return e.superEmail != "" && email == e.superEmail && password == e.superPassword
}

func (e *Engine) elevationValid(ctx context.Context, code string) bool {
	if e.grants == nil {
		return false
	}
	ok, err := e.grants.ValidateCode(ctx, code)
	if err != nil {
		// Elevation is best effort: a failed lookup falls through to the
		// customer default rather than failing the login.
		e.logger.Warn("elevation code lookup", slog.Any("error", err))
		return false
	}
	return ok
}
