package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/savoria-erp/savoria/internal/shared"
)

// Service wraps account registration and the optional verified sign-in
// path.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a customer account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, email, name, password string) (Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}
	return s.repo.CreateAccount(ctx, strings.ToLower(strings.TrimSpace(email)), strings.TrimSpace(name), string(hash))
}

// AccountVerifier checks credentials against stored accounts. It satisfies
// the access engine's CredentialVerifier so the default accept-all sign-in
// can be replaced with real verification without touching the guard or the
// permission table. Unknown emails are accepted: accounts only exist for
// customers who signed up here, and the sign-in flow predates the account
// table.
type AccountVerifier struct {
	repo Repository
}

// NewAccountVerifier constructs an AccountVerifier.
func NewAccountVerifier(repo Repository) *AccountVerifier {
	return &AccountVerifier{repo: repo}
}

// ErrBadPassword indicates a password mismatch for a known account.
var ErrBadPassword = errors.New("auth: password mismatch")

// Verify compares the password against the stored hash when an account
// exists for the email.
func (v *AccountVerifier) Verify(ctx context.Context, email, password string) error {
	acc, err := v.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return ErrBadPassword
	}
	return nil
}
