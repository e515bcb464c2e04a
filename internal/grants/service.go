package grants

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"
)

const codeLength = 8

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ErrGrantNotFound indicates the referenced grant does not exist.
var ErrGrantNotFound = errors.New("grants: not found")

// IssueInput carries the fields an admin supplies when issuing a grant.
type IssueInput struct {
	OwnerEmail     string
	EmployerName   string
	RestaurantName string
	ValidUntil     time.Time
}

// Service wraps grant business rules.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Issue creates a grant with a fresh random code and appends it to the
// pool.
func (s *Service) Issue(ctx context.Context, kind Kind, input IssueInput) (Grant, error) {
	if input.ValidUntil.IsZero() {
		return Grant{}, errors.New("grants: validity end required")
	}
	if !input.ValidUntil.After(s.now()) {
		return Grant{}, errors.New("grants: validity end must be in the future")
	}

	pool, err := s.repo.List(ctx, kind)
	if err != nil {
		return Grant{}, err
	}

	code, err := generateCode()
	if err != nil {
		return Grant{}, err
	}

	grant := Grant{
		ID:             code,
		OwnerEmail:     strings.TrimSpace(input.OwnerEmail),
		EmployerName:   strings.TrimSpace(input.EmployerName),
		RestaurantName: strings.TrimSpace(input.RestaurantName),
		ValidUntil:     input.ValidUntil,
		IsActive:       true,
		CreatedAt:      s.now(),
	}
	pool = append(pool, grant)
	if err := s.repo.Save(ctx, kind, pool); err != nil {
		return Grant{}, err
	}
	return grant, nil
}

// List returns all grants of a kind, newest first.
func (s *Service) List(ctx context.Context, kind Kind) ([]Grant, error) {
	pool, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(pool)-1; i < j; i, j = i+1, j-1 {
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool, nil
}

// Deactivate flips a grant inactive. Deactivation is what revokes a code;
// expiry alone only blocks consumption.
func (s *Service) Deactivate(ctx context.Context, kind Kind, id string) error {
	pool, err := s.repo.List(ctx, kind)
	if err != nil {
		return err
	}
	for i := range pool {
		if pool[i].ID == id {
			pool[i].IsActive = false
			return s.repo.Save(ctx, kind, pool)
		}
	}
	return ErrGrantNotFound
}

// Delete removes a grant from the pool.
func (s *Service) Delete(ctx context.Context, kind Kind, id string) error {
	pool, err := s.repo.List(ctx, kind)
	if err != nil {
		return err
	}
	kept := pool[:0]
	for _, g := range pool {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(pool) {
		return ErrGrantNotFound
	}
	return s.repo.Save(ctx, kind, kept)
}

// ValidateCode reports whether a code names a usable employer grant. This
// is the consumption path for login elevation.
func (s *Service) ValidateCode(ctx context.Context, code string) (bool, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return false, nil
	}
	pool, err := s.repo.List(ctx, KindEmployer)
	if err != nil {
		return false, err
	}
	now := s.now()
	for _, g := range pool {
		if g.ID == code && g.Usable(now) {
			return true, nil
		}
	}
	return false, nil
}

// SweepExpired deactivates grants whose validity has lapsed, across both
// pools. Returns the number of grants flipped. Correctness of elevation
// never depends on the sweep; it only keeps the admin screens tidy.
func (s *Service) SweepExpired(ctx context.Context) (int, error) {
	swept := 0
	now := s.now()
	for _, kind := range []Kind{KindEmployer, KindAdmin} {
		pool, err := s.repo.List(ctx, kind)
		if err != nil {
			return swept, err
		}
		changed := false
		for i := range pool {
			if pool[i].IsActive && !now.Before(pool[i].ValidUntil) {
				pool[i].IsActive = false
				swept++
				changed = true
			}
		}
		if changed {
			if err := s.repo.Save(ctx, kind, pool); err != nil {
				return swept, err
			}
		}
	}
	return swept, nil
}

func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("grants: generate code: %w", err)
	}
	for i := range buf {
		buf[i] = codeCharset[int(buf[i])%len(codeCharset)]
	}
	return string(buf), nil
}
