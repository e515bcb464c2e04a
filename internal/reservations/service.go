package reservations

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Store defines the persistence the service needs.
type Store interface {
	Create(ctx context.Context, res Reservation) (Reservation, error)
	ListByCustomer(ctx context.Context, email string) ([]Reservation, error)
	ListUpcoming(ctx context.Context) ([]Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	Count(ctx context.Context) (int, error)
}

const maxPartySize = 12

// Service wraps reservation business rules.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RequestInput carries the booking form fields.
type RequestInput struct {
	GuestName string
	At        time.Time
	PartySize int
	Notes     string
}

// Request books a table for the customer.
func (s *Service) Request(ctx context.Context, customerEmail string, input RequestInput) (Reservation, error) {
	input.GuestName = strings.TrimSpace(input.GuestName)
	if input.GuestName == "" {
		return Reservation{}, errors.New("reservations: guest name required")
	}
	if !input.At.After(s.now()) {
		return Reservation{}, errors.New("reservations: time must be in the future")
	}
	if input.PartySize < 1 || input.PartySize > maxPartySize {
		return Reservation{}, errors.New("reservations: party size out of range")
	}
	return s.store.Create(ctx, Reservation{
		CustomerEmail: customerEmail,
		GuestName:     input.GuestName,
		At:            input.At,
		PartySize:     input.PartySize,
		Notes:         strings.TrimSpace(input.Notes),
		Status:        StatusRequested,
	})
}

// Visible returns the reservations an actor may see: staff see the whole
// upcoming book, customers their own.
func (s *Service) Visible(ctx context.Context, email string, staff bool) ([]Reservation, error) {
	if staff {
		return s.store.ListUpcoming(ctx)
	}
	return s.store.ListByCustomer(ctx, email)
}

// SetStatus moves a reservation to a new status. Staff only; the handler
// enforces that.
func (s *Service) SetStatus(ctx context.Context, id int64, status Status) error {
	return s.store.UpdateStatus(ctx, id, status)
}

// Count returns the number of live reservations.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}
