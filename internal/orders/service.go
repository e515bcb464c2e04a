package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/savoria-erp/savoria/internal/menu"
)

// ErrEmptyOrder indicates a placement with no lines.
var ErrEmptyOrder = errors.New("orders: order has no items")

// ErrNotYours indicates a customer acting on another customer's order.
var ErrNotYours = errors.New("orders: order belongs to another customer")

// Store defines the persistence the service needs.
type Store interface {
	CreateOrder(ctx context.Context, order Order) (Order, error)
	GetOrder(ctx context.Context, id int64) (Order, error)
	ListByCustomer(ctx context.Context, email string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

// Service wraps order business rules. Totals are always recomputed from
// the menu catalogue, never trusted from the client.
type Service struct {
	store Store
	menu  *menu.Service
}

// NewService constructs a Service.
func NewService(store Store, menuSvc *menu.Service) *Service {
	return &Service{store: store, menu: menuSvc}
}

// PlacementInput is one requested line: a menu item and a quantity.
type PlacementInput struct {
	ItemID int64
	Qty    int
}

// Place creates an order for the customer from the requested lines.
func (s *Service) Place(ctx context.Context, customerEmail string, inputs []PlacementInput) (Order, error) {
	var lines []Line
	var total int64
	for _, in := range inputs {
		if in.Qty <= 0 {
			continue
		}
		item, err := s.menu.Get(ctx, in.ItemID)
		if err != nil {
			return Order{}, fmt.Errorf("orders: item %d: %w", in.ItemID, err)
		}
		if !item.Available {
			return Order{}, fmt.Errorf("orders: item %q is not available", item.Name)
		}
		lines = append(lines, Line{ItemID: item.ID, Name: item.Name, Qty: in.Qty, UnitCents: item.PriceCents})
		total += item.PriceCents * int64(in.Qty)
	}
	if len(lines) == 0 {
		return Order{}, ErrEmptyOrder
	}
	return s.store.CreateOrder(ctx, Order{
		CustomerEmail: customerEmail,
		Lines:         lines,
		TotalCents:    total,
		Status:        StatusPlaced,
	})
}

// History returns the orders visible to an actor: staff see everything,
// customers only their own.
func (s *Service) History(ctx context.Context, email string, staff bool) ([]Order, error) {
	if staff {
		return s.store.ListAll(ctx)
	}
	return s.store.ListByCustomer(ctx, email)
}

// Advance moves an order along the fulfilment flow, enforcing both the
// state machine and ownership for customer actors.
func (s *Service) Advance(ctx context.Context, id int64, to Status, actor Actor, actorEmail string) (Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if actor == ActorCustomer && order.CustomerEmail != actorEmail {
		return Order{}, ErrNotYours
	}
	if err := CanTransition(order.Status, to, actor); err != nil {
		return Order{}, err
	}
	if err := s.store.UpdateStatus(ctx, id, to); err != nil {
		return Order{}, err
	}
	order.Status = to
	return order, nil
}

// Counts returns order totals per status for the dashboards.
func (s *Service) Counts(ctx context.Context) (map[Status]int, error) {
	return s.store.CountByStatus(ctx)
}
