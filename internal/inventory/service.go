package inventory

import (
	"context"
	"errors"
	"strings"
)

// ErrInsufficientStock indicates an adjustment that would take a quantity
// below zero.
var ErrInsufficientStock = errors.New("inventory: insufficient stock")

// Store defines the persistence the service needs.
type Store interface {
	ListItems(ctx context.Context) ([]StockItem, error)
	GetItem(ctx context.Context, id int64) (StockItem, error)
	CreateItem(ctx context.Context, item StockItem) (StockItem, error)
	ApplyAdjustment(ctx context.Context, itemID int64, newQuantity, delta float64, note string) error
}

// Service wraps stock business rules.
type Service struct {
	store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns all stock items.
func (s *Service) List(ctx context.Context) ([]StockItem, error) {
	return s.store.ListItems(ctx)
}

// Add registers a new stock item.
func (s *Service) Add(ctx context.Context, item StockItem) (StockItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return StockItem{}, errors.New("inventory: item name required")
	}
	if item.Quantity < 0 {
		return StockItem{}, errors.New("inventory: opening quantity cannot be negative")
	}
	if item.Unit == "" {
		item.Unit = "pcs"
	}
	return s.store.CreateItem(ctx, item)
}

// Adjust applies a signed quantity delta. Stock never goes negative.
func (s *Service) Adjust(ctx context.Context, itemID int64, delta float64, note string) (StockItem, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return StockItem{}, err
	}
	newQuantity := item.Quantity + delta
	if newQuantity < 0 {
		return StockItem{}, ErrInsufficientStock
	}
	if err := s.store.ApplyAdjustment(ctx, itemID, newQuantity, delta, strings.TrimSpace(note)); err != nil {
		return StockItem{}, err
	}
	item.Quantity = newQuantity
	return item, nil
}

// LowStock returns items at or below their reorder level.
func (s *Service) LowStock(ctx context.Context) ([]StockItem, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	var low []StockItem
	for _, it := range items {
		if it.LowStock() {
			low = append(low, it)
		}
	}
	return low, nil
}
