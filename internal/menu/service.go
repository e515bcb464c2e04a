package menu

import (
	"context"
	"errors"
	"strings"
)

// Catalog defines the persistence the service needs.
type Catalog interface {
	ListItems(ctx context.Context) ([]Item, error)
	ListAvailable(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id int64) (Item, error)
	CreateItem(ctx context.Context, item Item) (Item, error)
	SetAvailability(ctx context.Context, id int64, available bool) error
}

// Service wraps menu business rules.
type Service struct {
	catalog Catalog
}

// NewService constructs a Service.
func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// Sections returns the browsable menu grouped by category, offered items
// only.
func (s *Service) Sections(ctx context.Context) ([]Section, error) {
	items, err := s.catalog.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	var sections []Section
	index := map[string]int{}
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(sections)
			index[it.Category] = i
			sections = append(sections, Section{Category: it.Category})
		}
		sections[i].Items = append(sections[i].Items, it)
	}
	return sections, nil
}

// All returns every item, offered or not, for the management screen.
func (s *Service) All(ctx context.Context) ([]Item, error) {
	return s.catalog.ListItems(ctx)
}

// Get fetches one item.
func (s *Service) Get(ctx context.Context, id int64) (Item, error) {
	return s.catalog.GetItem(ctx, id)
}

// Add creates an item after basic validation.
func (s *Service) Add(ctx context.Context, item Item) (Item, error) {
	item.Name = strings.TrimSpace(item.Name)
	item.Category = strings.TrimSpace(item.Category)
	if item.Name == "" {
		return Item{}, errors.New("menu: item name required")
	}
	if item.Category == "" {
		item.Category = "Mains"
	}
	if item.PriceCents <= 0 {
		return Item{}, errors.New("menu: price must be positive")
	}
	item.Available = true
	return s.catalog.CreateItem(ctx, item)
}

// SetAvailability toggles an item's availability.
func (s *Service) SetAvailability(ctx context.Context, id int64, available bool) error {
	return s.catalog.SetAvailability(ctx, id, available)
}
