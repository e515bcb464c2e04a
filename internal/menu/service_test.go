package menu_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/savoria-erp/savoria/internal/menu"
)

type memCatalog struct {
	nextID int64
	items  []menu.Item
}

func (m *memCatalog) ListItems(ctx context.Context) ([]menu.Item, error) {
	return m.items, nil
}

func (m *memCatalog) ListAvailable(ctx context.Context) ([]menu.Item, error) {
	var out []menu.Item
	for _, it := range m.items {
		if it.Available {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memCatalog) GetItem(ctx context.Context, id int64) (menu.Item, error) {
	for _, it := range m.items {
		if it.ID == id {
			return it, nil
		}
	}
	return menu.Item{}, fmt.Errorf("menu: item %d not found", id)
}

func (m *memCatalog) CreateItem(ctx context.Context, item menu.Item) (menu.Item, error) {
	m.nextID++
	item.ID = m.nextID
	m.items = append(m.items, item)
	return item, nil
}

func (m *memCatalog) SetAvailability(ctx context.Context, id int64, available bool) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Available = available
		}
	}
	return nil
}

func TestSectionsGroupByCategoryOfferedOnly(t *testing.T) {
	svc := menu.NewService(&memCatalog{items: []menu.Item{
		{ID: 1, Name: "Bruschetta", Category: "Starters", Available: true},
		{ID: 2, Name: "Margherita", Category: "Mains", Available: true},
		{ID: 3, Name: "Carbonara", Category: "Mains", Available: true},
		{ID: 4, Name: "Oysters", Category: "Starters", Available: false},
	}})

	sections, err := svc.Sections(context.Background())
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected two sections, got %d", len(sections))
	}
	if sections[0].Category != "Starters" || len(sections[0].Items) != 1 {
		t.Fatalf("unexpected first section: %+v", sections[0])
	}
	if sections[1].Category != "Mains" || len(sections[1].Items) != 2 {
		t.Fatalf("unexpected second section: %+v", sections[1])
	}
}

func TestAddValidatesAndDefaults(t *testing.T) {
	svc := menu.NewService(&memCatalog{})

	if _, err := svc.Add(context.Background(), menu.Item{Name: "  ", PriceCents: 100}); err == nil {
		t.Fatalf("expected a blank name to be rejected")
	}
	if _, err := svc.Add(context.Background(), menu.Item{Name: "Tiramisu", PriceCents: 0}); err == nil {
		t.Fatalf("expected a zero price to be rejected")
	}

	item, err := svc.Add(context.Background(), menu.Item{Name: " Tiramisu ", PriceCents: 850})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.Name != "Tiramisu" || item.Category != "Mains" || !item.Available {
		t.Fatalf("unexpected defaults: %+v", item)
	}
}
