package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/savoria-erp/savoria/internal/inventory"
)

type memStore struct {
	nextID    int64
	items     map[int64]inventory.StockItem
	movements []inventory.Movement
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, items: make(map[int64]inventory.StockItem)}
}

func (m *memStore) ListItems(ctx context.Context) ([]inventory.StockItem, error) {
	var out []inventory.StockItem
	for _, it := range m.items {
		out = append(out, it)
	}
	return out, nil
}

func (m *memStore) GetItem(ctx context.Context, id int64) (inventory.StockItem, error) {
	it, ok := m.items[id]
	if !ok {
		return inventory.StockItem{}, fmt.Errorf("inventory: item %d not found", id)
	}
	return it, nil
}

func (m *memStore) CreateItem(ctx context.Context, item inventory.StockItem) (inventory.StockItem, error) {
	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = item
	return item, nil
}

func (m *memStore) ApplyAdjustment(ctx context.Context, itemID int64, newQuantity, delta float64, note string) error {
	it, ok := m.items[itemID]
	if !ok {
		return fmt.Errorf("inventory: item %d not found", itemID)
	}
	it.Quantity = newQuantity
	m.items[itemID] = it
	m.movements = append(m.movements, inventory.Movement{ItemID: itemID, Delta: delta, Note: note})
	return nil
}

func seedItem(t *testing.T, svc *inventory.Service, name string, qty, reorder float64) inventory.StockItem {
	t.Helper()
	item, err := svc.Add(context.Background(), inventory.StockItem{Name: name, Unit: "kg", Quantity: qty, ReorderLevel: reorder})
	if err != nil {
		t.Fatalf("add %s: %v", name, err)
	}
	return item
}

func TestAddValidation(t *testing.T) {
	svc := inventory.NewService(newMemStore())
	if _, err := svc.Add(context.Background(), inventory.StockItem{Name: "   "}); err == nil {
		t.Fatalf("expected a blank name to be rejected")
	}
	if _, err := svc.Add(context.Background(), inventory.StockItem{Name: "Flour", Quantity: -1}); err == nil {
		t.Fatalf("expected a negative opening quantity to be rejected")
	}
	item, err := svc.Add(context.Background(), inventory.StockItem{Name: "Flour", Quantity: 10})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.Unit != "pcs" {
		t.Fatalf("expected the unit to default to pcs, got %q", item.Unit)
	}
}

func TestAdjustNeverGoesNegative(t *testing.T) {
	store := newMemStore()
	svc := inventory.NewService(store)
	item := seedItem(t, svc, "Tomatoes", 5, 2)

	_, err := svc.Adjust(context.Background(), item.ID, -6, "prep")
	if !errors.Is(err, inventory.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	got, _ := store.GetItem(context.Background(), item.ID)
	if got.Quantity != 5 {
		t.Fatalf("expected the quantity untouched after a rejected adjustment, got %v", got.Quantity)
	}

	updated, err := svc.Adjust(context.Background(), item.ID, -5, "prep")
	if err != nil {
		t.Fatalf("adjust to zero: %v", err)
	}
	if updated.Quantity != 0 {
		t.Fatalf("expected zero, got %v", updated.Quantity)
	}
	if len(store.movements) != 1 || store.movements[0].Delta != -5 {
		t.Fatalf("expected one recorded movement, got %+v", store.movements)
	}
}

func TestLowStock(t *testing.T) {
	svc := inventory.NewService(newMemStore())
	seedItem(t, svc, "Tomatoes", 10, 2)
	low := seedItem(t, svc, "Basil", 1, 2)

	items, err := svc.LowStock(context.Background())
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(items) != 1 || items[0].ID != low.ID {
		t.Fatalf("expected only basil to be low, got %+v", items)
	}
}
