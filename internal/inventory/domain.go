package inventory

import "time"

// StockItem is a kitchen supply tracked by quantity.
type StockItem struct {
	ID           int64
	Name         string
	Unit         string
	Quantity     float64
	ReorderLevel float64
	UpdatedAt    time.Time
}

// LowStock reports whether the item has fallen to its reorder level.
func (i StockItem) LowStock() bool {
	return i.Quantity <= i.ReorderLevel
}

// Movement records one quantity adjustment for the audit trail.
type Movement struct {
	ID        int64
	ItemID    int64
	Delta     float64
	Note      string
	CreatedAt time.Time
}
