package orders

import "time"

// Line is one menu item within an order.
type Line struct {
	ItemID    int64  `json:"item_id"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	UnitCents int64  `json:"unit_cents"`
}

// Order is a placed customer order.
type Order struct {
	ID            int64
	CustomerEmail string
	Lines         []Line
	TotalCents    int64
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
