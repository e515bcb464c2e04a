package menu

import "time"

// Item is a dish on the menu. Prices are stored in cents.
type Item struct {
	ID          int64
	Name        string
	Description string
	Category    string
	PriceCents  int64
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Section groups items of one category for display.
type Section struct {
	Category string
	Items    []Item
}
