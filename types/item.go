package types

import "time"

// Item represents one inventory line. Names are unique across the store.
type Item struct {
	// ID is the surrogate key assigned by the store.
	ID int `json:"-" db:"id"`

	// Name identifies the item. Non-empty, at most 100 characters.
	Name string `json:"name" db:"name"`

	// Quantity is the current stock count for the item.
	Quantity int `json:"quantity" db:"quantity"`

	// UpdatedAt is set by the store on creation and on every update.
	// Listing queries do not load it, so it is elided when zero.
	UpdatedAt time.Time `json:"updated_at,omitzero" db:"updated_at"`
}
