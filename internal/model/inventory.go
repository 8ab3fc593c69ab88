package model

import "time"

// DefaultReorderLevel applies when an inventory row has no reorder level.
const DefaultReorderLevel = 10

// InventoryItem is the stock of one part at one store.
type InventoryItem struct {
	ID           int64     `json:"inventory_id" db:"inventory_id"`
	StoreID      int64     `json:"store_id" db:"store_id"`
	PartID       int64     `json:"part_id" db:"part_id"`
	Quantity     int       `json:"quantity" db:"quantity"`
	ReorderLevel *int      `json:"reorder_level" db:"reorder_level"`
	LastUpdated  time.Time `json:"last_updated" db:"last_updated"`
	PartName     string    `json:"name,omitempty"`
	PartNumber   string    `json:"part_number,omitempty"`
}

// UpdateInventoryRequest is the body of PUT /api/inventory/{id}.
type UpdateInventoryRequest struct {
	Quantity int `json:"quantity"`
}
