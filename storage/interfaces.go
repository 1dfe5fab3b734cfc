package storage

import (
	"context"

	"house-validator/models"
)

// SnapshotSource is the interface any snapshot backend must satisfy.
// Fetch returns every snapshot observed inside the window that carries a
// rough address. No ordering is promised.
type SnapshotSource interface {
	Fetch(ctx context.Context, window models.Window) ([]*models.Snapshot, error)
	Close() error
}

// Columns names the table and bookkeeping columns snapshots are read from.
type Columns struct {
	Table        string
	ListingID    string
	ObservedAt   string
	RoughAddress string
}

// DefaultColumns matches the provider's house time-series table.
func DefaultColumns() Columns {
	return Columns{
		Table:        "rental_housets",
		ListingID:    "vendor_house_id",
		ObservedAt:   "created",
		RoughAddress: "rough_address",
	}
}
