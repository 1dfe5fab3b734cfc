package services

import (
	"context"
	"time"

	"house-validator/models"
)

var staticFields = []string{"top_region", "vendor", "building_type"}

// snap builds a snapshot; a nil map value means the field is absent.
func snap(id string, categorical map[string]*string, numeric map[string]*float64) *models.Snapshot {
	return &models.Snapshot{
		ListingID:    id,
		ObservedAt:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		RoughAddress: "somewhere",
		Categorical:  categorical,
		Numeric:      numeric,
	}
}

func str(s string) *string  { return &s }
func num(f float64) *float64 { return &f }

func tuple(region, vendor, building string) map[string]*string {
	return map[string]*string{"top_region": str(region), "vendor": str(vendor), "building_type": str(building)}
}

func price(values ...*float64) []*models.Snapshot {
	out := make([]*models.Snapshot, 0, len(values))
	for _, v := range values {
		out = append(out, snap("7", nil, map[string]*float64{"monthly_price": v}))
	}
	return out
}

type fakeSource struct {
	snapshots []*models.Snapshot
	err       error
	calls     int
	window    models.Window
}

func (f *fakeSource) Fetch(_ context.Context, w models.Window) ([]*models.Snapshot, error) {
	f.calls++
	f.window = w
	return f.snapshots, f.err
}

func (f *fakeSource) Close() error { return nil }
