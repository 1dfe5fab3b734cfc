package models

import "fmt"

// Ratio is an invalid/total summary. A zero Total means the window had no data.
type Ratio struct {
	Invalid int
	Total   int
}

// Fraction returns Invalid/Total, or false when there is nothing to divide by.
func (r Ratio) Fraction() (float64, bool) {
	if r.Total == 0 {
		return 0, false
	}
	return float64(r.Invalid) / float64(r.Total), true
}

func (r Ratio) String() string {
	if r.Total == 0 {
		return fmt.Sprintf("%d/%d (no data)", r.Invalid, r.Total)
	}
	return fmt.Sprintf("%d/%d", r.Invalid, r.Total)
}

// StaticFinding is a listing whose static fields took more than one shape.
// Counts holds how many snapshots shared each distinct tuple.
type StaticFinding struct {
	ListingID string
	Counts    []int
}

// StaticReport is the outcome of one static-field pass.
type StaticReport struct {
	Findings []StaticFinding
	Ratio    Ratio

	// Listings counts each listing id once, the first time it is seen.
	// ExtraTuples counts every further distinct tuple of an already seen id.
	Listings    int
	ExtraTuples int
}

// DriftFinding is a (listing, field) pair whose values swung more than 2x.
type DriftFinding struct {
	ListingID string
	Field     string
	Min       float64
	Max       float64
}

// DriftReport is the outcome of one bounded-drift pass.
type DriftReport struct {
	Findings []DriftFinding
	Ratio    Ratio
}
