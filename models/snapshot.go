package models

import "time"

// Snapshot is one observation of a listing as recorded by the provider feed.
// Categorical holds static and stable columns, Numeric holds drift columns.
// A nil entry or a missing key means the provider sent no value.
type Snapshot struct {
	ListingID    string
	ObservedAt   time.Time
	RoughAddress string
	Categorical  map[string]*string
	Numeric      map[string]*float64
}

// Text returns the categorical value of field, or false when it is absent.
func (s *Snapshot) Text(field string) (string, bool) {
	v, ok := s.Categorical[field]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// Number returns the numeric value of field, or false when it is absent.
func (s *Snapshot) Number(field string) (float64, bool) {
	v, ok := s.Numeric[field]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// Window is an inclusive [From, To] time range.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}
