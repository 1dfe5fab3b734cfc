package services

import (
	"errors"
	"fmt"
	"time"

	"house-validator/models"
)

// DateLayout is the accepted form of --from and --to.
const DateLayout = "20060102"

var (
	ErrMissingDate    = errors.New("date is required")
	ErrInvalidDate    = errors.New("invalid date string")
	ErrInvertedWindow = errors.New("from date is after to date")
)

// ParseDate reads a YYYYMMDD string as local midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrMissingDate
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, s)
	}
	return t, nil
}

// NewWindow builds the inclusive window covering every instant from the start
// of the from-date to the end of the to-date. A to-date includes its own
// snapshots; it is not read as "up to midnight at the start of to".
func NewWindow(from, to string, loc *time.Location) (models.Window, error) {
	start, err := ParseDate(from, loc)
	if err != nil {
		return models.Window{}, fmt.Errorf("from: %w", err)
	}
	day, err := ParseDate(to, loc)
	if err != nil {
		return models.Window{}, fmt.Errorf("to: %w", err)
	}
	if start.After(day) {
		return models.Window{}, fmt.Errorf("%w: %s > %s", ErrInvertedWindow, from, to)
	}

	end := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return models.Window{From: start, To: end}, nil
}
