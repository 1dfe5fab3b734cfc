package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"house-validator/models"
	"house-validator/utils"
)

// observedLayouts are tried in order when parsing the observed-at column.
// Layouts without an offset are read in the source's location.
var observedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// CSVSource reads snapshots from a CSV export of the house time-series table.
// The header row names the columns. Empty cells are treated as absent values.
type CSVSource struct {
	path   string
	cols   Columns
	groups models.FieldGroups
	loc    *time.Location
	logger *utils.Logger
}

// NewCSVSource returns a CSVSource for the file at path. The file is opened
// on every Fetch so a fresh export is picked up between runs.
func NewCSVSource(path string, cols Columns, groups models.FieldGroups, loc *time.Location, logger *utils.Logger) (*CSVSource, error) {
	if err := groups.Validate(); err != nil {
		return nil, fmt.Errorf("csv source: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &CSVSource{path: path, cols: cols, groups: groups, loc: loc, logger: logger}, nil
}

// Fetch reads the whole file and keeps rows inside the window that carry a
// rough address.
func (c *CSVSource) Fetch(ctx context.Context, window models.Window) ([]*models.Snapshot, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", c.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	required := []string{c.cols.ListingID, c.cols.ObservedAt, c.cols.RoughAddress}
	required = append(required, c.groups.Static...)
	required = append(required, c.groups.Drift...)
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("csv: column %q missing from header", name)
		}
	}

	drift := make(map[string]struct{}, len(c.groups.Drift))
	for _, name := range c.groups.Drift {
		drift[name] = struct{}{}
	}

	var (
		snapshots []*models.Snapshot
		line      = 1
		dropped   int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("csv: read line %d: %w", line, err)
		}

		cell := func(name string) string {
			i := index[name]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		rough := cell(c.cols.RoughAddress)
		if rough == "" {
			dropped++
			continue
		}

		observed, err := c.parseObserved(cell(c.cols.ObservedAt))
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		if !window.Contains(observed) {
			dropped++
			continue
		}

		snap := &models.Snapshot{
			ListingID:    cell(c.cols.ListingID),
			ObservedAt:   observed,
			RoughAddress: rough,
			Categorical:  make(map[string]*string),
			Numeric:      make(map[string]*float64, len(c.groups.Drift)),
		}
		for name := range index {
			if name == c.cols.ListingID || name == c.cols.ObservedAt {
				continue
			}
			raw := cell(name)
			if _, isDrift := drift[name]; isDrift {
				snap.Numeric[name] = c.parseNumber(raw, name, line)
				continue
			}
			if raw == "" {
				snap.Categorical[name] = nil
				continue
			}
			v := raw
			snap.Categorical[name] = &v
		}
		snapshots = append(snapshots, snap)
	}

	c.logger.Debug("[csv] read %d snapshots from %s (skipped %d)", len(snapshots), c.path, dropped)
	return snapshots, nil
}

func (c *CSVSource) parseObserved(raw string) (time.Time, error) {
	for _, layout := range observedLayouts {
		if t, err := time.ParseInLocation(layout, raw, c.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable %s %q", c.cols.ObservedAt, raw)
}

// parseNumber reads a drift cell. Thousands separators are dropped and an
// unparsable or non-finite cell counts as absent.
func (c *CSVSource) parseNumber(raw, field string, line int) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		c.logger.Warn("[csv] line %d: %s value %q is not a number, treating as absent", line, field, raw)
		return nil
	}
	return &v
}

// Close is a no-op; the file is only held open during Fetch.
func (c *CSVSource) Close() error {
	return nil
}
