package services

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"house-validator/models"
)

// listingGroup holds every snapshot of one listing in the window, in input order.
type listingGroup struct {
	id        string
	snapshots []*models.Snapshot
}

// groupByListing buckets snapshots by listing id. Groups come back sorted by id.
func groupByListing(snapshots []*models.Snapshot) []*listingGroup {
	byID := make(map[string]*listingGroup)
	groups := make([]*listingGroup, 0)

	for _, s := range snapshots {
		g, ok := byID[s.ListingID]
		if !ok {
			g = &listingGroup{id: s.ListingID}
			byID[s.ListingID] = g
			groups = append(groups, g)
		}
		g.snapshots = append(g.snapshots, s)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return lessListingID(groups[i].id, groups[j].id)
	})
	return groups
}

// lessListingID orders numeric ids numerically and everything else lexically.
func lessListingID(a, b string) bool {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}

// tupleKey encodes the values of fields so that two snapshots share a key iff
// every field matches. Absent values match each other but never an empty string.
func tupleKey(s *models.Snapshot, fields []string) string {
	var b strings.Builder
	for _, f := range fields {
		v, ok := s.Text(f)
		if !ok {
			b.WriteByte(0)
			continue
		}
		b.WriteByte(1)
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	return b.String()
}

// countTuples returns how many snapshots share each distinct tuple, ordered by
// the first appearance of the tuple.
func countTuples(snapshots []*models.Snapshot, fields []string) []int {
	index := make(map[string]int)
	var counts []int
	for _, s := range snapshots {
		key := tupleKey(s, fields)
		i, ok := index[key]
		if !ok {
			i = len(counts)
			index[key] = i
			counts = append(counts, 0)
		}
		counts[i]++
	}
	return counts
}

// numericRange is the min/max of a field over the snapshots where it is
// present. NaN and infinities are treated as absent.
type numericRange struct {
	min, max float64
	seen     bool
}

func rangeOf(snapshots []*models.Snapshot, field string) numericRange {
	var r numericRange
	for _, s := range snapshots {
		v, ok := s.Number(field)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !r.seen {
			r = numericRange{min: v, max: v, seen: true}
			continue
		}
		if v < r.min {
			r.min = v
		}
		if v > r.max {
			r.max = v
		}
	}
	return r
}
