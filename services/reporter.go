package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"house-validator/models"
)

// Reporter prints findings in the line format downstream log parsers expect.
type Reporter struct {
	out io.Writer
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

func (r *Reporter) PrintStatic(rep *models.StaticReport) {
	for _, f := range rep.Findings {
		fmt.Fprintf(r.out, "[STATIC] House %s changed %d (%s) times!!\n",
			f.ListingID, len(f.Counts), formatCounts(f.Counts))
	}
	fmt.Fprintf(r.out, "[STATIC] Invalid house: %s\n", rep.Ratio)
}

func (r *Reporter) PrintDrift(rep *models.DriftReport) {
	for _, f := range rep.Findings {
		fmt.Fprintf(r.out, "[SMALL] House %s field %s change too much, from %s to %s\n",
			f.ListingID, f.Field, formatNumber(f.Min), formatNumber(f.Max))
	}
	fmt.Fprintf(r.out, "[SMALL] Invalid house: %s\n", rep.Ratio)
}

// formatCounts renders counts as a bracketed list, e.g. [2, 1].
func formatCounts(counts []int) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = strconv.Itoa(c)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
