package services

import (
	"house-validator/models"
	"house-validator/utils"
)

// StaticValidator flags listings whose should-never-change fields changed
// inside the window.
type StaticValidator struct {
	fields []string
	logger *utils.Logger
}

// NewStaticValidator creates a StaticValidator comparing the given fields.
func NewStaticValidator(fields []string, logger *utils.Logger) *StaticValidator {
	return &StaticValidator{fields: fields, logger: logger}
}

// Validate groups snapshots by listing and by static tuple. A listing with more
// than one distinct tuple is invalid.
func (v *StaticValidator) Validate(snapshots []*models.Snapshot) *models.StaticReport {
	report := &models.StaticReport{}

	for _, g := range groupByListing(snapshots) {
		counts := countTuples(g.snapshots, v.fields)

		report.Listings++
		report.ExtraTuples += len(counts) - 1
		report.Ratio.Total++

		if len(counts) > 1 {
			report.Ratio.Invalid++
			report.Findings = append(report.Findings, models.StaticFinding{
				ListingID: g.id,
				Counts:    counts,
			})
		}
	}

	v.logger.Debug("[static] %d listings, %d with changed static fields",
		report.Ratio.Total, report.Ratio.Invalid)
	return report
}
