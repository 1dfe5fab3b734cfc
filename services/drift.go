package services

import (
	"house-validator/models"
	"house-validator/utils"
)

// DriftValidator flags numeric fields that swung by more than 2x inside the window.
type DriftValidator struct {
	fields []string
	logger *utils.Logger
}

// NewDriftValidator creates a DriftValidator over the given numeric fields.
func NewDriftValidator(fields []string, logger *utils.Logger) *DriftValidator {
	return &DriftValidator{fields: fields, logger: logger}
}

// Validate reports every (listing, field) pair where max > 2*min. Absent
// values are skipped; a field never present yields no finding.
func (v *DriftValidator) Validate(snapshots []*models.Snapshot) *models.DriftReport {
	report := &models.DriftReport{}

	for _, g := range groupByListing(snapshots) {
		report.Ratio.Total++
		invalid := false

		for _, field := range v.fields {
			r := rangeOf(g.snapshots, field)
			if !r.seen || r.max <= 2*r.min {
				continue
			}
			invalid = true
			report.Findings = append(report.Findings, models.DriftFinding{
				ListingID: g.id,
				Field:     field,
				Min:       r.min,
				Max:       r.max,
			})
		}

		if invalid {
			report.Ratio.Invalid++
		}
	}

	v.logger.Debug("[drift] %d listings, %d with implausible swings",
		report.Ratio.Total, report.Ratio.Invalid)
	return report
}
