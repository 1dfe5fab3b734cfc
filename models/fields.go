package models

import (
	"errors"
	"fmt"
	"regexp"
)

var identRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ErrInvalidFieldGroups is returned by FieldGroups.Validate.
var ErrInvalidFieldGroups = errors.New("invalid field groups")

// FieldGroups names the snapshot columns each check looks at.
type FieldGroups struct {
	// Static fields must never change for a listing.
	Static []string `koanf:"static"`
	// Stable fields should change rarely. No check reads them yet.
	Stable []string `koanf:"stable"`
	// Drift fields are numeric and may only move gradually.
	Drift []string `koanf:"drift"`
}

// DefaultFieldGroups returns the column lists used for the provider's house feed.
func DefaultFieldGroups() FieldGroups {
	return FieldGroups{
		Static: []string{
			"top_region",
			"sub_region",
			"vendor",
			"building_type",
			"property_type",
		},
		Stable: []string{
			"n_living_room",
			"n_bed_room",
			"n_bath_room",
			"n_balcony",
			"deposit_type",
			"n_month_deposit",
			"monthly_management_fee",
			"has_parking",
			"is_require_parking_fee",
			"monthly_parking_fee",
			"rough_address",
			"has_tenant_restriction",
			"has_gender_restriction",
			"gender_restriction",
			"can_cook",
			"allow_pet",
			"has_perperty_restration",
			"contact",
		},
		Drift: []string{
			"deposit",
			"monthly_price",
			"floor",
			"total_floor",
		},
	}
}

// Validate checks that static and drift groups are usable as column lists.
func (g FieldGroups) Validate() error {
	if len(g.Static) == 0 {
		return fmt.Errorf("%w: static group is empty", ErrInvalidFieldGroups)
	}
	if len(g.Drift) == 0 {
		return fmt.Errorf("%w: drift group is empty", ErrInvalidFieldGroups)
	}

	// A column belongs to exactly one group: sources read drift columns as
	// numbers and everything else as text.
	owner := make(map[string]string)
	for _, group := range []struct {
		name   string
		fields []string
	}{{"static", g.Static}, {"stable", g.Stable}, {"drift", g.Drift}} {
		for _, f := range group.fields {
			if !identRegexp.MatchString(f) {
				return fmt.Errorf("%w: %s field %q is not a column name", ErrInvalidFieldGroups, group.name, f)
			}
			if prev, dup := owner[f]; dup {
				if prev == group.name {
					return fmt.Errorf("%w: %s field %q listed twice", ErrInvalidFieldGroups, group.name, f)
				}
				return fmt.Errorf("%w: field %q is in both %s and %s", ErrInvalidFieldGroups, f, prev, group.name)
			}
			owner[f] = group.name
		}
	}
	return nil
}
