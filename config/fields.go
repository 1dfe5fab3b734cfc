package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"house-validator/models"
)

// LoadFieldGroups returns the default field groups, with any group named in
// the YAML file at path replacing its default. An empty path means defaults.
//
//	static: [top_region, vendor]
//	drift:  [monthly_price]
func LoadFieldGroups(path string) (models.FieldGroups, error) {
	groups := models.DefaultFieldGroups()
	if path == "" {
		return groups, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return models.FieldGroups{}, fmt.Errorf("config: load field groups %q: %w", path, err)
	}

	var override models.FieldGroups
	if err := k.UnmarshalWithConf("", &override, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return models.FieldGroups{}, fmt.Errorf("config: decode field groups %q: %w", path, err)
	}

	if k.Exists("static") {
		groups.Static = override.Static
	}
	if k.Exists("stable") {
		groups.Stable = override.Stable
	}
	if k.Exists("drift") {
		groups.Drift = override.Drift
	}

	if err := groups.Validate(); err != nil {
		return models.FieldGroups{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return groups, nil
}
