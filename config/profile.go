package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile defines the analysis target: the focal manufacturer, its brand
// family, the model lines under study, brand-spelling corrections, and the
// placeholder "brands" that mark respondents who disposed of nothing.
type Profile struct {
	FocalBrand        string            `yaml:"focal_brand"`
	BrandFamily       []string          `yaml:"brand_family"`
	TargetModels      []string          `yaml:"target_models"`
	BrandAliases      map[string]string `yaml:"brand_aliases"`
	ExcludedDisposals []string          `yaml:"excluded_disposals"`
}

// DefaultProfile returns the built-in Honda analysis profile.
func DefaultProfile() *Profile {
	return &Profile{
		FocalBrand:   "Honda",
		BrandFamily:  []string{"Honda", "Acura"},
		TargetModels: []string{"Civic", "CR-V", "HR-V", "Accord", "Odyssey"},
		BrandAliases: map[string]string{
			"Mercedes": "Mercedes-Benz",
			"Vinfast":  "VinFast",
		},
		ExcludedDisposals: []string{
			"Did Not Dispose", "Did Not Own", "Did not own", "Did not dispose",
		},
	}
}

// LoadProfile reads a YAML profile from path. An empty or missing path yields
// the default profile; a file that exists but does not parse is an error.
func LoadProfile(path string) (*Profile, error) {
	if path == "" {
		return DefaultProfile(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultProfile(), nil
		}
		return nil, fmt.Errorf("profile: read %q: %w", path, err)
	}
	p := DefaultProfile()
	if err := yaml.Unmarshal(b, p); err != nil {
		return nil, fmt.Errorf("profile: parse %q: %w", path, err)
	}
	if p.FocalBrand == "" {
		return nil, fmt.Errorf("profile: %q has no focal_brand", path)
	}
	return p, nil
}

// Alias returns the canonical spelling for a brand, or the brand unchanged
// when no correction is registered. Matching is exact and case-sensitive on
// the source spelling.
func (p *Profile) Alias(brand string) string {
	if canonical, ok := p.BrandAliases[brand]; ok {
		return canonical
	}
	return brand
}

// InFamily reports whether a purchased brand belongs to the focal family.
func (p *Profile) InFamily(brand string) bool {
	for _, b := range p.BrandFamily {
		if b == brand {
			return true
		}
	}
	return false
}

// ExcludedDisposal reports whether a disposed "brand" is one of the
// placeholder values for respondents who did not actually dispose a vehicle.
func (p *Profile) ExcludedDisposal(brand string) bool {
	for _, b := range p.ExcludedDisposals {
		if b == brand {
			return true
		}
	}
	return false
}

// IsTargetModel reports whether name is one of the configured focal models.
func (p *Profile) IsTargetModel(name string) bool {
	for _, m := range p.TargetModels {
		if m == name {
			return true
		}
	}
	return false
}
