package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	if p.FocalBrand != "Honda" {
		t.Errorf("focal brand = %q", p.FocalBrand)
	}
	if len(p.BrandFamily) != 2 || !p.InFamily("Acura") {
		t.Errorf("brand family = %v", p.BrandFamily)
	}
	if len(p.TargetModels) != 5 || !p.IsTargetModel("CR-V") {
		t.Errorf("target models = %v", p.TargetModels)
	}
	if p.Alias("Vinfast") != "VinFast" || p.Alias("Mercedes") != "Mercedes-Benz" {
		t.Errorf("aliases = %v", p.BrandAliases)
	}
	if p.Alias("Toyota") != "Toyota" {
		t.Error("unknown brands must pass through unchanged")
	}
	if !p.ExcludedDisposal("Did Not Dispose") || !p.ExcludedDisposal("Did not own") {
		t.Errorf("excluded disposals = %v", p.ExcludedDisposals)
	}
	if p.ExcludedDisposal("Honda") {
		t.Error("real brands must not be excluded")
	}
}

func TestLoadProfileMissingFileFallsBack(t *testing.T) {
	p, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing profile must fall back to defaults: %v", err)
	}
	if p.FocalBrand != "Honda" {
		t.Errorf("focal brand = %q", p.FocalBrand)
	}
}

func TestLoadProfileFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `focal_brand: Toyota
brand_family: [Toyota, Lexus]
target_models: [Camry, RAV4]
brand_aliases:
  Benz: Mercedes-Benz
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p.FocalBrand != "Toyota" || !p.InFamily("Lexus") || p.InFamily("Honda") {
		t.Errorf("profile = %+v", p)
	}
	if !p.IsTargetModel("RAV4") {
		t.Errorf("target models = %v", p.TargetModels)
	}
	if p.Alias("Benz") != "Mercedes-Benz" {
		t.Errorf("aliases = %v", p.BrandAliases)
	}
}

func TestLoadProfileMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("focal_brand: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProfile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
