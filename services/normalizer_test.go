package services

import (
	"testing"

	"carswitch/config"
	"carswitch/models"
	"carswitch/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

func newTestNormalizer() *Normalizer {
	return NewNormalizer(config.DefaultProfile(), newTestLogger())
}

func TestCleanModelName(t *testing.T) {
	tests := []struct {
		brand string
		model string
		want  string
	}{
		{"Toyota", "Camry XLE", "Toyota Camry"},
		{"Honda", "Model Civic Sedan", "Honda Model Civic"},
		{"Tesla", "Tesla Model 3", "Tesla Model 3"},
		{"Honda", "Civic", "Honda Civic"},
		{"honda", "HONDA Civic Touring", "HONDA Civic"},
		{"  Ford ", " F-150 ", "Ford F-150"},
		{"BMW", "BMW", "BMW"},
	}

	for _, tt := range tests {
		got := CleanModelName(tt.brand, tt.model)
		if got != tt.want {
			t.Errorf("CleanModelName(%q, %q) = %q; want %q", tt.brand, tt.model, got, tt.want)
		}
	}
}

func TestCleanModelNameIdempotent(t *testing.T) {
	once := CleanModelName("Toyota", "Camry XLE")
	twice := CleanModelName("Toyota", once)
	if once != twice {
		t.Errorf("re-applying CleanModelName changed %q to %q", once, twice)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want *float64
	}{
		{"25000", f(25000)},
		{" 19999.5 ", f(19999.5)},
		{"", nil},
		{"N/A", nil},
		{"$25,000", nil},
		{"NaN", nil},
	}

	for _, tt := range tests {
		got := parsePrice(tt.raw)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("parsePrice(%q) = %v; want nil", tt.raw, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("parsePrice(%q) = %v; want %v", tt.raw, got, *tt.want)
		}
	}
}

func TestParseWeight(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"2.5", 2.5},
		{"0", 0},
		{"", 0},
		{"garbage", 0},
		{"-1.5", 0},
		{"NaN", 0},
		{"+Inf", 0},
	}

	for _, tt := range tests {
		if got := parseWeight(tt.raw); got != tt.want {
			t.Errorf("parseWeight(%q) = %v; want %v", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeAppliesBrandAliases(t *testing.T) {
	n := newTestNormalizer()
	raw := []*models.RawSurveyRow{
		{DisposedBrand: "Vinfast", DisposedModel: "VF 8", PurchasedBrand: "Mercedes", PurchasedModel: "GLC"},
		{DisposedBrand: "VinFast", DisposedModel: "VF 8", PurchasedBrand: "Mercedes-Benz", PurchasedModel: "GLC"},
	}

	recs := n.Normalize(raw)
	if recs[0].DisposedBrand != "VinFast" || recs[1].DisposedBrand != "VinFast" {
		t.Errorf("alias not applied to disposed brand: %q vs %q", recs[0].DisposedBrand, recs[1].DisposedBrand)
	}
	if recs[0].PurchasedBrand != "Mercedes-Benz" {
		t.Errorf("alias not applied to purchased brand: %q", recs[0].PurchasedBrand)
	}
	if recs[0].CleanModelPrev != recs[1].CleanModelPrev {
		t.Errorf("aliased records group differently: %q vs %q", recs[0].CleanModelPrev, recs[1].CleanModelPrev)
	}
}

func TestNormalizeWeightsNeverNegative(t *testing.T) {
	n := newTestNormalizer()
	raw := []*models.RawSurveyRow{
		{DisposedBrand: "Honda", DisposedModel: "Civic", PurchasedBrand: "Toyota", PurchasedModel: "Camry",
			RawPrice: "bad", RawSourceWeight: "-3", RawLoyaltyWeight: "x"},
	}

	rec := n.Normalize(raw)[0]
	if rec.SourceWeight < 0 || rec.LoyaltyWeight < 0 {
		t.Errorf("weights must be non-negative, got %v / %v", rec.SourceWeight, rec.LoyaltyWeight)
	}
	if rec.Price != nil {
		t.Errorf("unparsable price should be nil, got %v", *rec.Price)
	}
}

func TestBuildSpecsLatestYearOnly(t *testing.T) {
	n := newTestNormalizer()
	rows := []*models.RawSpecRow{
		{Maker: "TOYOTA", Model: "camry", BodyType: "Sedan", RawPrice: "28000", RawSeating: "5", SalesYear: 2024},
		{Maker: "TOYOTA", Model: "camry", BodyType: "Sedan", RawPrice: "32000", RawSeating: "5", SalesYear: 2024},
		{Maker: "TOYOTA", Model: "camry", BodyType: "Sedan", RawPrice: "20000", RawSeating: "5", SalesYear: 2020},
		{Maker: "HONDA", Model: "CR-V", BodyType: "SUV", RawPrice: "31000", RawSeating: "5", SalesYear: 2024},
	}

	specs := n.BuildSpecs(rows)
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(specs))
	}
	camry := specs[0]
	if camry.ModelKey != "Toyota Camry" {
		t.Errorf("ModelKey: got %q, want %q", camry.ModelKey, "Toyota Camry")
	}
	if camry.Price == nil || *camry.Price != 30000 {
		t.Errorf("mean price over latest-year grades: got %v, want 30000", camry.Price)
	}
	if camry.Seating == nil || *camry.Seating != 5 {
		t.Errorf("seating: got %v, want 5", camry.Seating)
	}
	if specs[1].ModelKey != "Honda Cr-v" {
		t.Errorf("second key: got %q", specs[1].ModelKey)
	}
}

func TestBuildSpecsEmpty(t *testing.T) {
	n := newTestNormalizer()
	if specs := n.BuildSpecs(nil); len(specs) != 0 {
		t.Errorf("expected no specs for empty input, got %d", len(specs))
	}
}

func f(v float64) *float64 { return &v }
