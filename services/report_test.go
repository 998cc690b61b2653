package services

import (
	"testing"

	"carswitch/config"
	"carswitch/models"
)

func TestReportGenerate(t *testing.T) {
	profile := config.DefaultProfile()
	records := []*models.SurveyRecord{
		switchRecord("Honda", "Civic", "Toyota", "Camry", f(25000), 0.5, 2.0),
		switchRecord("Honda", "Civic", "Honda", "Accord", f(28000), 0.5, 1.0),
		switchRecord("Toyota", "Corolla", "Honda", "Civic Sedan", f(24000), 1.2, 0.3),
	}
	ds := &Dataset{
		Records:    records,
		Benchmarks: ComputeBenchmarks(records, profile.FocalBrand, profile.TargetModels),
		Profile:    profile,
	}

	svc := NewReportService(ds, newTestLogger())
	summary := svc.Generate(ds, ModeMarket, "Civic", 10)

	if summary.TotalRecords != 3 || summary.Disposals != 2 {
		t.Errorf("totals: %d records, %d disposals", summary.TotalRecords, summary.Disposals)
	}
	if summary.StayWeight != 1.0 || summary.OutflowWeight != 2.0 {
		t.Errorf("stay=%v outflow=%v", summary.StayWeight, summary.OutflowWeight)
	}
	want := 2.0 / 3.0 * 100
	if diff := summary.OutflowShare - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("outflow share = %v; want %v", summary.OutflowShare, want)
	}
	if len(summary.OutflowModels) != 1 || summary.OutflowModels[0].Key != "Toyota Camry" {
		t.Errorf("outflow models = %+v", summary.OutflowModels)
	}
	if len(summary.InflowBrands) != 1 || summary.InflowBrands[0].Key != "Toyota" {
		t.Errorf("inflow brands = %+v", summary.InflowBrands)
	}

	var activeSeen bool
	for _, b := range summary.Benchmarks {
		if b.Model == "Civic" && b.Active {
			activeSeen = true
		}
	}
	if !activeSeen {
		t.Error("Civic benchmark should be marked active")
	}
}

func TestReportGenerateRawMode(t *testing.T) {
	profile := config.DefaultProfile()
	records := []*models.SurveyRecord{
		switchRecord("Honda", "Civic", "Toyota", "Camry", nil, 0.5, 2.0),
		switchRecord("Honda", "Accord", "Mazda", "CX-5", nil, 0.5, 1.5),
	}
	ds := &Dataset{
		Records:    records,
		Benchmarks: ComputeBenchmarks(records, profile.FocalBrand, profile.TargetModels),
		Profile:    profile,
	}

	svc := NewReportService(ds, newTestLogger())
	summary := svc.Generate(ds, ModeRaw, "", 10)

	if summary.StayWeight+summary.OutflowWeight != 2 {
		t.Errorf("raw weights must count rows: stay=%v outflow=%v",
			summary.StayWeight, summary.OutflowWeight)
	}
}
