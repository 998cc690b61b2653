package services

import "carswitch/models"

// ComputeBenchmarks returns the reference average purchase price for each
// target model line: the mean of non-nil prices over records where the
// purchased brand is the focal brand and the purchased model contains the
// target name case-insensitively. Targets with no priced purchases map to
// nil. Computed once at load and reused for every chart overlay.
func ComputeBenchmarks(records []*models.SurveyRecord, focalBrand string, targets []string) map[string]*float64 {
	benchmarks := make(map[string]*float64, len(targets))
	for _, target := range targets {
		var sum float64
		var count int
		for _, r := range records {
			if r.PurchasedBrand != focalBrand || r.Price == nil {
				continue
			}
			if !ContainsFold(r.PurchasedModel, target) {
				continue
			}
			sum += *r.Price
			count++
		}
		if count > 0 {
			mean := sum / float64(count)
			benchmarks[target] = &mean
		} else {
			benchmarks[target] = nil
		}
	}
	return benchmarks
}
