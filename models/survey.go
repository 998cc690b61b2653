package models

// RawSurveyRow holds one survey transaction exactly as read from the CSV,
// before alias correction or numeric parsing.
type RawSurveyRow struct {
	DisposedBrand    string
	DisposedModel    string
	PurchasedBrand   string
	PurchasedModel   string
	RawPrice         string
	RawSourceWeight  string
	RawLoyaltyWeight string
	Segment          string
}

// SurveyRecord is the normalized, immutable record the aggregation layer
// works with. Price is nil when the raw value did not parse; weights default
// to zero and are never negative or NaN.
type SurveyRecord struct {
	DisposedBrand  string
	DisposedModel  string
	PurchasedBrand string
	PurchasedModel string
	Price          *float64
	SourceWeight   float64
	LoyaltyWeight  float64
	Segment        string

	// Canonical "Brand Model" grouping keys derived once at load.
	CleanModelPrev string
	CleanModelCurr string
}

// RawSpecRow is one trim/grade line from the vehicle specification table.
type RawSpecRow struct {
	Maker      string
	Model      string
	BodyType   string
	RawPrice   string
	RawSeating string
	SalesYear  int
	Segment    string
}

// VehicleSpec is one collapsed specification per canonical model key,
// latest sales year only. Price is the mean over grades sharing the key.
type VehicleSpec struct {
	ModelKey string
	BodyType string
	Seating  *int
	Price    *float64
	Segment  string
}

// GroupStat is one ranked aggregation group: summed weight plus the mean
// purchase price over the group's non-nil prices.
type GroupStat struct {
	Key      string   `json:"key"`
	Value    float64  `json:"value"`
	AvgPrice *float64 `json:"avg_price"`
}
