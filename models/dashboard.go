package models

// RetentionSlice is one wedge of the stay/outflow pie.
type RetentionSlice struct {
	Status string  `json:"status"`
	Value  float64 `json:"value"`
	Share  float64 `json:"share"`
}

// PricePoint is one weighted observation in a price-movement distribution.
type PricePoint struct {
	Price  float64 `json:"price"`
	Weight float64 `json:"weight"`
	Status string  `json:"status"`
}

// BenchmarkLine is a vertical reference line overlaid on price charts.
type BenchmarkLine struct {
	Model  string  `json:"model"`
	Price  float64 `json:"price"`
	Active bool    `json:"active"`
}

// PriceMovement bundles distribution points with their benchmark overlay.
type PriceMovement struct {
	Points     []PricePoint    `json:"points"`
	Benchmarks []BenchmarkLine `json:"benchmarks"`
}

// OverviewReport is the brand-wide inflow/outflow payload.
type OverviewReport struct {
	Mode          string           `json:"mode"`
	Disposals     int              `json:"disposals"`
	Retention     []RetentionSlice `json:"retention"`
	PriceMovement PriceMovement    `json:"price_movement"`
	InflowBrands  []GroupStat      `json:"inflow_brands"`
	OutflowBrands []GroupStat      `json:"outflow_brands"`
}

// ModelReport is the per-model deep-dive payload.
type ModelReport struct {
	Model         string           `json:"model"`
	Mode          string           `json:"mode"`
	Disposals     int              `json:"disposals"`
	Retention     []RetentionSlice `json:"retention"`
	PriceMovement PriceMovement    `json:"price_movement"`
	InflowModels  []GroupStat      `json:"inflow_models"`
	OutflowModels []GroupStat      `json:"outflow_models"`
}

// CompetitorList names the top outflow destinations for a focal model.
type CompetitorList struct {
	Model       string      `json:"model"`
	Competitors []GroupStat `json:"competitors"`
}

// SpecCard is the specification half of a comparison card. Found is false
// when no specification matched the model name.
type SpecCard struct {
	Found    bool     `json:"found"`
	ModelKey string   `json:"model_key,omitempty"`
	BodyType string   `json:"body_type,omitempty"`
	Seating  *int     `json:"seating,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// ModelCard summarizes one side of a model comparison. Spec is nil when no
// specification dataset was loaded at all.
type ModelCard struct {
	Name       string    `json:"name"`
	SampleSize int       `json:"sample_size"`
	AvgPrice   *float64  `json:"avg_price"`
	Segment    string    `json:"segment,omitempty"`
	Spec       *SpecCard `json:"spec,omitempty"`
	Prices     []float64 `json:"prices"`
}

// CompareReport pits a focal model against one outflow competitor.
type CompareReport struct {
	Mode           string    `json:"mode"`
	HasOutflowData bool      `json:"has_outflow_data"`
	Focal          ModelCard `json:"focal"`
	Competitor     ModelCard `json:"competitor"`
	OutflowVolume  float64   `json:"outflow_volume"`
	TotalOutflow   float64   `json:"total_outflow"`
	OutflowShare   float64   `json:"outflow_share"`
}

// MarketSummary holds the terminal report computed over the dataset.
type MarketSummary struct {
	Mode          string
	TotalRecords  int
	Disposals     int
	StayWeight    float64
	OutflowWeight float64
	OutflowShare  float64
	InflowBrands  []GroupStat
	OutflowBrands []GroupStat
	Benchmarks    []BenchmarkLine

	// Populated only when a focal model deep-dive was requested.
	FocalModel    string
	InflowModels  []GroupStat
	OutflowModels []GroupStat
}
