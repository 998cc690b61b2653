package services

import (
	"sort"
	"strings"

	"carswitch/config"
	"carswitch/models"
)

// WeightMode selects which column feeds weighted aggregation. It only picks
// the weight accessor; the aggregation path itself is identical either way.
type WeightMode int

const (
	// ModeMarket weights each record by its survey-representativeness field.
	ModeMarket WeightMode = iota
	// ModeRaw gives every record a uniform weight of 1, so sums are counts.
	ModeRaw
)

// ParseWeightMode maps a query/flag value to a WeightMode, defaulting to
// market weighting.
func ParseWeightMode(s string) WeightMode {
	if strings.EqualFold(strings.TrimSpace(s), "raw") {
		return ModeRaw
	}
	return ModeMarket
}

func (m WeightMode) String() string {
	if m == ModeRaw {
		return "raw"
	}
	return "market"
}

// Purchase status labels. Every record classifies into exactly one.
const (
	StatusStay    = "Stay"
	StatusOutflow = "Outflow"
)

// Aggregator groups normalized survey records into ranked weighted stats
// relative to the profile's focal manufacturer.
type Aggregator struct {
	profile *config.Profile
}

// NewAggregator creates an Aggregator for the given analysis profile.
func NewAggregator(profile *config.Profile) *Aggregator {
	return &Aggregator{profile: profile}
}

// Classify labels a purchase Stay when the purchased brand belongs to the
// focal family and Outflow otherwise. Pure function of the brand; every
// chart that partitions by status uses this same classification.
func (a *Aggregator) Classify(purchasedBrand string) string {
	if a.profile.InFamily(purchasedBrand) {
		return StatusStay
	}
	return StatusOutflow
}

// InflowWeight returns the weight accessor for inflow counting under mode.
func (a *Aggregator) InflowWeight(mode WeightMode) func(*models.SurveyRecord) float64 {
	if mode == ModeRaw {
		return rawWeight
	}
	return func(r *models.SurveyRecord) float64 { return r.SourceWeight }
}

// OutflowWeight returns the weight accessor for outflow/retention counting
// under mode.
func (a *Aggregator) OutflowWeight(mode WeightMode) func(*models.SurveyRecord) float64 {
	if mode == ModeRaw {
		return rawWeight
	}
	return func(r *models.SurveyRecord) float64 { return r.LoyaltyWeight }
}

func rawWeight(*models.SurveyRecord) float64 { return 1 }

// Aggregate filters records with keep, groups them by key, sums weight per
// group and averages the group's non-nil prices. Groups come back sorted
// descending by summed weight, ties broken by key so results are
// deterministic, truncated to topN (topN <= 0 means no truncation).
func Aggregate(records []*models.SurveyRecord, keep func(*models.SurveyRecord) bool,
	key func(*models.SurveyRecord) string, weight func(*models.SurveyRecord) float64,
	topN int) []models.GroupStat {

	type acc struct {
		value      float64
		priceSum   float64
		priceCount int
	}
	groups := make(map[string]*acc)

	for _, r := range records {
		if keep != nil && !keep(r) {
			continue
		}
		k := key(r)
		a, ok := groups[k]
		if !ok {
			a = &acc{}
			groups[k] = a
		}
		a.value += weight(r)
		if r.Price != nil {
			a.priceSum += *r.Price
			a.priceCount++
		}
	}

	stats := make([]models.GroupStat, 0, len(groups))
	for k, a := range groups {
		s := models.GroupStat{Key: k, Value: a.value}
		if a.priceCount > 0 {
			mean := a.priceSum / float64(a.priceCount)
			s.AvgPrice = &mean
		}
		stats = append(stats, s)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Value != stats[j].Value {
			return stats[i].Value > stats[j].Value
		}
		return stats[i].Key < stats[j].Key
	})
	if topN > 0 && len(stats) > topN {
		stats = stats[:topN]
	}
	return stats
}

// Share returns part as a percentage of total, or 0 when total is not
// positive so empty denominators never divide.
func Share(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total * 100
}

// MatchSpec finds the specification for a display name of the form
// "<Brand> <Model...>": the second whitespace-delimited token (or the whole
// name when there is only one word) is used as a case-insensitive substring
// key over the stored model keys, first match wins. The substring heuristic
// can false-positive on short tokens; that behavior is intentional and must
// stay stable. Returns nil when nothing matches.
func MatchSpec(displayName string, specs []*models.VehicleSpec) *models.VehicleSpec {
	parts := strings.Fields(displayName)
	search := displayName
	if len(parts) >= 2 {
		search = parts[1]
	}
	search = strings.ToLower(search)
	for _, s := range specs {
		if strings.Contains(strings.ToLower(s.ModelKey), search) {
			return s
		}
	}
	return nil
}

// ContainsFold reports whether s contains substr, case-insensitively. Model
// filters throughout the pipeline rely on this exact containment semantic.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
