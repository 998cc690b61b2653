package services

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"carswitch/config"
	"carswitch/models"
	"carswitch/utils"
)

// Normalizer transforms raw survey and specification rows into the clean,
// immutable records the aggregation layer consumes.
type Normalizer struct {
	profile *config.Profile
	logger  *utils.Logger
}

// NewNormalizer creates a Normalizer for the given analysis profile.
func NewNormalizer(profile *config.Profile, logger *utils.Logger) *Normalizer {
	return &Normalizer{profile: profile, logger: logger}
}

// Normalize applies brand-alias corrections, numeric coercion and canonical
// model-name derivation to every raw survey row. Unparsable prices become
// nil; unparsable or negative weights become zero.
func (n *Normalizer) Normalize(raw []*models.RawSurveyRow) []*models.SurveyRecord {
	result := make([]*models.SurveyRecord, 0, len(raw))
	for _, r := range raw {
		disposedBrand := n.profile.Alias(r.DisposedBrand)
		purchasedBrand := n.profile.Alias(r.PurchasedBrand)

		rec := &models.SurveyRecord{
			DisposedBrand:  disposedBrand,
			DisposedModel:  r.DisposedModel,
			PurchasedBrand: purchasedBrand,
			PurchasedModel: r.PurchasedModel,
			Price:          parsePrice(r.RawPrice),
			SourceWeight:   parseWeight(r.RawSourceWeight),
			LoyaltyWeight:  parseWeight(r.RawLoyaltyWeight),
			Segment:        strings.TrimSpace(r.Segment),
			CleanModelPrev: CleanModelName(disposedBrand, r.DisposedModel),
			CleanModelCurr: CleanModelName(purchasedBrand, r.PurchasedModel),
		}
		result = append(result, rec)
	}
	n.logger.Info("[normalizer] Normalized %d survey records", len(result))
	return result
}

// BuildSpecs collapses raw specification rows into one VehicleSpec per model
// key. Only rows from the newest sales year are used; grades sharing a key
// keep the first body type, first seating and first segment seen, and the
// mean of their parsable prices. Keys are returned in order of first
// appearance.
func (n *Normalizer) BuildSpecs(rows []*models.RawSpecRow) []*models.VehicleSpec {
	if len(rows) == 0 {
		return nil
	}

	maxYear := rows[0].SalesYear
	for _, r := range rows[1:] {
		if r.SalesYear > maxYear {
			maxYear = r.SalesYear
		}
	}

	type acc struct {
		spec       *models.VehicleSpec
		priceSum   float64
		priceCount int
	}
	byKey := make(map[string]*acc)
	var order []string

	for _, r := range rows {
		if r.SalesYear != maxYear {
			continue
		}
		key := titleWords(r.Maker) + " " + titleWords(r.Model)
		a, ok := byKey[key]
		if !ok {
			a = &acc{spec: &models.VehicleSpec{
				ModelKey: key,
				BodyType: strings.TrimSpace(r.BodyType),
				Seating:  parseSeating(r.RawSeating),
				Segment:  strings.TrimSpace(r.Segment),
			}}
			byKey[key] = a
			order = append(order, key)
		}
		if p := parsePrice(r.RawPrice); p != nil {
			a.priceSum += *p
			a.priceCount++
		}
	}

	specs := make([]*models.VehicleSpec, 0, len(order))
	for _, key := range order {
		a := byKey[key]
		if a.priceCount > 0 {
			mean := a.priceSum / float64(a.priceCount)
			a.spec.Price = &mean
		}
		specs = append(specs, a.spec)
	}
	n.logger.Info("[normalizer] Built %d vehicle specs (sales year %d)", len(specs), maxYear)
	return specs
}

// CleanModelName derives the canonical "Brand Model" grouping key from
// free-text brand and model fields. When the model line is itself named
// "Model <N>" the third word is kept as well. Pure and deterministic; used
// as a grouping key, so its exact behavior must not drift.
func CleanModelName(brand, model string) string {
	brand = strings.TrimSpace(brand)
	model = strings.TrimSpace(model)

	full := model
	if !strings.HasPrefix(strings.ToLower(model), strings.ToLower(brand)) {
		full = brand + " " + model
	}
	words := strings.Fields(full)
	if len(words) >= 2 {
		if strings.EqualFold(words[1], "model") && len(words) >= 3 {
			return words[0] + " " + words[1] + " " + words[2]
		}
		return words[0] + " " + words[1]
	}
	return full
}

// parsePrice coerces a raw price field. Anything that does not parse as a
// finite number becomes nil, and nil prices are excluded from means rather
// than counted as zero.
func parsePrice(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// parseWeight coerces a raw weight field. Missing, unparsable, non-finite
// and negative values all become zero so weighted sums stay well defined.
func parseWeight(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// parseSeating coerces the seating-capacity column; nil when unparsable.
func parseSeating(raw string) *int {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	n := int(v)
	return &n
}

// titleWords upper-cases the first letter of each whitespace-delimited word
// and lower-cases the rest, matching the spec table's title-cased keys.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
