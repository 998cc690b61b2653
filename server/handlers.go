package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"carswitch/models"
	"carswitch/services"
)

// Health reports liveness.
func (h *httpServer) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"})
}

// GetModels returns the configured focal model list.
func (h *httpServer) GetModels(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]any{
		"focal_brand": h.ds.Profile.FocalBrand,
		"models":      h.ds.Profile.TargetModels,
	})
}

// GetOverview serves the brand-wide inflow/outflow structure: retention pie,
// price-movement distribution with benchmark overlay, and the top-15 inflow
// and outflow brand rankings.
func (h *httpServer) GetOverview(w http.ResponseWriter, r *http.Request) {
	mode := services.ParseWeightMode(r.URL.Query().Get("mode"))
	profile := h.ds.Profile
	inW := h.agg.InflowWeight(mode)
	outW := h.agg.OutflowWeight(mode)

	disposers := h.disposers("")

	report := &models.OverviewReport{
		Mode:          mode.String(),
		Disposals:     len(disposers),
		Retention:     h.retention(disposers, outW),
		PriceMovement: h.priceMovement(disposers, outW, ""),
		InflowBrands: services.Aggregate(h.ds.Records,
			func(rec *models.SurveyRecord) bool {
				return rec.PurchasedBrand == profile.FocalBrand && !profile.InFamily(rec.DisposedBrand)
			},
			func(rec *models.SurveyRecord) string { return rec.DisposedBrand },
			inW, 15),
		OutflowBrands: services.Aggregate(disposers,
			func(rec *models.SurveyRecord) bool {
				return h.agg.Classify(rec.PurchasedBrand) == services.StatusOutflow
			},
			func(rec *models.SurveyRecord) string { return rec.PurchasedBrand },
			outW, 15),
	}
	h.writeJSON(w, report)
}

// GetModelReport serves the deep-dive for one focal model: retention,
// price movement with the model's benchmark highlighted, and top-N inflow
// and outflow model rankings.
func (h *httpServer) GetModelReport(w http.ResponseWriter, r *http.Request) {
	model, err := h.validateModel(w, mux.Vars(r)["model"])
	if err != nil {
		return
	}
	mode := services.ParseWeightMode(r.URL.Query().Get("mode"))
	topN, err := h.validateTopN(w, r.URL.Query().Get("top"))
	if err != nil {
		return
	}
	profile := h.ds.Profile
	inW := h.agg.InflowWeight(mode)
	outW := h.agg.OutflowWeight(mode)

	disposers := h.disposers(model)

	report := &models.ModelReport{
		Model:         model,
		Mode:          mode.String(),
		Disposals:     len(disposers),
		Retention:     h.retention(disposers, outW),
		PriceMovement: h.priceMovement(disposers, outW, model),
		InflowModels: services.Aggregate(h.ds.Records,
			func(rec *models.SurveyRecord) bool {
				return services.ContainsFold(rec.PurchasedModel, model) &&
					!profile.InFamily(rec.DisposedBrand) &&
					!profile.ExcludedDisposal(rec.DisposedBrand)
			},
			func(rec *models.SurveyRecord) string { return rec.CleanModelPrev },
			inW, topN),
		OutflowModels: services.Aggregate(disposers,
			func(rec *models.SurveyRecord) bool {
				return h.agg.Classify(rec.PurchasedBrand) == services.StatusOutflow
			},
			func(rec *models.SurveyRecord) string { return rec.CleanModelCurr },
			outW, topN),
	}
	h.writeJSON(w, report)
}

// GetCompetitors serves the top-20 outflow destination models for a focal
// model — the selection list for the comparison view.
func (h *httpServer) GetCompetitors(w http.ResponseWriter, r *http.Request) {
	model, err := h.validateModel(w, mux.Vars(r)["model"])
	if err != nil {
		return
	}
	mode := services.ParseWeightMode(r.URL.Query().Get("mode"))

	h.writeJSON(w, &models.CompetitorList{
		Model:       model,
		Competitors: h.topCompetitors(model, mode),
	})
}

// GetCompare serves the comparison cards for a focal model versus one of its
// outflow competitors, plus the outflow volume and share.
func (h *httpServer) GetCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	model, err := h.validateModel(w, q.Get("model"))
	if err != nil {
		return
	}
	competitor := q.Get("competitor")
	if competitor == "" {
		h.writeError(w, http.StatusBadRequest, "competitor query parameter is required")
		return
	}
	mode := services.ParseWeightMode(q.Get("mode"))
	outW := h.agg.OutflowWeight(mode)
	profile := h.ds.Profile

	focalName := profile.FocalBrand + " " + model
	focalData := filter(h.ds.Records, func(rec *models.SurveyRecord) bool {
		return rec.PurchasedBrand == profile.FocalBrand &&
			services.ContainsFold(rec.PurchasedModel, model)
	})
	competitorData := filter(h.ds.Records, func(rec *models.SurveyRecord) bool {
		return rec.CleanModelCurr == competitor
	})

	report := &models.CompareReport{
		Mode:       mode.String(),
		Focal:      h.modelCard(focalName, focalData),
		Competitor: h.modelCard(competitor, competitorData),
	}

	outflows := filter(h.disposers(model), func(rec *models.SurveyRecord) bool {
		return h.agg.Classify(rec.PurchasedBrand) == services.StatusOutflow
	})
	for _, rec := range outflows {
		weight := outW(rec)
		report.TotalOutflow += weight
		if rec.CleanModelCurr == competitor {
			report.OutflowVolume += weight
		}
	}
	report.HasOutflowData = len(outflows) > 0
	report.OutflowShare = services.Share(report.OutflowVolume, report.TotalOutflow)

	h.writeJSON(w, report)
}

// disposers returns records disposing the focal brand, optionally narrowed
// to disposed models containing model case-insensitively.
func (h *httpServer) disposers(model string) []*models.SurveyRecord {
	profile := h.ds.Profile
	return filter(h.ds.Records, func(rec *models.SurveyRecord) bool {
		if rec.DisposedBrand != profile.FocalBrand {
			return false
		}
		return model == "" || services.ContainsFold(rec.DisposedModel, model)
	})
}

func (h *httpServer) topCompetitors(model string, mode services.WeightMode) []models.GroupStat {
	return services.Aggregate(h.disposers(model),
		func(rec *models.SurveyRecord) bool {
			return h.agg.Classify(rec.PurchasedBrand) == services.StatusOutflow
		},
		func(rec *models.SurveyRecord) string { return rec.CleanModelCurr },
		h.agg.OutflowWeight(mode), 20)
}

// retention sums the weight of each purchase status and attaches its share
// of the combined total. Zero totals yield zero shares, never a division
// error.
func (h *httpServer) retention(subset []*models.SurveyRecord, weight func(*models.SurveyRecord) float64) []models.RetentionSlice {
	sums := map[string]float64{services.StatusStay: 0, services.StatusOutflow: 0}
	for _, rec := range subset {
		sums[h.agg.Classify(rec.PurchasedBrand)] += weight(rec)
	}
	total := sums[services.StatusStay] + sums[services.StatusOutflow]
	return []models.RetentionSlice{
		{Status: services.StatusStay, Value: sums[services.StatusStay], Share: services.Share(sums[services.StatusStay], total)},
		{Status: services.StatusOutflow, Value: sums[services.StatusOutflow], Share: services.Share(sums[services.StatusOutflow], total)},
	}
}

// priceMovement collects the weighted, status-labelled price points of a
// subset plus the benchmark overlay, highlighting activeModel's line.
func (h *httpServer) priceMovement(subset []*models.SurveyRecord, weight func(*models.SurveyRecord) float64, activeModel string) models.PriceMovement {
	pm := models.PriceMovement{Points: []models.PricePoint{}}
	for _, rec := range subset {
		if rec.Price == nil {
			continue
		}
		pm.Points = append(pm.Points, models.PricePoint{
			Price:  *rec.Price,
			Weight: weight(rec),
			Status: h.agg.Classify(rec.PurchasedBrand),
		})
	}
	for _, target := range h.ds.Profile.TargetModels {
		price := h.ds.Benchmarks[target]
		if price == nil {
			continue
		}
		pm.Benchmarks = append(pm.Benchmarks, models.BenchmarkLine{
			Model:  target,
			Price:  *price,
			Active: target == activeModel,
		})
	}
	return pm
}

// modelCard builds one comparison card from the subset of records for a
// model. A nil Spec means no spec table was loaded; Found=false means the
// table had no match.
func (h *httpServer) modelCard(name string, subset []*models.SurveyRecord) models.ModelCard {
	card := models.ModelCard{
		Name:       name,
		SampleSize: len(subset),
		Segment:    modalSegment(subset),
		Prices:     []float64{},
	}
	var sum float64
	var count int
	for _, rec := range subset {
		if rec.Price == nil {
			continue
		}
		card.Prices = append(card.Prices, *rec.Price)
		sum += *rec.Price
		count++
	}
	if count > 0 {
		mean := sum / float64(count)
		card.AvgPrice = &mean
	}

	if len(h.ds.Specs) > 0 {
		if spec := services.MatchSpec(name, h.ds.Specs); spec != nil {
			card.Spec = &models.SpecCard{
				Found:    true,
				ModelKey: spec.ModelKey,
				BodyType: spec.BodyType,
				Seating:  spec.Seating,
				Price:    spec.Price,
			}
		} else {
			card.Spec = &models.SpecCard{Found: false}
		}
	}
	return card
}

// modalSegment returns the most frequent non-empty segment, ties broken
// lexically so the card is deterministic.
func modalSegment(subset []*models.SurveyRecord) string {
	counts := make(map[string]int)
	for _, rec := range subset {
		if rec.Segment != "" {
			counts[rec.Segment]++
		}
	}
	var best string
	var bestCount int
	for seg, n := range counts {
		if n > bestCount || (n == bestCount && seg < best) {
			best, bestCount = seg, n
		}
	}
	return best
}

func (h *httpServer) validateModel(w http.ResponseWriter, model string) (string, error) {
	if model == "" {
		h.writeError(w, http.StatusBadRequest, "model is required")
		return "", fmt.Errorf("model missing")
	}
	if !h.ds.Profile.IsTargetModel(model) {
		h.writeError(w, http.StatusNotFound, fmt.Sprintf("unknown focal model %q", model))
		return "", fmt.Errorf("unknown model %q", model)
	}
	return model, nil
}

func (h *httpServer) validateTopN(w http.ResponseWriter, raw string) (int, error) {
	if raw == "" {
		return h.defaultTopN, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("top must be a positive integer: %q", raw))
		return 0, fmt.Errorf("invalid top %q", raw)
	}
	return n, nil
}

func (h *httpServer) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Add("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error("[server] Encode response failed: %v", err)
	}
}

func (h *httpServer) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
	h.log.Warn("[server] %d: %s", status, msg)
}

func filter(records []*models.SurveyRecord, keep func(*models.SurveyRecord) bool) []*models.SurveyRecord {
	var out []*models.SurveyRecord
	for _, rec := range records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}
