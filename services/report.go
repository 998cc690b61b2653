package services

import (
	"fmt"
	"sort"
	"strings"

	"carswitch/models"
	"carswitch/utils"
)

// ReportService computes and prints the terminal market summary.
type ReportService struct {
	agg    *Aggregator
	logger *utils.Logger
}

// NewReportService creates a ReportService over the dataset's profile.
func NewReportService(ds *Dataset, logger *utils.Logger) *ReportService {
	return &ReportService{agg: NewAggregator(ds.Profile), logger: logger}
}

// Generate computes the market summary for the given weighting mode. When
// focalModel is non-empty the per-model inflow/outflow rankings are included
// as well.
func (s *ReportService) Generate(ds *Dataset, mode WeightMode, focalModel string, topN int) *models.MarketSummary {
	profile := ds.Profile
	inW := s.agg.InflowWeight(mode)
	outW := s.agg.OutflowWeight(mode)

	summary := &models.MarketSummary{
		Mode:         mode.String(),
		TotalRecords: len(ds.Records),
	}

	var stay, outflow float64
	for _, r := range ds.Records {
		if r.DisposedBrand != profile.FocalBrand {
			continue
		}
		summary.Disposals++
		if s.agg.Classify(r.PurchasedBrand) == StatusStay {
			stay += outW(r)
		} else {
			outflow += outW(r)
		}
	}
	summary.StayWeight = stay
	summary.OutflowWeight = outflow
	summary.OutflowShare = Share(outflow, stay+outflow)

	summary.InflowBrands = Aggregate(ds.Records,
		func(r *models.SurveyRecord) bool {
			return r.PurchasedBrand == profile.FocalBrand && !profile.InFamily(r.DisposedBrand)
		},
		func(r *models.SurveyRecord) string { return r.DisposedBrand },
		inW, topN)

	summary.OutflowBrands = Aggregate(ds.Records,
		func(r *models.SurveyRecord) bool {
			return r.DisposedBrand == profile.FocalBrand &&
				s.agg.Classify(r.PurchasedBrand) == StatusOutflow
		},
		func(r *models.SurveyRecord) string { return r.PurchasedBrand },
		outW, topN)

	targets := make([]string, 0, len(ds.Benchmarks))
	for name := range ds.Benchmarks {
		targets = append(targets, name)
	}
	sort.Strings(targets)
	for _, name := range targets {
		if price := ds.Benchmarks[name]; price != nil {
			summary.Benchmarks = append(summary.Benchmarks,
				models.BenchmarkLine{Model: name, Price: *price, Active: name == focalModel})
		}
	}

	if focalModel != "" {
		summary.FocalModel = focalModel
		summary.InflowModels = Aggregate(ds.Records,
			func(r *models.SurveyRecord) bool {
				return ContainsFold(r.PurchasedModel, focalModel) &&
					!profile.InFamily(r.DisposedBrand) &&
					!profile.ExcludedDisposal(r.DisposedBrand)
			},
			func(r *models.SurveyRecord) string { return r.CleanModelPrev },
			inW, topN)
		summary.OutflowModels = Aggregate(ds.Records,
			func(r *models.SurveyRecord) bool {
				return r.DisposedBrand == profile.FocalBrand &&
					ContainsFold(r.DisposedModel, focalModel) &&
					s.agg.Classify(r.PurchasedBrand) == StatusOutflow
			},
			func(r *models.SurveyRecord) string { return r.CleanModelCurr },
			outW, topN)
	}

	return summary
}

// Print renders the summary to the terminal.
func (s *ReportService) Print(r *models.MarketSummary) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🚗 MARKET SWITCHING SUMMARY (%s mode)\033[0m\n", r.Mode)
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Survey records        : \033[1m%d\033[0m\n", r.TotalRecords)
	fmt.Printf("  Focal-brand disposals : \033[1m%d\033[0m\n", r.Disposals)
	fmt.Printf("  Stay weight           : \033[1;32m%.1f\033[0m\n", r.StayWeight)
	fmt.Printf("  Outflow weight        : \033[1;31m%.1f\033[0m\n", r.OutflowWeight)
	fmt.Printf("  Outflow share         : \033[1;31m%.1f%%\033[0m\n", r.OutflowShare)
	fmt.Println()

	printRanking("📥 Top Inflow Source Brands", thin, r.InflowBrands)
	printRanking("📤 Top Outflow Destination Brands", thin, r.OutflowBrands)

	if r.FocalModel != "" {
		printRanking(fmt.Sprintf("📥 Inflow Source Models (%s)", r.FocalModel), thin, r.InflowModels)
		printRanking(fmt.Sprintf("📤 Outflow Destination Models (%s)", r.FocalModel), thin, r.OutflowModels)
	}

	fmt.Printf("\033[1;33m  Price Benchmarks\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.Benchmarks) == 0 {
		fmt.Printf("  No benchmark data\n")
	}
	for _, b := range r.Benchmarks {
		marker := " "
		if b.Active {
			marker = "▶"
		}
		fmt.Printf("  %s %-12s \033[1;32m$%.0f\033[0m\n", marker, b.Model, b.Price)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func printRanking(title, thin string, stats []models.GroupStat) {
	fmt.Printf("\033[1;33m  %s\033[0m\n", title)
	fmt.Printf("  %s\n", thin)
	if len(stats) == 0 {
		fmt.Printf("  No data\n\n")
		return
	}
	max := stats[0].Value
	for i, s := range stats {
		barLen := 0
		if max > 0 {
			barLen = int(s.Value / max * 24)
		}
		price := "N/A"
		if s.AvgPrice != nil {
			price = fmt.Sprintf("$%.0f", *s.AvgPrice)
		}
		fmt.Printf("  \033[1m%2d.\033[0m %-26s %-24s %8.1f  %s\n",
			i+1, truncate(s.Key, 24), strings.Repeat("█", barLen), s.Value, price)
	}
	fmt.Println()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
