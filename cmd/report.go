package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"carswitch/config"
	"carswitch/services"
	"carswitch/utils"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a market-switching summary to the terminal",
	Run:   runReport,
}

func init() {
	reportCmd.Flags().String("model", "", "focal model deep-dive (e.g. Civic)")
	reportCmd.Flags().String("mode", "market", "weighting mode: market or raw")
	reportCmd.Flags().Int("top", 0, "ranking rows (0 = config default)")
}

func runReport(cmd *cobra.Command, args []string) {
	logger := utils.NewLogger()
	cfg := config.Load()
	if cfg.Debug {
		logger.EnableDebug()
	}

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		logger.Error("Failed to load analysis profile: %v", err)
		os.Exit(1)
	}

	model := viper.GetString("model")
	if model != "" && !profile.IsTargetModel(model) {
		logger.Error("Unknown focal model %q (configured: %v)", model, profile.TargetModels)
		os.Exit(1)
	}

	store := services.NewStore(profile, logger)
	ds, err := store.Load(cfg.SurveyCSVPath, cfg.SpecCSVPath)
	if err != nil {
		logger.Error("Failed to load dataset: %v", err)
		os.Exit(1)
	}

	topN := viper.GetInt("top")
	if topN <= 0 {
		topN = cfg.DefaultTopN
	}

	svc := services.NewReportService(ds, logger)
	summary := svc.Generate(ds, services.ParseWeightMode(viper.GetString("mode")), model, topN)
	svc.Print(summary)
}
