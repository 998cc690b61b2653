package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"carswitch/config"
	"carswitch/server"
	"carswitch/services"
	"carswitch/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API",
	Long:  "Loads both datasets once and serves the analytics endpoints over HTTP.",
	Run:   runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides SERVER_ADDRESS)")
}

func runServe(cmd *cobra.Command, args []string) {
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

	store := services.NewStore(profile, logger)
	ds, err := store.Load(cfg.SurveyCSVPath, cfg.SpecCSVPath)
	if err != nil {
		logger.Error("Failed to load dataset: %v", err)
		os.Exit(1)
	}

	addr := viper.GetString("addr")
	if addr == "" {
		addr = cfg.ServerAddress
	}

	srv := server.NewHTTPServer(addr, ds, cfg, logger)
	logger.Info("Serving %s analysis on %s (%d records)", profile.FocalBrand, addr, len(ds.Records))

	signalCh := make(chan os.Signal, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			logger.Error("Server stopped: %v", err)
			signalCh <- os.Interrupt
		}
	}()

	signal.Notify(signalCh, os.Interrupt)
	sig := <-signalCh
	logger.Info("Shutting down the server... (%s)", sig.String())
}
