package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "carswitch",
	Short: "Automotive market-switching analytics",
	Long: `carswitch loads a vehicle-switching survey and a specification table,
computes inflow/outflow statistics relative to a focal manufacturer, and
serves chart-ready JSON or prints a terminal summary.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	viper.BindPFlags(serveCmd.Flags())
	viper.BindPFlags(reportCmd.Flags())
}
