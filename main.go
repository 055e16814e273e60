package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "diabetesapi",
		Short: "Diabetes classification inference service",
		Long: `diabetesapi serves a pre-trained diabetes classifier over HTTP.

GET /predict takes eleven lab measurements as query parameters and returns the
predicted class (Non-Diabetic, Diabetic, Prediabetic) with per-class
probabilities. Running without a subcommand is the same as "serve".`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the YAML config file")

	cmd.AddCommand(newServeCommand(&configPath))
	cmd.AddCommand(newPredictCommand())

	return cmd
}
