package main

import (
	"github.com/spf13/cobra"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/output"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "beachfinder",
	Short: "Beach content enrichment with LLM-generated classifications and guides",
	Long: `Beachfinder enriches beach records with generated content.

The pipeline includes:
  - Classification of bare beaches (tags, amenities, features, tips)
  - Long-form content sections for classified beaches
  - Validation against controlled vocabularies and quality checks
  - Checkpointed, resumable batch runs`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.beachfinder/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "beachfinder home directory (default: ~/.beachfinder)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "text", "output format: text, yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		output.SetFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
