// Package cmd provides the pricingctl commands.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/anyulbade/aiclases-pricing/internal/config"
)

var (
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pricingctl",
	Short: "Inspect and manage the regional credit pricing catalog",
	Long: `pricingctl works against the same catalog the API serves.

Examples:
  pricingctl regions
  pricingctl quote --country CO
  pricingctl quote --accept-language "pt-BR,pt;q=0.9" --format json
  pricingctl migrate up
  pricingctl seed`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}

		cfg = config.Load()
		return cfg.Validate()
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
