package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/anyulbade/aiclases-pricing/internal/catalog"
	"github.com/anyulbade/aiclases-pricing/internal/database"
)

var migrationsDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the catalog schema",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		database.MigrationsDir = migrationsDir
		return nil
	},
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return database.RunMigrations(cfg.DatabaseURL())
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return database.RollbackMigrations(cfg.DatabaseURL())
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied migration version",
	RunE: func(cmd *cobra.Command, args []string) error {
		version, dirty, err := database.MigrationVersion(cfg.DatabaseURL())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the bundled catalog into empty catalog tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := catalog.DefaultData()
		if err != nil {
			return err
		}

		pool, err := database.NewPool(cmd.Context(), cfg.DatabaseURL())
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := database.SeedCatalog(cmd.Context(), pool, data); err != nil {
			return err
		}
		log.Info().Msg("seed finished")
		return nil
	},
}

func init() {
	migrateCmd.PersistentFlags().StringVar(&migrationsDir, "source", "file://migrations", "migration source URL")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}
