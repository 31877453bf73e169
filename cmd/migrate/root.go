package main

import (
	"os"

	"github.com/designflow/backend/internal/config"
	"github.com/designflow/backend/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	databaseURL  string
	migrationDir string
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply DesignFlow database migrations",
	Long: `migrate manages the DesignFlow PostgreSQL schema.

Without a subcommand it applies pending migrations (same as "migrate up").`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		_ = godotenv.Load("../.env")
		logging.Setup()

		if databaseURL == "" {
			cfg, err := config.Load(config.PathFromEnv())
			if err != nil {
				logging.Fatal("load config failed", "error", err)
			}
			databaseURL = cfg.Database.URL
		}
		if migrationDir == "" {
			migrationDir = findMigrationDir()
		}
	},
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		upCmd.Run(cmd, args)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection string (default: DATABASE_URL or config file)")
	rootCmd.PersistentFlags().StringVar(&migrationDir, "dir", "", "directory containing *.sql migrations (default: ./migrations or ../migrations)")
	rootCmd.AddCommand(upCmd, resetCmd, freshCmd, seedCmd)
}

func findMigrationDir() string {
	dir := "migrations"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../migrations"
	}
	return dir
}
