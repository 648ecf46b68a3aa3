package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rentledger/internal/config"
	"rentledger/internal/database"
	"rentledger/internal/pkg/logger"
)

// env is filled by the root command before any subcommand runs.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:           "rentledger",
		Short:         "Rental ledger back office",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// .env is optional; real environment variables win
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.AppEnv)
			if err != nil {
				return err
			}
			e.cfg, e.log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if e.log != nil {
				_ = e.log.Sync()
			}
		},
	}

	rootCmd.AddCommand(newServeCmd(e), newMigrateCmd(e), newUserCmd(e))
	return rootCmd
}

func (e *env) connect() (*gorm.DB, error) {
	return database.Connect(e.cfg.DatabaseURL, e.log)
}
