package main

import (
	"github.com/spf13/cobra"

	"rentledger/internal/database"
)

func newMigrateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				db, err := e.connect()
				if err != nil {
					return err
				}
				return database.MigrateUp(db, e.log)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert every migration. Deletes all data.",
			RunE: func(cmd *cobra.Command, _ []string) error {
				db, err := e.connect()
				if err != nil {
					return err
				}
				return database.MigrateDown(db, e.log)
			},
		},
	)
	return cmd
}
