package main

import (
	"fmt"

	"github.com/nikolayk812/coinvault/internal/migrations"
	"github.com/spf13/cobra"
)

var migrateDownSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateDownSteps > 0 {
			if err := migrations.Down(cfg.Database.DSN, migrateDownSteps, logger); err != nil {
				return fmt.Errorf("migrations.Down: %w", err)
			}
			return nil
		}

		if err := migrations.Up(cfg.Database.DSN, logger); err != nil {
			return fmt.Errorf("migrations.Up: %w", err)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().IntVar(&migrateDownSteps, "down", 0, "Roll back this many migrations instead of applying")
}
