// Command coinvault runs the coin shop API and manages the local cart.
package main

import (
	"fmt"
	"os"

	"github.com/nikolayk812/coinvault/internal/config"
	"github.com/nikolayk812/coinvault/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "coinvault",
	Short: "Online shop for collectible coins and paper currency",
	Long: `coinvault serves the storefront, account and admin JSON API backed by
Postgres, and manages a local cart kept in a SQLite file.

Configuration is read from --config (YAML) and COINVAULT_* environment
variables, which win over the file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadOptional(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Log.Development)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "coinvault.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(cartCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
