package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parkwise/parkwise/config"
	"github.com/parkwise/parkwise/core/lot"
	"github.com/parkwise/parkwise/infra/logger"
	"github.com/parkwise/parkwise/internal/console"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "parkwise",
	Short: "Parking facility management console",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig loads the configured file, falling back to defaults when the
// file does not exist.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.SetLevel(cfg.Logging.Level)
	log := logger.New("console")
	l := lot.New(cfg.Layout, cfg.Rates, log)
	console.New(l, cmd.InOrStdin(), cmd.OutOrStdout(), log).Run()
	return nil
}
