package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Print the effective tariff table",
	RunE:  runRates,
}

func init() {
	rootCmd.AddCommand(ratesCmd)
}

func runRates(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-12s base %d h = %.2f, then %.2f/h\n",
		"Motorcycle", cfg.Rates.Motorcycle.BaseHours, cfg.Rates.Motorcycle.BaseFee, cfg.Rates.Motorcycle.ExtraHourly)
	fmt.Fprintf(out, "%-12s base %d h = %.2f, then %.2f/h\n",
		"Four-wheel", cfg.Rates.FourWheel.BaseHours, cfg.Rates.FourWheel.BaseFee, cfg.Rates.FourWheel.ExtraHourly)
	return nil
}
