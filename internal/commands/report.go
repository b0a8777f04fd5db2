package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetfin-dev/fleetfin/internal/model"
	"github.com/fleetfin-dev/fleetfin/internal/period"
	"github.com/fleetfin-dev/fleetfin/internal/report"
)

func newBilanCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "bilan <period>",
		Short: "Period balance sheet (revenue, costs, solde, margin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}
			p, err := period.Parse(args[0])
			if err != nil {
				return err
			}

			bilan := b.engine().ComputeBilan(p)
			fmt.Printf("bilan %s\n", bilan.Period)
			fmt.Printf("revenue:       %s\n", bilan.Revenue)
			for _, cat := range model.Categories() {
				if amount, ok := bilan.FleetCosts.ByCategory[cat]; ok {
					fmt.Printf("  %-12s %s\n", cat, amount)
				}
			}
			fmt.Printf("installments:  %s\n", bilan.Installments)
			fmt.Printf("total cost:    %s\n", bilan.TotalCost)
			fmt.Printf("solde:         %s\n", bilan.Solde)
			fmt.Printf("margin:        %s%%\n", bilan.MarginPct)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "books directory")
	return cmd
}

func newTCOCommand() *cobra.Command {
	var dir string
	var periodFlag string

	cmd := &cobra.Command{
		Use:   "tco [vehicle-id]",
		Short: "Total cost of ownership (one vehicle, or the whole fleet)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}

			var window *period.Period
			if periodFlag != "" {
				p, err := period.Parse(periodFlag)
				if err != nil {
					return err
				}
				window = &p
			}

			engine := b.engine()
			if len(args) == 1 {
				result, err := engine.ComputeTCO(args[0], window)
				if err != nil {
					return err
				}
				printTCO(result)
				return nil
			}

			results, err := engine.ComputeFleetTCO(window)
			if err != nil {
				return err
			}
			for _, result := range results {
				printTCO(result)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "books directory")
	cmd.Flags().StringVar(&periodFlag, "period", "", "restrict to a period")
	return cmd
}

func printTCO(result report.TCOResult) {
	perKm := "n/a"
	if result.CostPerKm != nil {
		perKm = result.CostPerKm.String()
	}
	fmt.Printf("%s\tacquisition %s\tfinancing %s\tdepreciation %s\trunning %s\ttotal %s\tper km %s\n",
		result.VehicleID, result.Acquisition, result.FinancingCost,
		result.Depreciation, result.RunningCosts.Total, result.Total, perKm)
}

func newRankCommand() *cobra.Command {
	var dir string
	var topN int

	cmd := &cobra.Command{
		Use:   "rank <period>",
		Short: "Rank vehicles by profitability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}
			p, err := period.Parse(args[0])
			if err != nil {
				return err
			}
			if topN == 0 {
				topN = b.cfg.Reporting.DefaultTopN
			}

			for i, entry := range b.engine().RankProfitability(p, topN) {
				fmt.Printf("%d.\t%s\trevenue %s\tcost %s\tmargin %s%%\n",
					i+1, entry.VehicleID, entry.Revenue, entry.Cost, entry.MarginPct)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "books directory")
	cmd.Flags().IntVar(&topN, "top", 0, "number of vehicles to show (defaults from config)")
	return cmd
}
