package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetfin-dev/fleetfin/internal/amortization"
	"github.com/fleetfin-dev/fleetfin/internal/fleet"
	"github.com/fleetfin-dev/fleetfin/internal/model"
)

func newFinancingCommand() *cobra.Command {
	financingCmd := &cobra.Command{
		Use:   "financing",
		Short: "Vehicle financing projections",
	}
	financingCmd.AddCommand(newFinancingShowCommand())
	financingCmd.AddCommand(newFinancingScheduleCommand())
	return financingCmd
}

func newFinancingShowCommand() *cobra.Command {
	var dir string
	var paid int

	cmd := &cobra.Command{
		Use:   "show <vehicle-id>",
		Short: "Show installment and remaining principal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}

			plan, err := financingPlan(b, args[0])
			if err != nil {
				return err
			}

			installment, err := amortization.PlanInstallment(*plan)
			if err != nil {
				return err
			}
			remaining, err := amortization.PlanRemaining(*plan, paid)
			if err != nil {
				return err
			}

			fmt.Printf("principal %s @ %s%% over %d months\n",
				plan.Principal, plan.AnnualRatePct, amortization.TermMonths)
			fmt.Printf("monthly installment: %s\n", installment)
			fmt.Printf("remaining after %d installments: %s\n", paid, remaining)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "books directory")
	cmd.Flags().IntVar(&paid, "paid", 0, "installments already paid")
	return cmd
}

func newFinancingScheduleCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "schedule <vehicle-id>",
		Short: "Print the full amortization table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}

			plan, err := financingPlan(b, args[0])
			if err != nil {
				return err
			}

			entries, err := amortization.Schedule(plan.Principal, plan.AnnualRatePct)
			if err != nil {
				return err
			}

			fmt.Println("month\tpayment\tinterest\tprincipal\tremaining")
			for _, e := range entries {
				fmt.Printf("%d\t%s\t%s\t%s\t%s\n",
					e.Month, e.Payment, e.Interest, e.Principal, e.Remaining)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "books directory")
	return cmd
}

func financingPlan(b *books, vehicleID string) (*model.FinancingPlan, error) {
	vehicle, ok := b.fleet.Get(vehicleID)
	if !ok {
		return nil, fmt.Errorf("vehicle %s: %w", vehicleID, fleet.ErrNotFound)
	}
	if vehicle.Financing == nil {
		return nil, fmt.Errorf("vehicle %s is not financed", vehicleID)
	}
	return vehicle.Financing, nil
}
