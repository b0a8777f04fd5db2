package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fleetfin-dev/fleetfin/internal/model"
	"github.com/fleetfin-dev/fleetfin/internal/money"
)

func newVehicleCommand() *cobra.Command {
	vehicleCmd := &cobra.Command{
		Use:   "vehicle",
		Short: "Vehicle registry management",
	}
	vehicleCmd.AddCommand(newVehicleAddCommand())
	vehicleCmd.AddCommand(newVehicleListCommand())
	return vehicleCmd
}

func newVehicleAddCommand() *cobra.Command {
	var dir string
	var name string
	var cost string
	var kilometers int64
	var financed string
	var ratePct string

	cmd := &cobra.Command{
		Use:   "add <vehicle-id>",
		Short: "Register a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}

			id := args[0]
			acqCost, err := money.FromString(cost)
			if err != nil {
				return err
			}

			vehicle := model.Vehicle{
				ID:              id,
				Name:            name,
				AcquisitionCost: acqCost,
				Kilometers:      kilometers,
				CommissionedAt:  time.Now().UTC(),
			}

			if financed != "" {
				principal, err := money.FromString(financed)
				if err != nil {
					return err
				}
				rate := decimal.NewFromFloat(b.cfg.Financing.DefaultAnnualRatePct)
				if ratePct != "" {
					rate, err = decimal.NewFromString(ratePct)
					if err != nil {
						return fmt.Errorf("parsing rate %q: %w", ratePct, err)
					}
				}
				vehicle.Financing = &model.FinancingPlan{
					VehicleID:     id,
					Principal:     principal,
					AnnualRatePct: rate,
				}
			}

			if err := b.fleet.Add(vehicle); err != nil {
				return err
			}
			if err := b.fleet.Save(b.root); err != nil {
				return err
			}
			b.autoCommit("vehicle: add " + id)
			fmt.Printf("Registered vehicle %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "books directory")
	cmd.Flags().StringVar(&name, "name", "", "vehicle name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&cost, "cost", "", "acquisition cost (required)")
	_ = cmd.MarkFlagRequired("cost")
	cmd.Flags().Int64Var(&kilometers, "km", 0, "odometer kilometers")
	cmd.Flags().StringVar(&financed, "financed", "", "financed principal (empty = bought outright)")
	cmd.Flags().StringVar(&ratePct, "rate", "", "annual nominal rate percent (defaults from config)")
	return cmd
}

func newVehicleListCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered vehicles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}
			for _, v := range b.fleet.All() {
				financing := "outright"
				if v.Financing != nil {
					financing = fmt.Sprintf("financed %s @ %s%%", v.Financing.Principal, v.Financing.AnnualRatePct)
				}
				fmt.Printf("%s\t%s\t%s\t%d km\t%s\n", v.ID, v.Name, v.AcquisitionCost, v.Kilometers, financing)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "books directory")
	return cmd
}
