package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/ride-ledger/internal/ledger"
	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

var (
	expenseCategory string
	expenseDate     string
	expenseDesc     string

	fuelType        string
	fuelPrice       string
	fuelConsumption string
	fuelDistance    string
	fuelDate        string
	fuelDesc        string
)

var expenseCmd = &cobra.Command{
	Use:   "expense <amount>",
	Short: "Record an expense (use 'rl fuel' for refuels)",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpense,
}

var fuelCmd = &cobra.Command{
	Use:   "fuel",
	Short: "Record a fuel expense; the amount is derived from price, consumption and distance",
	Example: `  rl fuel --type gasoline --price 5,89 --consumption 11,5 --distance 230`,
	Args: cobra.NoArgs,
	RunE: runFuel,
}

func init() {
	names := make([]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		if c != model.CategoryFuel {
			names = append(names, strings.ToLower(string(c)))
		}
	}
	expenseCmd.Flags().StringVar(&expenseCategory, "category", string(model.CategoryOther), "Category: "+strings.Join(names, ", "))
	expenseCmd.Flags().StringVar(&expenseDate, "date", "", "When (YYYY-MM-DD or YYYY-MM-DDTHH:MM), default now")
	expenseCmd.Flags().StringVar(&expenseDesc, "desc", "", "Optional description")

	fuelCmd.Flags().StringVar(&fuelType, "type", "", "Fuel type: ethanol, gasoline")
	fuelCmd.Flags().StringVar(&fuelPrice, "price", "", "Price per liter")
	fuelCmd.Flags().StringVar(&fuelConsumption, "consumption", "", "Average consumption in km/l")
	fuelCmd.Flags().StringVar(&fuelDistance, "distance", "", "Distance driven in km")
	fuelCmd.Flags().StringVar(&fuelDate, "date", "", "When (YYYY-MM-DD or YYYY-MM-DDTHH:MM), default now")
	fuelCmd.Flags().StringVar(&fuelDesc, "desc", "", "Optional description")
	_ = fuelCmd.MarkFlagRequired("type")
}

func runExpense(cmd *cobra.Command, args []string) error {
	category, err := parseCategory(expenseCategory)
	if err != nil {
		return err
	}
	when, err := parseWhen(expenseDate, current.clock.Now())
	if err != nil {
		return err
	}
	x, err := current.svc.AddExpense(cmd.Context(), ledger.ExpenseInput{
		Date:        when,
		Amount:      args[0],
		Category:    category,
		Description: expenseDesc,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s expense %s of %s on %s\n",
		strings.ToLower(x.Category.Label()), x.ID, timecalc.Money(x.Amount), naive(x.Date))
	return nil
}

func runFuel(cmd *cobra.Command, _ []string) error {
	ft, err := parseFuelType(fuelType)
	if err != nil {
		return err
	}
	when, err := parseWhen(fuelDate, current.clock.Now())
	if err != nil {
		return err
	}
	x, err := current.svc.AddFuel(cmd.Context(), ledger.FuelInput{
		Date:           when,
		FuelType:       ft,
		PricePerLiter:  fuelPrice,
		AvgConsumption: fuelConsumption,
		DistanceDriven: fuelDistance,
		Description:    fuelDesc,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded fuel %s: %s l of %s, %s\n",
		x.ID, timecalc.Number(x.Fuel.Liters(), 2), x.Fuel.FuelType.Label(), timecalc.Money(x.Amount))
	return nil
}
