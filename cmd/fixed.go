package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetboard/internal/cli"
)

var fixedCmd = &cobra.Command{
	Use:   "fixed",
	Short: "Manage recurring monthly expenses",
	RunE:  runFixedList,
}

var fixedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List fixed expenses",
	RunE:  runFixedList,
}

var fixedAddCmd = &cobra.Command{
	Use:   "add NAME AMOUNT",
	Short: "Add a fixed expense",
	Args:  cobra.ExactArgs(2),
	RunE:  runFixedAdd,
}

var fixedRemoveCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm"},
	Short:   "Remove a fixed expense",
	Args:    cobra.ExactArgs(1),
	RunE:    runFixedRemove,
}

func init() {
	fixedCmd.AddCommand(fixedListCmd, fixedAddCmd, fixedRemoveCmd)
	rootCmd.AddCommand(fixedCmd)
}

func runFixedList(cmd *cobra.Command, _ []string) error {
	return withBudget(cmd, func(ctx context.Context, b *budget) error {
		s, err := b.ctrl.Snapshot(ctx)
		if err != nil {
			return err
		}
		tr := b.tr
		if len(s.Fixed) == 0 {
			fmt.Println("\n  " + tr.T("No fixed expenses yet. Add some!"))
			return nil
		}

		total := decimal.Zero
		rows := make([][]string, 0, len(s.Fixed)+2)
		for _, f := range s.Fixed {
			total = total.Add(f.Amount)
			rows = append(rows, []string{f.Name, tr.Money(f.Amount)})
		}
		rows = append(rows, []string{"---"}, []string{tr.T("Total Fixed Expenses"), cli.Expense(tr.Money(total))})

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   tr.T("Fixed Expenses"),
			Headers: []string{tr.T("Name"), tr.T("Amount")},
			Rows:    rows,
		}))
		return nil
	})
}

func runFixedAdd(cmd *cobra.Command, args []string) error {
	amount, err := parseMoney(args[1])
	if err != nil {
		return err
	}
	return withBudget(cmd, func(ctx context.Context, b *budget) error {
		if err := b.ctrl.AddFixedExpense(ctx, args[0], amount); err != nil {
			return err
		}
		fmt.Println("  " + cli.Income(b.tr.T("Fixed expense added successfully!")))
		return nil
	})
}

func runFixedRemove(cmd *cobra.Command, args []string) error {
	return withBudget(cmd, func(ctx context.Context, b *budget) error {
		if err := b.ctrl.RemoveFixedExpense(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("  " + b.tr.T("Deleted %s", args[0]))
		return nil
	})
}
