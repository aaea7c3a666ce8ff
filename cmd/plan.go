package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetboard/internal/cli"
	"github.com/theirongolddev/budgetboard/internal/model"
)

var (
	flagPlanCategory string
	flagPayAll       bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan next month's income and expenses",
	RunE:  runPlanShow,
}

var planShowCmd = &cobra.Command{
	Use:   "show [YYYY-MM]",
	Short: "Show a plan month (default next month)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlanShow,
}

var planIncomeCmd = &cobra.Command{
	Use:   "income YYYY-MM AMOUNT",
	Short: "Set the expected salary of a month",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlanIncome,
}

var planExpenseCmd = &cobra.Command{
	Use:   "expense YYYY-MM NAME AMOUNT",
	Short: "Add a planned expense",
	Args:  cobra.ExactArgs(3),
	RunE:  runPlanExpense,
}

var planRemoveCmd = &cobra.Command{
	Use:     "remove ITEM_ID",
	Aliases: []string{"rm"},
	Short:   "Delete a plan item",
	Args:    cobra.ExactArgs(1),
	RunE:    runPlanRemove,
}

var planPayCmd = &cobra.Command{
	Use:   "pay [ITEM_ID...]",
	Short: "Mark this month's planned expenses as paid",
	RunE:  runPlanPay,
}

func init() {
	planExpenseCmd.Flags().StringVarP(&flagPlanCategory, "category", "c", model.CategoryOthers, "Category")
	planPayCmd.Flags().BoolVar(&flagPayAll, "all", false, "Pay every unpaid item")

	planCmd.AddCommand(planShowCmd, planIncomeCmd, planExpenseCmd, planRemoveCmd, planPayCmd)
	rootCmd.AddCommand(planCmd)
}

func parseMonth(s string) (time.Time, error) {
	m, ok := model.ParseMonthKey(s)
	if !ok {
		return m, fmt.Errorf("invalid month %q: want YYYY-MM", s)
	}
	return m, nil
}

func runPlanShow(cmd *cobra.Command, args []string) error {
	var month time.Time
	if len(args) == 1 {
		m, err := parseMonth(args[0])
		if err != nil {
			return err
		}
		month = m
	}
	return withBudget(cmd, func(ctx context.Context, b *budget) error {
		p, err := b.ctrl.Plan(ctx, month)
		if err != nil {
			return err
		}
		tr := b.tr
		s := p.Summary

		fmt.Println()
		fmt.Println(cli.RenderTitle(tr.T("Plan for Next Month") + "  " + tr.MonthYear(p.Month)))
		fmt.Println()

		income := "-"
		if p.Income != nil {
			income = tr.Money(p.Income.Amount)
		}
		fmt.Printf("  %s: %s\n", tr.T("Expected Salary"), cli.Income(income))
		switch {
		case p.PaymentWindowOpen:
			fmt.Println("  " + cli.Income(tr.T("It's time to manage expenses for %s!", tr.MonthYear(p.Month))))
		case p.IsCurrentMonth:
			fmt.Println("  " + cli.Muted(tr.T("Payment management opens on day %d of the current month.", b.ctrl.Payday())))
		}
		fmt.Println()

		if len(p.Expenses) == 0 {
			fmt.Println("  " + cli.Muted(tr.T("No expenses to manage for this month.")))
			return nil
		}
		rows := make([][]string, 0, len(p.Expenses)+4)
		for _, it := range p.Expenses {
			paid := ""
			if it.IsPaid {
				paid = cli.Income("✓")
			}
			rows = append(rows, []string{it.Name, tr.Category(it.Category), tr.Money(it.Amount), paid, cli.FormatDate(it.DatePaid), cli.Muted(it.ID)})
		}
		rows = append(rows,
			[]string{"---"},
			[]string{tr.T("Planned Expenses"), fmt.Sprintf("%d/%d %s", s.PaidItems, s.Items, tr.T("Paid")), cli.Expense(tr.Money(s.Expense)), "", "", ""},
			[]string{tr.T("Unpaid"), "", cli.Warn(tr.Money(s.Unpaid)), "", "", ""},
			[]string{tr.T("Net"), "", cli.Signed(s.Net, cli.FormatDelta(tr, s.Net)), "", "", ""},
		)
		fmt.Print(cli.RenderTable(cli.Table{
			Headers:   []string{tr.T("Name"), tr.T("Category"), tr.T("Amount"), tr.T("Paid"), tr.T("Date Paid"), "ID"},
			Rows:      rows,
			LeftAlign: map[int]bool{1: true, 5: true},
		}))
		return nil
	})
}

func runPlanIncome(cmd *cobra.Command, args []string) error {
	month, err := parseMonth(args[0])
	if err != nil {
		return err
	}
	amount, err := parseMoney(args[1])
	if err != nil {
		return err
	}
	return withBudget(cmd, func(ctx context.Context, b *budget) error {
		if err := b.ctrl.SetPlanIncome(ctx, month, amount); err != nil {
			return err
		}
		fmt.Println("  " + cli.Income(b.tr.T("Planned income saved successfully!")))
		return nil
	})
}

func runPlanExpense(cmd *cobra.Command, args []string) error {
	month, err := parseMonth(args[0])
	if err != nil {
		return err
	}
	amount, err := parseMoney(args[2])
	if err != nil {
		return err
	}
	return withBudget(cmd, func(ctx context.Context, b *budget) error {
		if err := b.ctrl.AddPlanExpense(ctx, month, args[1], flagPlanCategory, amount); err != nil {
			return err
		}
		fmt.Println("  " + cli.Income(b.tr.T("Planned expenses saved successfully!")))
		return nil
	})
}

func runPlanRemove(cmd *cobra.Command, args []string) error {
	return withBudget(cmd, func(ctx context.Context, b *budget) error {
		if err := b.ctrl.RemovePlanItem(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("  " + b.tr.T("Deleted %s", args[0]))
		return nil
	})
}

func runPlanPay(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !flagPayAll {
		return fmt.Errorf("name the item IDs to pay, or pass --all")
	}
	return withBudget(cmd, func(ctx context.Context, b *budget) error {
		ids := args
		if flagPayAll {
			p, err := b.ctrl.Plan(ctx, model.MonthStart(b.ctrl.Today()))
			if err != nil {
				return err
			}
			ids = nil
			for _, it := range p.Expenses {
				if !it.IsPaid {
					ids = append(ids, it.ID)
				}
			}
		}
		n, err := b.ctrl.ActivatePayments(ctx, ids)
		if err != nil {
			return err
		}
		fmt.Println("  " + cli.Income(b.tr.T("Paid %d items", n)))
		return nil
	})
}
