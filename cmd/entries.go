package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetboard/internal/cli"
	"github.com/theirongolddev/budgetboard/internal/locale"
	"github.com/theirongolddev/budgetboard/internal/model"
	"github.com/theirongolddev/budgetboard/internal/pipeline"
)

var (
	flagAddDate     string
	flagAddIncome   bool
	flagAddCategory string
	flagAddNote     string

	flagEntriesView string
	flagEntriesKey  string
)

var addCmd = &cobra.Command{
	Use:   "add AMOUNT",
	Short: "Record an expense (or income with --income)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List entries for one day, week or month",
	RunE:  runEntries,
}

func init() {
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Date as YYYY-MM-DD (default today)")
	addCmd.Flags().BoolVar(&flagAddIncome, "income", false, "Record income instead of an expense")
	addCmd.Flags().StringVarP(&flagAddCategory, "category", "c", model.CategoryOthers, "Category")
	addCmd.Flags().StringVarP(&flagAddNote, "note", "m", "", "Note")

	entriesCmd.Flags().StringVar(&flagEntriesView, "view", "month", "Grouping: day, week or month")
	entriesCmd.Flags().StringVar(&flagEntriesKey, "key", "", "Group to show, e.g. 2025-06-01, 2025-W22 or \"June 2025\" (default current)")

	rootCmd.AddCommand(addCmd, entriesCmd)
}

func parseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(s), locale.CurrencySymbol), ",", ""))
	if err != nil {
		return d, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return d, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return d, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	amount, err := parseMoney(args[0])
	if err != nil {
		return err
	}
	day, err := parseDay(flagAddDate)
	if err != nil {
		return err
	}
	t := model.Transaction{
		Date:     day,
		Kind:     model.KindExpense,
		Category: locale.Canonical(flagAddCategory),
		Amount:   amount,
		Note:     flagAddNote,
	}
	if flagAddIncome {
		t.Kind = model.KindIncome
		if !cmd.Flags().Changed("category") {
			t.Category = model.CategoryIncome
		}
	}
	return withBudget(cmd, func(ctx context.Context, b *budget) error {
		if err := b.ctrl.AddTransaction(ctx, t); err != nil {
			return err
		}
		fmt.Println("  " + cli.Income(b.tr.T("Entry saved!")))
		return nil
	})
}

func runEntries(cmd *cobra.Command, _ []string) error {
	view, ok := pipeline.ParseEntryView(flagEntriesView)
	if !ok {
		return fmt.Errorf("unknown view %q", flagEntriesView)
	}
	return withBudget(cmd, func(ctx context.Context, b *budget) error {
		page, err := b.ctrl.Entries(ctx, view, flagEntriesKey)
		if err != nil {
			return err
		}
		tr := b.tr

		fmt.Println()
		fmt.Println(cli.RenderTitle(tr.T("Entries for %s", page.Key)))
		fmt.Println()
		if len(page.Rows) == 0 {
			fmt.Println("  " + cli.Muted(tr.T("No entries.")))
			return nil
		}

		var income, expense decimal.Decimal
		rows := make([][]string, 0, len(page.Rows)+2)
		for _, r := range page.Rows {
			amount := cli.Expense(tr.Money(r.Amount))
			if r.Kind == model.KindIncome {
				amount = cli.Income(tr.Money(r.Amount))
				income = income.Add(r.Amount)
			} else {
				expense = expense.Add(r.Amount)
			}
			rows = append(rows, []string{
				cli.FormatDate(r.Date),
				tr.Kind(r.Kind),
				tr.Category(r.Category),
				amount,
				cli.Truncate(r.Note, 40),
			})
		}
		net := income.Sub(expense)
		rows = append(rows, []string{"---"}, []string{tr.T("Net"), "", "", cli.Signed(net, cli.FormatDelta(tr, net)), ""})

		fmt.Print(cli.RenderTable(cli.Table{
			Headers:   []string{tr.T("Date"), tr.T("Type"), tr.T("Category"), tr.T("Amount"), tr.T("Note")},
			Rows:      rows,
			LeftAlign: map[int]bool{1: true, 2: true, 4: true},
		}))

		if len(page.Periods) > 1 {
			keys := make([]string, 0, 6)
			for _, p := range page.Periods[:min(len(page.Periods), 6)] {
				keys = append(keys, p.Key)
			}
			progress("\n  Other groups: %s\n", strings.Join(keys, ", "))
		}
		return nil
	})
}
