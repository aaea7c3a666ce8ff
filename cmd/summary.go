package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetboard/internal/cli"
	"github.com/theirongolddev/budgetboard/internal/pipeline"
)

var (
	flagPeriod      string
	flagGranularity string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Balance, suggested daily spend and where the money went",
	RunE:  runSummary,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, summaryCmd} {
		c.Flags().StringVar(&flagPeriod, "period", "month", "Chart period: month, 3m, year or all")
		c.Flags().StringVar(&flagGranularity, "granularity", "daily", "Spending buckets: daily, weekly, monthly or yearly")
	}
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	period, ok := pipeline.ParsePeriod(flagPeriod)
	if !ok {
		return fmt.Errorf("unknown period %q", flagPeriod)
	}
	gran, ok := pipeline.ParseGranularity(flagGranularity)
	if !ok {
		return fmt.Errorf("unknown granularity %q", flagGranularity)
	}

	return withBudget(cmd, func(ctx context.Context, b *budget) error {
		d, err := b.ctrl.Dashboard(ctx, period, gran)
		if err != nil {
			return err
		}
		tr := b.tr
		m := d.Metrics

		fmt.Println()
		fmt.Println(cli.RenderTitle("BUDGET  " + tr.MonthYear(d.Today)))
		fmt.Println()

		rows := [][]string{
			{tr.T("Income"), cli.Income(tr.Money(m.Income))},
			{tr.T("Expense"), cli.Expense(tr.Money(m.Expense))},
			{tr.T("Balance"), cli.Signed(m.Balance, tr.Money(m.Balance))},
			{"---"},
			{tr.T("Total Fixed Expenses"), tr.Money(m.TotalFixed)},
			{tr.T("Balance After Fixed Expenses"), cli.Signed(m.RemainingAfterFixed, tr.Money(m.RemainingAfterFixed))},
			{"---"},
			{tr.T("Suggested Daily Spend"), tr.Money(m.SuggestedDaily)},
			{tr.T("Days Until Payday"), cli.FormatDays(tr, m.DaysUntilPayday) + "  " + cli.Muted(cli.FormatDate(m.PaydayTarget))},
		}
		fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))
		fmt.Println()
		fmt.Println("  " + tr.T("Smart Suggestion") + ": " + tr.Advice(d.Advice))
		fmt.Println()

		fmt.Printf("  %s  %s\n\n", tr.T("Expense Distribution by Category"), cli.Muted(tr.T(d.Period.String())))
		if len(d.Categories) == 0 {
			fmt.Println("  " + cli.Muted(tr.T("No data for the selected period.")))
			return nil
		}
		labelW := 0
		for _, c := range d.Categories {
			labelW = max(labelW, lipgloss.Width(tr.Category(c.Category)))
		}
		peak := d.Categories[0].Total.InexactFloat64()
		for _, c := range d.Categories {
			fmt.Printf("%s %s %s\n",
				cli.RenderHorizontalBar(tr.Category(c.Category), labelW, c.Total.InexactFloat64(), peak, 30),
				tr.Money(c.Total), cli.Muted(cli.FormatPercent(c.SharePercent)))
		}

		if len(d.Spending) > 1 {
			values := make([]float64, len(d.Spending))
			for i, p := range d.Spending {
				values[i] = p.Total.InexactFloat64()
			}
			fmt.Printf("\n  %s (%s)  %s\n", tr.T("Spending Over Time"), tr.T(d.Granularity.String()), cli.RenderSparkline(values))
		}
		fmt.Println()
		return nil
	})
}
