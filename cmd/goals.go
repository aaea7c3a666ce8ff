package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetboard/internal/cli"
	"github.com/theirongolddev/budgetboard/internal/goals"
	"github.com/theirongolddev/budgetboard/internal/model"
	"github.com/theirongolddev/budgetboard/internal/session"
)

var (
	flagGoalEmoji     string
	flagGoalDate      string
	flagGoalFrequency string
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Manage saving goals",
	RunE:  runGoalsList,
}

var goalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every goal with its progress",
	RunE:  runGoalsList,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add NAME TARGET",
	Short: "Create a saving goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsAdd,
}

var goalsSaveCmd = &cobra.Command{
	Use:   "save NAME AMOUNT",
	Short: "Move money into a goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsSave,
}

var goalsRemoveCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm"},
	Short:   "Delete a goal",
	Args:    cobra.ExactArgs(1),
	RunE:    runGoalsRemove,
}

func init() {
	goalsAddCmd.Flags().StringVar(&flagGoalEmoji, "emoji", model.DefaultEmoji, "Icon")
	goalsAddCmd.Flags().StringVar(&flagGoalDate, "by", "", "Target date as YYYY-MM-DD")
	goalsAddCmd.Flags().StringVar(&flagGoalFrequency, "every", "monthly", "Saving frequency: daily, weekly or monthly")
	_ = goalsAddCmd.MarkFlagRequired("by")

	goalsCmd.AddCommand(goalsListCmd, goalsAddCmd, goalsSaveCmd, goalsRemoveCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoalsList(cmd *cobra.Command, _ []string) error {
	return withBudget(cmd, func(ctx context.Context, b *budget) error {
		views, err := b.ctrl.Goals(ctx)
		if err != nil {
			return err
		}
		tr := b.tr
		if len(views) == 0 {
			fmt.Println("\n  " + tr.T("No saving goals yet. Add your first goal!"))
			return nil
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle(tr.T("Saving Goals")))
		for _, v := range views {
			g := v.Goal
			fmt.Printf("\n  %s %s\n", g.Emoji, g.Name)
			fmt.Printf("    %s / %s\n", tr.Money(g.CurrentSaved), tr.Money(g.TargetAmount))
			fmt.Printf("    %s\n", cli.RenderProgressBar(v.ProgressPercent, 30))

			status := tr.GoalStatus(v.Status)
			switch v.Status.Kind {
			case goals.StatusReached:
				status = cli.Income(status)
			case goals.StatusOverdue, goals.StatusInvalidDate:
				status = cli.Expense(status)
			}
			fmt.Printf("    %s  %s\n", status, cli.Muted(tr.T("Target Date")+" "+cli.FormatDate(g.TargetDate)))
			if v.Status.Kind == goals.StatusRemaining {
				fmt.Printf("    %s / %s\n", tr.Money(g.RequiredPerFrequency), tr.FrequencyUnit(g.Frequency))
			}
		}
		fmt.Println()
		return nil
	})
}

func runGoalsAdd(cmd *cobra.Command, args []string) error {
	target, err := parseMoney(args[1])
	if err != nil {
		return err
	}
	day, err := parseDay(flagGoalDate)
	if err != nil {
		return err
	}
	in := session.GoalInput{
		Name:       args[0],
		Target:     target,
		Emoji:      flagGoalEmoji,
		TargetDate: day,
		Frequency:  model.ParseFrequency(flagGoalFrequency),
	}
	return withBudget(cmd, func(ctx context.Context, b *budget) error {
		if err := b.ctrl.AddGoal(ctx, in); err != nil {
			return err
		}
		fmt.Println("  " + cli.Income(b.tr.T("Goal added successfully!")))
		return nil
	})
}

func runGoalsSave(cmd *cobra.Command, args []string) error {
	amount, err := parseMoney(args[1])
	if err != nil {
		return err
	}
	return withBudget(cmd, func(ctx context.Context, b *budget) error {
		if err := b.ctrl.SaveToGoal(ctx, args[0], amount); err != nil {
			return err
		}
		fmt.Println("  " + cli.Income(b.tr.T("Saved %s to %s", b.tr.Money(amount), args[0])))
		return nil
	})
}

func runGoalsRemove(cmd *cobra.Command, args []string) error {
	return withBudget(cmd, func(ctx context.Context, b *budget) error {
		if err := b.ctrl.RemoveGoal(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("  " + b.tr.T("Deleted %s", args[0]))
		return nil
	})
}
