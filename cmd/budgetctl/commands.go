package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/budget-tracker/insights/internal/application/usecase/aggregation"
	"github.com/budget-tracker/insights/internal/domain/entity"
	"github.com/budget-tracker/insights/internal/domain/valueobject"
)

// commands returns every aggregation command writing its JSON result to out.
func commands(out io.Writer) []subcommands.Command {
	return []subcommands.Command{
		&breakdownCmd{out: out},
		&budgetsCmd{out: out},
		&topCmd{out: out},
		&goalsCmd{out: out},
		&overviewCmd{out: out},
		&seriesCmd{out: out},
	}
}

// fail prints err to stderr and returns the failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}

func parseMonthFlag(s string) (*time.Month, error) {
	if s == "" {
		return nil, nil
	}
	m, err := valueobject.ParseMonthLabel(s)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

type breakdownCmd struct {
	snapshotFile
	out   io.Writer
	kind  string
	month string
}

func (*breakdownCmd) Name() string     { return "breakdown" }
func (*breakdownCmd) Synopsis() string { return "per-month, per-category totals" }
func (*breakdownCmd) Usage() string {
	return `budgetctl breakdown [-f <snapshot>] [-kind expense|income|savings] [-month Mar]

  Projects recurring entries across the year and sums them per category and month.
  With -month, also prints the {name,value} series for that month.
`
}

func (c *breakdownCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.kind, "kind", string(entity.EntryKindExpense), "Entries to aggregate (expense, income, savings).")
	f.StringVar(&c.month, "month", "", "Three-letter month for the category series.")
}

func (c *breakdownCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, err := c.load()
	if err != nil {
		return fail(err)
	}
	month, err := parseMonthFlag(c.month)
	if err != nil {
		return fail(err)
	}

	var entries []entity.Entry
	switch entity.EntryKind(c.kind) {
	case entity.EntryKindExpense:
		entries = snap.Expenses
	case entity.EntryKindIncome:
		entries = snap.Income
	case entity.EntryKindSavings:
		entries = snap.Savings
	default:
		return fail(fmt.Errorf("unknown kind %q", c.kind))
	}

	result := aggregation.AggregateMonthly(entries)
	output := struct {
		aggregation.MonthlyBreakdownResult
		Series []entity.NameValue `json:"series"`
	}{
		MonthlyBreakdownResult: result,
		Series:                 aggregation.CategorySeries(result.Breakdown, month),
	}
	if err := writeJSON(c.out, output); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type budgetsCmd struct {
	snapshotFile
	out   io.Writer
	month string
}

func (*budgetsCmd) Name() string     { return "budgets" }
func (*budgetsCmd) Synopsis() string { return "compare budgets with actual spend" }
func (*budgetsCmd) Usage() string {
	return `budgetctl budgets [-f <snapshot>] [-month Mar]

  Pairs every budget with the expenses of the same category in each month it applies to.
`
}

func (c *budgetsCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.month, "month", "", "Only print comparisons for this three-letter month.")
}

func (c *budgetsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, err := c.load()
	if err != nil {
		return fail(err)
	}
	month, err := parseMonthFlag(c.month)
	if err != nil {
		return fail(err)
	}

	result := aggregation.MatchBudgets(snap.Budgets, snap.Expenses)
	if month != nil {
		label := valueobject.MonthLabel(*month)
		filtered := make([]entity.BudgetComparison, 0, len(result.Comparisons))
		for _, cmp := range result.Comparisons {
			if cmp.Month == label {
				filtered = append(filtered, cmp)
			}
		}
		result.Comparisons = filtered
	}
	if err := writeJSON(c.out, result); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type topCmd struct {
	snapshotFile
	out io.Writer
	n   int
}

func (*topCmd) Name() string     { return "top" }
func (*topCmd) Synopsis() string { return "rank categories by recurring monthly expense" }
func (*topCmd) Usage() string {
	return `budgetctl top [-f <snapshot>] [-n 5]
`
}

func (c *topCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.IntVar(&c.n, "n", 5, "Number of categories to print.")
}

func (c *topCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, err := c.load()
	if err != nil {
		return fail(err)
	}
	if c.n < 0 {
		return fail(fmt.Errorf("-n must not be negative, got %d", c.n))
	}
	if err := writeJSON(c.out, aggregation.TopRecurring(snap.Expenses, c.n)); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type goalsCmd struct {
	snapshotFile
	out  io.Writer
	kind string
}

func (*goalsCmd) Name() string     { return "goals" }
func (*goalsCmd) Synopsis() string { return "savings and repayment goal progress" }
func (*goalsCmd) Usage() string {
	return `budgetctl goals [-f <snapshot>] [-kind savings|repayment]
`
}

func (c *goalsCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.kind, "kind", "", "Only print goals of this kind.")
}

func (c *goalsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, err := c.load()
	if err != nil {
		return fail(err)
	}

	goals := snap.Goals
	if c.kind != "" {
		kind := entity.GoalKind(c.kind)
		if kind != entity.GoalKindSavings && kind != entity.GoalKindRepayment {
			return fail(fmt.Errorf("unknown goal kind %q", c.kind))
		}
		goals = make([]entity.Goal, 0, len(snap.Goals))
		for _, g := range snap.Goals {
			if g.Kind == kind {
				goals = append(goals, g)
			}
		}
	}
	if err := writeJSON(c.out, aggregation.GoalsProgress(goals)); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type overviewCmd struct {
	snapshotFile
	out         io.Writer
	granularity string
	year        int
}

func (*overviewCmd) Name() string     { return "overview" }
func (*overviewCmd) Synopsis() string { return "income, expenses, savings and net per period" }
func (*overviewCmd) Usage() string {
	return `budgetctl overview [-f <snapshot>] [-granularity monthly|quarterly|yearly] [-year 2024]
`
}

func (c *overviewCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.granularity, "granularity", string(aggregation.GranularityMonthly), "Period size (monthly, quarterly, yearly).")
	f.IntVar(&c.year, "year", time.Now().Year(), "Year used to label yearly periods.")
}

func (c *overviewCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, err := c.load()
	if err != nil {
		return fail(err)
	}
	granularity, err := aggregation.ParseGranularity(c.granularity)
	if err != nil {
		return fail(err)
	}

	result, err := aggregation.Overview(aggregation.OverviewInput{
		Income:      snap.Income,
		Expenses:    snap.Expenses,
		Savings:     snap.Savings,
		Granularity: granularity,
		Year:        c.year,
	})
	if err != nil {
		return fail(err)
	}
	if err := writeJSON(c.out, result); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type seriesCmd struct {
	snapshotFile
	out io.Writer
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "twelve-month income, expenses and net" }
func (*seriesCmd) Usage() string {
	return `budgetctl series [-f <snapshot>]
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
}

func (c *seriesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, err := c.load()
	if err != nil {
		return fail(err)
	}
	if err := writeJSON(c.out, aggregation.TimeSeries(snap.Income, snap.Expenses)); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
