package aggregation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/insights/internal/domain/entity"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
	"github.com/budget-tracker/insights/internal/domain/valueobject"
)

// Granularity represents the period size of an overview.
type Granularity string

const (
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
	GranularityYearly    Granularity = "yearly"
)

// ParseGranularity validates a granularity string.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case GranularityMonthly, GranularityQuarterly, GranularityYearly:
		return g, nil
	default:
		return "", fmt.Errorf("%w: %q", domainerror.ErrInvalidGranularity, s)
	}
}

// OverviewInput holds the entry lists rolled up by Overview.
type OverviewInput struct {
	Income      []entity.Entry
	Expenses    []entity.Entry
	Savings     []entity.Entry
	Granularity Granularity
	Year        int
}

// OverviewResult is the output of Overview.
type OverviewResult struct {
	Periods  []entity.PeriodTotals `json:"periods"`
	Rejected []entity.RejectedEntry `json:"rejected"`
}

// Overview rolls projected income, expenses and savings up into monthly, quarterly or
// yearly periods with net = income - expenses - savings.
func Overview(in OverviewInput) (OverviewResult, error) {
	if _, err := ParseGranularity(string(in.Granularity)); err != nil {
		return OverviewResult{}, err
	}

	income := AggregateMonthly(in.Income)
	expenses := AggregateMonthly(in.Expenses)
	savings := AggregateMonthly(in.Savings)

	result := OverviewResult{Rejected: []entity.RejectedEntry{}}
	result.Rejected = append(result.Rejected, income.Rejected...)
	result.Rejected = append(result.Rejected, expenses.Rejected...)
	result.Rejected = append(result.Rejected, savings.Rejected...)

	var periods []entity.PeriodTotals
	index := map[string]int{}
	for m := time.January; m <= time.December; m++ {
		label := periodLabel(m, in.Granularity, in.Year)
		i, ok := index[label]
		if !ok {
			i = len(periods)
			index[label] = i
			periods = append(periods, entity.PeriodTotals{
				Label:    label,
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
				Savings:  decimal.Zero,
			})
		}
		p := &periods[i]
		p.Income = p.Income.Add(income.Breakdown.Month(m).Total)
		p.Expenses = p.Expenses.Add(expenses.Breakdown.Month(m).Total)
		p.Savings = p.Savings.Add(savings.Breakdown.Month(m).Total)
	}
	for i := range periods {
		periods[i].Net = periods[i].Income.Sub(periods[i].Expenses).Sub(periods[i].Savings)
	}

	result.Periods = periods
	return result, nil
}

func periodLabel(m time.Month, g Granularity, year int) string {
	switch g {
	case GranularityQuarterly:
		return valueobject.QuarterLabel(m)
	case GranularityYearly:
		return strconv.Itoa(year)
	default:
		return valueobject.MonthLabel(m)
	}
}

// TimeSeriesResult is the output of TimeSeries.
type TimeSeriesResult struct {
	Points   []entity.MonthPoint    `json:"points"`
	Rejected []entity.RejectedEntry `json:"rejected"`
}

// TimeSeries returns the twelve-month income/expenses/net series.
func TimeSeries(income, expenses []entity.Entry) TimeSeriesResult {
	in := AggregateMonthly(income)
	out := AggregateMonthly(expenses)

	points := make([]entity.MonthPoint, 12)
	for i := range points {
		m := time.Month(i + 1)
		incomeTotal := in.Breakdown.Month(m).Total
		expenseTotal := out.Breakdown.Month(m).Total
		points[i] = entity.MonthPoint{
			Month:    valueobject.MonthLabel(m),
			Income:   incomeTotal,
			Expenses: expenseTotal,
			Net:      incomeTotal.Sub(expenseTotal),
		}
	}

	return TimeSeriesResult{
		Points:   points,
		Rejected: append(in.Rejected, out.Rejected...),
	}
}
