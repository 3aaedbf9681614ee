package aggregation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/insights/internal/domain/entity"
	"github.com/budget-tracker/insights/internal/domain/valueobject"
)

// MonthlyBreakdownResult is the output of AggregateMonthly.
type MonthlyBreakdownResult struct {
	Breakdown *entity.MonthlyBreakdown `json:"breakdown"`
	Rejected  []entity.RejectedEntry   `json:"rejected"`
}

// NewMonthlyBreakdown returns an empty breakdown with all twelve months present.
func NewMonthlyBreakdown() *entity.MonthlyBreakdown {
	b := &entity.MonthlyBreakdown{Months: make([]entity.MonthTotals, 12)}
	for i := range b.Months {
		m := time.Month(i + 1)
		b.Months[i] = entity.MonthTotals{
			Month:          m,
			Label:          valueobject.MonthLabel(m),
			CategoryTotals: map[string]decimal.Decimal{},
			Total:          decimal.Zero,
		}
	}
	return b
}

// AggregateMonthly reduces entries, projected across their applicable months, into a
// per-month, per-category breakdown.
//
// Entries whose amount is not numeric contribute nothing and are not reported.
// Entries whose date cannot be projected are reported in Rejected.
func AggregateMonthly(entries []entity.Entry) MonthlyBreakdownResult {
	result := MonthlyBreakdownResult{
		Breakdown: NewMonthlyBreakdown(),
		Rejected:  []entity.RejectedEntry{},
	}

	for _, e := range entries {
		months, err := projectEntry(e)
		if err != nil {
			result.Rejected = append(result.Rejected, rejected(e.ID, err))
			continue
		}
		if !e.HasValidAmount() {
			continue
		}

		key := valueobject.AggregationKey(e.Category, e.CustomCategory)
		for _, m := range months {
			totals := &result.Breakdown.Months[int(m)-1]
			totals.CategoryTotals[key] = totals.CategoryTotals[key].Add(e.Amount.Decimal)
			totals.Total = totals.Total.Add(e.Amount.Decimal)
		}
	}

	return result
}

// CategorySeries flattens one month of a breakdown, or the whole year when month is
// nil, into {name, value} pairs ordered by value descending then name.
func CategorySeries(b *entity.MonthlyBreakdown, month *time.Month) []entity.NameValue {
	sums := map[string]decimal.Decimal{}
	for _, totals := range b.Months {
		if month != nil && totals.Month != *month {
			continue
		}
		for key, amount := range totals.CategoryTotals {
			sums[key] = sums[key].Add(amount)
		}
	}

	series := make([]entity.NameValue, 0, len(sums))
	for name, value := range sums {
		series = append(series, entity.NameValue{Name: name, Value: value})
	}
	sort.Slice(series, func(i, j int) bool {
		if !series[i].Value.Equal(series[j].Value) {
			return series[i].Value.GreaterThan(series[j].Value)
		}
		return series[i].Name < series[j].Name
	})
	return series
}
