package aggregation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/insights/internal/domain/entity"
	"github.com/budget-tracker/insights/internal/domain/valueobject"
)

var hundred = decimal.NewFromInt(100)

// BudgetMatchResult is the output of MatchBudgets.
type BudgetMatchResult struct {
	Comparisons []entity.BudgetComparison `json:"comparisons"`
	Rejected    []entity.RejectedEntry    `json:"rejected"`
}

// matchableExpense is an expense reduced to what matching needs.
type matchableExpense struct {
	key       string
	start     time.Month
	recurring bool
	amount    decimal.Decimal
}

// covers reports whether the expense counts toward budget month m. A recurring expense
// covers every month from its start onward; a one-off covers only its start month.
func (e matchableExpense) covers(m time.Month) bool {
	if e.recurring {
		return e.start <= m
	}
	return e.start == m
}

// MatchBudgets computes actual spend for every (budget, applicable month) pair.
//
// Budget months come from the budget's own recurrence flag. Budgets or expenses with
// unparseable dates are reported in Rejected; those with non-numeric amounts are
// skipped silently.
func MatchBudgets(budgets []entity.Budget, expenses []entity.Entry) BudgetMatchResult {
	result := BudgetMatchResult{
		Comparisons: []entity.BudgetComparison{},
		Rejected:    []entity.RejectedEntry{},
	}

	candidates := make([]matchableExpense, 0, len(expenses))
	for _, e := range expenses {
		start, err := startMonth(e)
		if err != nil {
			result.Rejected = append(result.Rejected, rejected(e.ID, err))
			continue
		}
		if !e.HasValidAmount() {
			continue
		}
		candidates = append(candidates, matchableExpense{
			key:       valueobject.AggregationKey(e.Category, e.CustomCategory),
			start:     start,
			recurring: e.RecurringMonthly,
			amount:    e.Amount.Decimal,
		})
	}

	for _, b := range budgets {
		months, err := projectEntry(b.AsEntry())
		if err != nil {
			result.Rejected = append(result.Rejected, rejected(b.ID, err))
			continue
		}
		if !b.Amount.Valid {
			continue
		}

		key := valueobject.AggregationKey(b.Category, b.CustomCategory)
		for _, m := range months {
			actual := decimal.Zero
			for _, c := range candidates {
				if valueobject.SameCategory(c.key, key) && c.covers(m) {
					actual = actual.Add(c.amount)
				}
			}
			result.Comparisons = append(result.Comparisons, entity.BudgetComparison{
				BudgetID:       b.ID,
				Category:       key,
				Month:          valueobject.MonthLabel(m),
				BudgetAmount:   b.Amount.Decimal,
				ActualAmount:   actual,
				PercentageUsed: PercentageOf(actual, b.Amount.Decimal),
				OverBudget:     actual.GreaterThan(b.Amount.Decimal),
			})
		}
	}

	return result
}

// PercentageOf returns part / whole * 100 without clamping. A zero whole yields zero.
func PercentageOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}
