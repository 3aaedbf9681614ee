package aggregation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/insights/internal/domain/entity"
	"github.com/budget-tracker/insights/internal/domain/valueobject"
)

// DefaultTopN is the number of categories returned by TopRecurring when n is not positive.
const DefaultTopN = 5

// TopRecurring ranks categories of recurring expenses by summed amount, highest first,
// and returns at most n of them. Ties keep the order in which categories were first
// encountered. Non-numeric amounts are skipped; a category whose amounts are all
// non-numeric is omitted.
func TopRecurring(expenses []entity.Entry, n int) []entity.RankedCategory {
	if n <= 0 {
		n = DefaultTopN
	}

	var order []string
	sums := map[string]decimal.Decimal{}
	valid := map[string]bool{}
	for _, e := range expenses {
		if !e.RecurringMonthly {
			continue
		}
		key := valueobject.AggregationKey(e.Category, e.CustomCategory)
		if _, seen := sums[key]; !seen {
			order = append(order, key)
			sums[key] = decimal.Zero
		}
		if !e.HasValidAmount() {
			continue
		}
		sums[key] = sums[key].Add(e.Amount.Decimal)
		valid[key] = true
	}

	ranked := make([]entity.RankedCategory, 0, len(order))
	for _, key := range order {
		if !valid[key] {
			continue
		}
		ranked = append(ranked, entity.RankedCategory{Category: key, Amount: sums[key]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
