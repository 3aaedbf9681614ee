// Package aggregation turns raw income, expense, budget and goal snapshots into the
// derived views served by the dashboard. Every function here is pure: outputs depend
// only on the inputs, nothing is cached or mutated, and calls are safe from any
// goroutine.
package aggregation

import (
	"fmt"
	"time"

	"github.com/budget-tracker/insights/internal/domain/entity"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
	"github.com/budget-tracker/insights/internal/domain/valueobject"
)

// ProjectMonths returns the months of the year an amount dated at date applies to.
//
// A recurring entry covers its start month through December; recurrence never wraps
// into the next year. A non-recurring entry covers only its start month.
func ProjectMonths(date string, recurring bool) ([]time.Month, error) {
	start, err := valueobject.ParseEntryMonth(date)
	if err != nil {
		return nil, err
	}

	if !recurring {
		return []time.Month{start}, nil
	}

	months := make([]time.Month, 0, int(time.December-start)+1)
	for m := start; m <= time.December; m++ {
		months = append(months, m)
	}
	return months, nil
}

// projectEntry projects an entry and wraps date failures in an AggregationError.
func projectEntry(e entity.Entry) ([]time.Month, error) {
	months, err := ProjectMonths(e.Date, e.RecurringMonthly)
	if err != nil {
		return nil, domainerror.NewAggregationError(
			domainerror.ErrCodeInvalidEntryDate,
			e.ID,
			"entry date cannot be projected",
			fmt.Errorf("%w: %w", domainerror.ErrInvalidEntryDate, err),
		)
	}
	return months, nil
}

// startMonth returns the entry's start month, wrapping failures like projectEntry.
func startMonth(e entity.Entry) (time.Month, error) {
	m, err := valueobject.ParseEntryMonth(e.Date)
	if err != nil {
		return 0, domainerror.NewAggregationError(
			domainerror.ErrCodeInvalidEntryDate,
			e.ID,
			"entry date cannot be projected",
			fmt.Errorf("%w: %w", domainerror.ErrInvalidEntryDate, err),
		)
	}
	return m, nil
}

func rejected(entryID string, err error) entity.RejectedEntry {
	return entity.RejectedEntry{EntryID: entryID, Reason: err.Error()}
}
