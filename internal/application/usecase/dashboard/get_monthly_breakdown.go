package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/budget-tracker/insights/internal/application/usecase/aggregation"
	"github.com/budget-tracker/insights/internal/domain/entity"
)

// GetMonthlyBreakdownInput represents the input for getting the monthly breakdown.
type GetMonthlyBreakdownInput struct {
	Session *entity.Session
	Kind    entity.EntryKind
	// Month optionally narrows the category series to one month ("Mar", "march", "3").
	Month string
	Year  int
}

// GetMonthlyBreakdownOutput represents the output of getting the monthly breakdown.
type GetMonthlyBreakdownOutput struct {
	Kind          entity.EntryKind
	Year          int
	SelectedMonth *time.Month
	Breakdown     *entity.MonthlyBreakdown
	Series        []entity.NameValue
	Rejected      []entity.RejectedEntry
	FailedSources []string
}

// GetMonthlyBreakdownUseCase projects recurring entries and totals them per month and category.
type GetMonthlyBreakdownUseCase struct {
	loader *SnapshotLoader
	memo   *Memoizer
}

// NewGetMonthlyBreakdownUseCase creates a new GetMonthlyBreakdownUseCase instance.
func NewGetMonthlyBreakdownUseCase(loader *SnapshotLoader, memo *Memoizer) *GetMonthlyBreakdownUseCase {
	return &GetMonthlyBreakdownUseCase{
		loader: loader,
		memo:   memo,
	}
}

// Execute builds the monthly breakdown for the requested entry kind.
func (uc *GetMonthlyBreakdownUseCase) Execute(ctx context.Context, input GetMonthlyBreakdownInput) (*GetMonthlyBreakdownOutput, error) {
	if input.Kind == "" {
		input.Kind = entity.EntryKindExpense
	}
	resource, err := resourceForKind(input.Kind)
	if err != nil {
		return nil, err
	}
	month, err := parseMonthParam(input.Month)
	if err != nil {
		return nil, err
	}
	year, err := resolveYear(input.Year)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.loader.Load(ctx, input.Session, resource)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	entries := entriesOf(snapshot, input.Kind)

	result, err := remember(ctx, uc.memo, opMonthlyBreakdown, year, entries, func() (aggregation.MonthlyBreakdownResult, error) {
		return aggregation.AggregateMonthly(entries), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate entries: %w", err)
	}

	return &GetMonthlyBreakdownOutput{
		Kind:          input.Kind,
		Year:          year,
		SelectedMonth: month,
		Breakdown:     result.Breakdown,
		Series:        aggregation.CategorySeries(result.Breakdown, month),
		Rejected:      result.Rejected,
		FailedSources: snapshot.FailedSources,
	}, nil
}
