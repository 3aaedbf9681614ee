package dashboard

import (
	"context"
	"fmt"

	"github.com/budget-tracker/insights/internal/application/usecase/aggregation"
	"github.com/budget-tracker/insights/internal/domain/entity"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
)

// GetOverviewInput represents the input for the period overview.
type GetOverviewInput struct {
	Session     *entity.Session
	Granularity string
	Year        int
}

// GetOverviewOutput represents the output of the period overview.
type GetOverviewOutput struct {
	Granularity   aggregation.Granularity
	Year          int
	Periods       []entity.PeriodTotals
	Rejected      []entity.RejectedEntry
	FailedSources []string
}

type overviewInputs struct {
	Income      []entity.Entry
	Expenses    []entity.Entry
	Savings     []entity.Entry
	Granularity aggregation.Granularity
}

// GetOverviewUseCase rolls income, expenses and savings up into periods.
type GetOverviewUseCase struct {
	loader *SnapshotLoader
	memo   *Memoizer
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(loader *SnapshotLoader, memo *Memoizer) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		loader: loader,
		memo:   memo,
	}
}

// Execute computes per-period totals at the requested granularity.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error) {
	if input.Granularity == "" {
		input.Granularity = string(aggregation.GranularityMonthly)
	}
	granularity, err := aggregation.ParseGranularity(input.Granularity)
	if err != nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidGranularity,
			"granularity must be: monthly, quarterly, or yearly",
			err,
		)
	}
	year, err := resolveYear(input.Year)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.loader.Load(ctx, input.Session, ResourceIncome, ResourceExpenses, ResourceSavings)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	inputs := overviewInputs{
		Income:      snapshot.Income,
		Expenses:    snapshot.Expenses,
		Savings:     snapshot.Savings,
		Granularity: granularity,
	}
	result, err := remember(ctx, uc.memo, opOverview, year, inputs, func() (aggregation.OverviewResult, error) {
		return aggregation.Overview(aggregation.OverviewInput{
			Income:      inputs.Income,
			Expenses:    inputs.Expenses,
			Savings:     inputs.Savings,
			Granularity: inputs.Granularity,
			Year:        year,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute overview: %w", err)
	}

	return &GetOverviewOutput{
		Granularity:   granularity,
		Year:          year,
		Periods:       result.Periods,
		Rejected:      result.Rejected,
		FailedSources: snapshot.FailedSources,
	}, nil
}
