package dashboard

import (
	"context"
	"fmt"

	"github.com/budget-tracker/insights/internal/application/usecase/aggregation"
	"github.com/budget-tracker/insights/internal/domain/entity"
)

// GetTimeSeriesInput represents the input for the income/expense time series.
type GetTimeSeriesInput struct {
	Session *entity.Session
	Year    int
}

// GetTimeSeriesOutput represents the output of the time series.
type GetTimeSeriesOutput struct {
	Year          int
	Points        []entity.MonthPoint
	Rejected      []entity.RejectedEntry
	FailedSources []string
}

type timeSeriesInputs struct {
	Income   []entity.Entry
	Expenses []entity.Entry
}

// GetTimeSeriesUseCase returns income, expenses and net for each month of the year.
type GetTimeSeriesUseCase struct {
	loader *SnapshotLoader
	memo   *Memoizer
}

// NewGetTimeSeriesUseCase creates a new GetTimeSeriesUseCase instance.
func NewGetTimeSeriesUseCase(loader *SnapshotLoader, memo *Memoizer) *GetTimeSeriesUseCase {
	return &GetTimeSeriesUseCase{
		loader: loader,
		memo:   memo,
	}
}

// Execute computes the twelve month points.
func (uc *GetTimeSeriesUseCase) Execute(ctx context.Context, input GetTimeSeriesInput) (*GetTimeSeriesOutput, error) {
	year, err := resolveYear(input.Year)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.loader.Load(ctx, input.Session, ResourceIncome, ResourceExpenses)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	inputs := timeSeriesInputs{Income: snapshot.Income, Expenses: snapshot.Expenses}
	result, err := remember(ctx, uc.memo, opTimeSeries, year, inputs, func() (aggregation.TimeSeriesResult, error) {
		return aggregation.TimeSeries(inputs.Income, inputs.Expenses), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute time series: %w", err)
	}

	return &GetTimeSeriesOutput{
		Year:          year,
		Points:        result.Points,
		Rejected:      result.Rejected,
		FailedSources: snapshot.FailedSources,
	}, nil
}
