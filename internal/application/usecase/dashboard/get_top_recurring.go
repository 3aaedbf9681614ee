package dashboard

import (
	"context"
	"fmt"

	"github.com/budget-tracker/insights/internal/application/usecase/aggregation"
	"github.com/budget-tracker/insights/internal/domain/entity"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
)

// MaxTopRecurringLimit caps the requested ranking size.
const MaxTopRecurringLimit = 50

// GetTopRecurringInput represents the input for ranking recurring expense categories.
type GetTopRecurringInput struct {
	Session *entity.Session
	// Limit is the number of categories to return; zero uses the configured default.
	Limit int
	Year  int
}

// GetTopRecurringOutput represents the output of the ranking.
type GetTopRecurringOutput struct {
	Limit         int
	Categories    []entity.RankedCategory
	FailedSources []string
}

type topRecurringInputs struct {
	Expenses []entity.Entry
	Limit    int
}

// GetTopRecurringUseCase ranks categories by summed recurring expense amount.
type GetTopRecurringUseCase struct {
	loader       *SnapshotLoader
	memo         *Memoizer
	defaultLimit int
}

// NewGetTopRecurringUseCase creates a new GetTopRecurringUseCase instance.
func NewGetTopRecurringUseCase(loader *SnapshotLoader, memo *Memoizer, defaultLimit int) *GetTopRecurringUseCase {
	if defaultLimit <= 0 {
		defaultLimit = aggregation.DefaultTopN
	}
	return &GetTopRecurringUseCase{
		loader:       loader,
		memo:         memo,
		defaultLimit: defaultLimit,
	}
}

// Execute returns the top recurring expense categories.
func (uc *GetTopRecurringUseCase) Execute(ctx context.Context, input GetTopRecurringInput) (*GetTopRecurringOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = uc.defaultLimit
	}
	if limit < 0 || limit > MaxTopRecurringLimit {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidLimit,
			fmt.Sprintf("limit must be between 1 and %d", MaxTopRecurringLimit),
			domainerror.ErrInvalidLimit,
		)
	}
	year, err := resolveYear(input.Year)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.loader.Load(ctx, input.Session, ResourceExpenses)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	inputs := topRecurringInputs{Expenses: snapshot.Expenses, Limit: limit}
	ranked, err := remember(ctx, uc.memo, opTopRecurring, year, inputs, func() ([]entity.RankedCategory, error) {
		return aggregation.TopRecurring(inputs.Expenses, inputs.Limit), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rank categories: %w", err)
	}

	return &GetTopRecurringOutput{
		Limit:         limit,
		Categories:    ranked,
		FailedSources: snapshot.FailedSources,
	}, nil
}
