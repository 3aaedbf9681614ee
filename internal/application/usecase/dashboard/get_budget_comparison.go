package dashboard

import (
	"context"
	"fmt"

	"github.com/budget-tracker/insights/internal/application/usecase/aggregation"
	"github.com/budget-tracker/insights/internal/domain/entity"
	"github.com/budget-tracker/insights/internal/domain/valueobject"
)

// GetBudgetComparisonInput represents the input for comparing budgets with actual spend.
type GetBudgetComparisonInput struct {
	Session *entity.Session
	// Month optionally keeps only comparisons for one month.
	Month string
	Year  int
}

// GetBudgetComparisonOutput represents the output of the budget comparison.
type GetBudgetComparisonOutput struct {
	Year          int
	Comparisons   []entity.BudgetComparison
	OverBudget    int
	Rejected      []entity.RejectedEntry
	FailedSources []string
}

type budgetComparisonInputs struct {
	Budgets  []entity.Budget
	Expenses []entity.Entry
}

// GetBudgetComparisonUseCase matches budgets against the expenses they cover.
type GetBudgetComparisonUseCase struct {
	loader *SnapshotLoader
	memo   *Memoizer
}

// NewGetBudgetComparisonUseCase creates a new GetBudgetComparisonUseCase instance.
func NewGetBudgetComparisonUseCase(loader *SnapshotLoader, memo *Memoizer) *GetBudgetComparisonUseCase {
	return &GetBudgetComparisonUseCase{
		loader: loader,
		memo:   memo,
	}
}

// Execute produces one comparison per budget and applicable month.
func (uc *GetBudgetComparisonUseCase) Execute(ctx context.Context, input GetBudgetComparisonInput) (*GetBudgetComparisonOutput, error) {
	month, err := parseMonthParam(input.Month)
	if err != nil {
		return nil, err
	}
	year, err := resolveYear(input.Year)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.loader.Load(ctx, input.Session, ResourceBudgets, ResourceExpenses)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}

	inputs := budgetComparisonInputs{Budgets: snapshot.Budgets, Expenses: snapshot.Expenses}
	result, err := remember(ctx, uc.memo, opBudgetComparison, year, inputs, func() (aggregation.BudgetMatchResult, error) {
		return aggregation.MatchBudgets(inputs.Budgets, inputs.Expenses), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to match budgets: %w", err)
	}

	comparisons := result.Comparisons
	if month != nil {
		label := valueobject.MonthLabel(*month)
		filtered := make([]entity.BudgetComparison, 0, len(comparisons))
		for _, c := range comparisons {
			if c.Month == label {
				filtered = append(filtered, c)
			}
		}
		comparisons = filtered
	}

	over := 0
	for _, c := range comparisons {
		if c.OverBudget {
			over++
		}
	}

	return &GetBudgetComparisonOutput{
		Year:          year,
		Comparisons:   comparisons,
		OverBudget:    over,
		Rejected:      result.Rejected,
		FailedSources: snapshot.FailedSources,
	}, nil
}
