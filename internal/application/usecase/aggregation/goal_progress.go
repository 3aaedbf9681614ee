package aggregation

import (
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/insights/internal/domain/entity"
	"github.com/budget-tracker/insights/internal/domain/valueobject"
)

// GoalProgress computes the progress of a single goal. Amounts that are not
// currency-like count as zero. Percentage is not clamped and may exceed 100 when the
// goal is overshot; DisplayPercentage is clamped to [0, 100] for progress bars.
func GoalProgress(goal entity.Goal) entity.GoalProgress {
	target := valueobject.ParseCurrencyLikeOrZero(goal.GoalAmount)
	current := valueobject.ParseCurrencyLikeOrZero(goal.CurrentAmount)
	percentage := PercentageOf(current, target)

	return entity.GoalProgress{
		GoalID:            goal.ID,
		GoalName:          goal.GoalName,
		Kind:              goal.Kind,
		Category:          goal.Category,
		GoalAmount:        target,
		CurrentAmount:     current,
		Percentage:        percentage,
		DisplayPercentage: clampPercentage(percentage),
		Outstanding:       target.Sub(current),
		Deadline:          goal.Deadline,
	}
}

// GoalsProgress computes progress for every goal, preserving input order.
func GoalsProgress(goals []entity.Goal) []entity.GoalProgress {
	progress := make([]entity.GoalProgress, len(goals))
	for i, g := range goals {
		progress[i] = GoalProgress(g)
	}
	return progress
}

func clampPercentage(p decimal.Decimal) decimal.Decimal {
	if p.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}
