package dashboard

import (
	"context"
	"fmt"

	"github.com/budget-tracker/insights/internal/application/usecase/aggregation"
	"github.com/budget-tracker/insights/internal/domain/entity"
)

// GetGoalProgressInput represents the input for computing goal progress.
type GetGoalProgressInput struct {
	Session *entity.Session
	// Kind optionally keeps only savings or repayment goals.
	Kind entity.GoalKind
}

// GetGoalProgressOutput represents the output of goal progress.
type GetGoalProgressOutput struct {
	Goals         []entity.GoalProgress
	FailedSources []string
}

// GetGoalProgressUseCase computes progress for savings and repayment goals.
type GetGoalProgressUseCase struct {
	loader *SnapshotLoader
	memo   *Memoizer
}

// NewGetGoalProgressUseCase creates a new GetGoalProgressUseCase instance.
func NewGetGoalProgressUseCase(loader *SnapshotLoader, memo *Memoizer) *GetGoalProgressUseCase {
	return &GetGoalProgressUseCase{
		loader: loader,
		memo:   memo,
	}
}

// Execute computes progress for every goal of the session.
func (uc *GetGoalProgressUseCase) Execute(ctx context.Context, input GetGoalProgressInput) (*GetGoalProgressOutput, error) {
	snapshot, err := uc.loader.Load(ctx, input.Session, ResourceGoals)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}

	goals := snapshot.Goals
	if input.Kind != "" {
		filtered := make([]entity.Goal, 0, len(goals))
		for _, g := range goals {
			if g.Kind == input.Kind {
				filtered = append(filtered, g)
			}
		}
		goals = filtered
	}

	progress, err := remember(ctx, uc.memo, opGoalProgress, 0, goals, func() ([]entity.GoalProgress, error) {
		return aggregation.GoalsProgress(goals), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute goal progress: %w", err)
	}

	return &GetGoalProgressOutput{
		Goals:         progress,
		FailedSources: snapshot.FailedSources,
	}, nil
}
