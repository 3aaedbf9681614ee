// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/budget-tracker/insights/internal/domain/entity"
)

// EntrySource fetches snapshots of a session's records from the upstream API.
// Implementations perform no aggregation and no retries.
type EntrySource interface {
	// ListIncome retrieves all income entries.
	ListIncome(ctx context.Context, session *entity.Session) ([]entity.Entry, error)

	// ListExpenses retrieves all expense entries.
	ListExpenses(ctx context.Context, session *entity.Session) ([]entity.Entry, error)

	// ListSavings retrieves all savings contributions.
	ListSavings(ctx context.Context, session *entity.Session) ([]entity.Entry, error)

	// ListBudgets retrieves all budgets.
	ListBudgets(ctx context.Context, session *entity.Session) ([]entity.Budget, error)

	// ListGoals retrieves savings and repayment goals.
	ListGoals(ctx context.Context, session *entity.Session) ([]entity.Goal, error)
}
