// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/budget-tracker/insights/internal/application/adapter"
	"github.com/budget-tracker/insights/internal/domain/entity"
)

// Resource names an upstream collection.
type Resource string

const (
	ResourceIncome   Resource = "income"
	ResourceExpenses Resource = "expenses"
	ResourceSavings  Resource = "savings"
	ResourceBudgets  Resource = "budgets"
	ResourceGoals    Resource = "goals"
)

// Snapshot holds the collections fetched for one request. Collections that failed to
// load are empty and listed in FailedSources.
type Snapshot struct {
	Income        []entity.Entry
	Expenses      []entity.Entry
	Savings       []entity.Entry
	Budgets       []entity.Budget
	Goals         []entity.Goal
	FailedSources []string
}

// Partial reports whether any requested collection failed to load.
func (s *Snapshot) Partial() bool {
	return len(s.FailedSources) > 0
}

// SnapshotLoader fetches the collections a view needs concurrently.
type SnapshotLoader struct {
	source adapter.EntrySource
}

// NewSnapshotLoader creates a new SnapshotLoader instance.
func NewSnapshotLoader(source adapter.EntrySource) *SnapshotLoader {
	return &SnapshotLoader{
		source: source,
	}
}

// Load fetches the requested resources in parallel. A failed fetch never fails the
// load: the collection defaults to empty and the failure is logged and recorded, so
// views render from whatever arrived. Only context cancellation is returned.
func (l *SnapshotLoader) Load(ctx context.Context, session *entity.Session, resources ...Resource) (*Snapshot, error) {
	snapshot := &Snapshot{
		Income:   []entity.Entry{},
		Expenses: []entity.Entry{},
		Savings:  []entity.Entry{},
		Budgets:  []entity.Budget{},
		Goals:    []entity.Goal{},
	}

	var mu sync.Mutex
	fail := func(resource Resource, err error) {
		slog.WarnContext(ctx, "Upstream fetch failed, defaulting to empty collection",
			"resource", string(resource),
			"session_type", string(session.Type),
			"error", err,
		)
		mu.Lock()
		snapshot.FailedSources = append(snapshot.FailedSources, string(resource))
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, resource := range resources {
		resource := resource
		g.Go(func() error {
			switch resource {
			case ResourceIncome:
				entries, err := l.source.ListIncome(gctx, session)
				if err != nil {
					fail(resource, err)
					return nil
				}
				snapshot.Income = entries
			case ResourceExpenses:
				entries, err := l.source.ListExpenses(gctx, session)
				if err != nil {
					fail(resource, err)
					return nil
				}
				snapshot.Expenses = entries
			case ResourceSavings:
				entries, err := l.source.ListSavings(gctx, session)
				if err != nil {
					fail(resource, err)
					return nil
				}
				snapshot.Savings = entries
			case ResourceBudgets:
				budgets, err := l.source.ListBudgets(gctx, session)
				if err != nil {
					fail(resource, err)
					return nil
				}
				snapshot.Budgets = budgets
			case ResourceGoals:
				goals, err := l.source.ListGoals(gctx, session)
				if err != nil {
					fail(resource, err)
					return nil
				}
				snapshot.Goals = goals
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Strings(snapshot.FailedSources)
	return snapshot, nil
}
