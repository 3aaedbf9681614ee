package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/insights/internal/application/adapter"
	"github.com/budget-tracker/insights/internal/domain/entity"
)

type fakeSource struct {
	mu       sync.Mutex
	income   []entity.Entry
	expenses []entity.Entry
	savings  []entity.Entry
	budgets  []entity.Budget
	goals    []entity.Goal
	failing  map[Resource]error
	calls    map[Resource]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		failing: map[Resource]error{},
		calls:   map[Resource]int{},
	}
}

func (f *fakeSource) record(r Resource) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[r]++
	return f.failing[r]
}

func (f *fakeSource) ListIncome(_ context.Context, _ *entity.Session) ([]entity.Entry, error) {
	if err := f.record(ResourceIncome); err != nil {
		return nil, err
	}
	return f.income, nil
}

func (f *fakeSource) ListExpenses(_ context.Context, _ *entity.Session) ([]entity.Entry, error) {
	if err := f.record(ResourceExpenses); err != nil {
		return nil, err
	}
	return f.expenses, nil
}

func (f *fakeSource) ListSavings(_ context.Context, _ *entity.Session) ([]entity.Entry, error) {
	if err := f.record(ResourceSavings); err != nil {
		return nil, err
	}
	return f.savings, nil
}

func (f *fakeSource) ListBudgets(_ context.Context, _ *entity.Session) ([]entity.Budget, error) {
	if err := f.record(ResourceBudgets); err != nil {
		return nil, err
	}
	return f.budgets, nil
}

func (f *fakeSource) ListGoals(_ context.Context, _ *entity.Session) ([]entity.Goal, error) {
	if err := f.record(ResourceGoals); err != nil {
		return nil, err
	}
	return f.goals, nil
}

type memoryCache struct {
	mu     sync.Mutex
	items  map[string][]byte
	getErr error
	setErr error
	hits   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	payload, ok := c.items[key]
	if !ok {
		return nil, adapter.ErrCacheMiss
	}
	c.hits++
	return payload, nil
}

func (c *memoryCache) Set(_ context.Context, key string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.items[key] = payload
	return nil
}

var errUpstreamDown = errors.New("upstream down")

func testSession() *entity.Session {
	return entity.NewGuestSession(time.Hour)
}

func entry(kind entity.EntryKind, id, date, amount, category string, recurring bool) entity.Entry {
	e := entity.Entry{
		ID:               id,
		Kind:             kind,
		Date:             date,
		Category:         category,
		RecurringMonthly: recurring,
	}
	if d, err := decimal.NewFromString(amount); err == nil {
		e.Amount = decimal.NewNullDecimal(d)
	}
	return e
}

func budget(id, date, amount, category string, recurring bool) entity.Budget {
	return entity.Budget{
		ID:               id,
		Date:             date,
		Amount:           decimal.NewNullDecimal(decimal.RequireFromString(amount)),
		Category:         category,
		RecurringMonthly: recurring,
	}
}
