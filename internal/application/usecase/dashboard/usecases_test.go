package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/insights/internal/domain/entity"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
)

func assertDashboardCode(t *testing.T, err error, want domainerror.DashboardErrorCode) {
	t.Helper()
	var dashErr *domainerror.DashboardError
	if !errors.As(err, &dashErr) {
		t.Fatalf("expected DashboardError, got %v", err)
	}
	if dashErr.Code != want {
		t.Errorf("expected code %s, got %s", want, dashErr.Code)
	}
}

func newTestDeps(source *fakeSource) (*SnapshotLoader, *Memoizer) {
	return NewSnapshotLoader(source), NewMemoizer(newMemoryCache())
}

func TestGetMonthlyBreakdownUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("recurring income is projected to year end", func(t *testing.T) {
		source := newFakeSource()
		source.income = []entity.Entry{
			entry(entity.EntryKindIncome, "i1", "2024-03-15", "1000", "Salary", true),
		}
		loader, memo := newTestDeps(source)

		out, err := NewGetMonthlyBreakdownUseCase(loader, memo).Execute(ctx, GetMonthlyBreakdownInput{
			Session: testSession(),
			Kind:    entity.EntryKindIncome,
			Month:   "Mar",
			Year:    2024,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for m := time.January; m <= time.December; m++ {
			want := decimal.Zero
			if m >= time.March {
				want = decimal.NewFromInt(1000)
			}
			if got := out.Breakdown.Month(m).Total; !got.Equal(want) {
				t.Errorf("%s: expected %s, got %s", m, want, got)
			}
		}
		if out.SelectedMonth == nil || *out.SelectedMonth != time.March {
			t.Errorf("expected selected month March, got %v", out.SelectedMonth)
		}
		if len(out.Series) != 1 || out.Series[0].Name != "salary" {
			t.Errorf("unexpected series: %+v", out.Series)
		}
		if source.calls[ResourceExpenses] != 0 {
			t.Error("expected expenses not to be fetched for income breakdown")
		}
	})

	t.Run("defaults to expenses and current year", func(t *testing.T) {
		restore := nowFunc
		nowFunc = func() time.Time { return time.Date(2031, 6, 1, 0, 0, 0, 0, time.UTC) }
		defer func() { nowFunc = restore }()

		source := newFakeSource()
		loader, memo := newTestDeps(source)

		out, err := NewGetMonthlyBreakdownUseCase(loader, memo).Execute(ctx, GetMonthlyBreakdownInput{Session: testSession()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Kind != entity.EntryKindExpense {
			t.Errorf("expected expense kind, got %s", out.Kind)
		}
		if out.Year != 2031 {
			t.Errorf("expected year 2031, got %d", out.Year)
		}
		if source.calls[ResourceExpenses] != 1 {
			t.Errorf("expected one expenses fetch, got %d", source.calls[ResourceExpenses])
		}
	})

	t.Run("upstream failure yields empty breakdown", func(t *testing.T) {
		source := newFakeSource()
		source.failing[ResourceExpenses] = errUpstreamDown
		loader, memo := newTestDeps(source)

		out, err := NewGetMonthlyBreakdownUseCase(loader, memo).Execute(ctx, GetMonthlyBreakdownInput{
			Session: testSession(),
			Year:    2024,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.FailedSources) != 1 || out.FailedSources[0] != "expenses" {
			t.Errorf("expected failed expenses source, got %v", out.FailedSources)
		}
		if len(out.Breakdown.Months) != 12 {
			t.Errorf("expected 12 months, got %d", len(out.Breakdown.Months))
		}
		if len(out.Series) != 0 {
			t.Errorf("expected empty series, got %v", out.Series)
		}
	})

	t.Run("invalid date is reported, not fatal", func(t *testing.T) {
		source := newFakeSource()
		source.expenses = []entity.Entry{
			entry(entity.EntryKindExpense, "e1", "not-a-date", "50", "rent", false),
			entry(entity.EntryKindExpense, "e2", "2024-01-02", "25", "rent", false),
		}
		loader, memo := newTestDeps(source)

		out, err := NewGetMonthlyBreakdownUseCase(loader, memo).Execute(ctx, GetMonthlyBreakdownInput{
			Session: testSession(),
			Year:    2024,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Rejected) != 1 || out.Rejected[0].EntryID != "e1" {
			t.Errorf("expected e1 rejected, got %+v", out.Rejected)
		}
		if got := out.Breakdown.Month(time.January).Total; !got.Equal(decimal.NewFromInt(25)) {
			t.Errorf("expected January total 25, got %s", got)
		}
	})

	tests := []struct {
		name  string
		input GetMonthlyBreakdownInput
		code  domainerror.DashboardErrorCode
	}{
		{name: "unknown kind", input: GetMonthlyBreakdownInput{Kind: "transfer"}, code: domainerror.ErrCodeInvalidEntryKind},
		{name: "unknown month", input: GetMonthlyBreakdownInput{Month: "Smarch"}, code: domainerror.ErrCodeInvalidMonthParam},
		{name: "bad year", input: GetMonthlyBreakdownInput{Year: 24}, code: domainerror.ErrCodeInvalidYear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, memo := newTestDeps(newFakeSource())
			tt.input.Session = testSession()
			_, err := NewGetMonthlyBreakdownUseCase(loader, memo).Execute(ctx, tt.input)
			assertDashboardCode(t, err, tt.code)
		})
	}
}

func TestGetBudgetComparisonUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource()
	source.budgets = []entity.Budget{budget("b1", "2024-03-01", "200", "Food", true)}
	source.expenses = []entity.Entry{
		entry(entity.EntryKindExpense, "e1", "2024-03-10", "150", "food", true),
		entry(entity.EntryKindExpense, "e2", "2024-05-10", "100", "FOOD", false),
	}
	loader, memo := newTestDeps(source)
	uc := NewGetBudgetComparisonUseCase(loader, memo)

	t.Run("all months", func(t *testing.T) {
		out, err := uc.Execute(ctx, GetBudgetComparisonInput{Session: testSession(), Year: 2024})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Comparisons) != 10 {
			t.Fatalf("expected 10 comparisons (Mar..Dec), got %d", len(out.Comparisons))
		}
		if out.OverBudget != 1 {
			t.Errorf("expected 1 month over budget, got %d", out.OverBudget)
		}
	})

	t.Run("single month", func(t *testing.T) {
		out, err := uc.Execute(ctx, GetBudgetComparisonInput{Session: testSession(), Month: "may", Year: 2024})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Comparisons) != 1 {
			t.Fatalf("expected 1 comparison, got %d", len(out.Comparisons))
		}
		c := out.Comparisons[0]
		if c.Month != "May" || !c.ActualAmount.Equal(decimal.NewFromInt(250)) || !c.OverBudget {
			t.Errorf("unexpected comparison: %+v", c)
		}
		if !c.PercentageUsed.Equal(decimal.NewFromInt(125)) {
			t.Errorf("expected 125%%, got %s", c.PercentageUsed)
		}
	})
}

func TestGetTopRecurringUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource()
	source.expenses = []entity.Entry{
		entry(entity.EntryKindExpense, "e1", "2024-01-01", "800", "rent", true),
		entry(entity.EntryKindExpense, "e2", "2024-01-01", "50", "gym", true),
		entry(entity.EntryKindExpense, "e3", "2024-01-01", "60", "phone", true),
		entry(entity.EntryKindExpense, "e4", "2024-01-01", "999", "holiday", false),
	}

	t.Run("default limit from configuration", func(t *testing.T) {
		loader, memo := newTestDeps(source)
		out, err := NewGetTopRecurringUseCase(loader, memo, 2).Execute(ctx, GetTopRecurringInput{Session: testSession(), Year: 2024})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Limit != 2 || len(out.Categories) != 2 {
			t.Fatalf("expected 2 categories, got %+v", out.Categories)
		}
		if out.Categories[0].Category != "rent" || out.Categories[1].Category != "phone" {
			t.Errorf("unexpected ranking: %+v", out.Categories)
		}
	})

	t.Run("limit out of range", func(t *testing.T) {
		for _, limit := range []int{-1, MaxTopRecurringLimit + 1} {
			loader, memo := newTestDeps(source)
			_, err := NewGetTopRecurringUseCase(loader, memo, 0).Execute(ctx, GetTopRecurringInput{Session: testSession(), Limit: limit})
			assertDashboardCode(t, err, domainerror.ErrCodeInvalidLimit)
		}
	})
}

func TestGetGoalProgressUseCase_Execute(t *testing.T) {
	source := newFakeSource()
	source.goals = []entity.Goal{
		{ID: "g1", Kind: entity.GoalKindSavings, GoalName: "Car", GoalAmount: "$1,000", CurrentAmount: "$250"},
		{ID: "g2", Kind: entity.GoalKindRepayment, GoalName: "Loan", GoalAmount: "0", CurrentAmount: "10"},
	}
	loader, memo := newTestDeps(source)
	uc := NewGetGoalProgressUseCase(loader, memo)

	out, err := uc.Execute(context.Background(), GetGoalProgressInput{Session: testSession()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Goals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(out.Goals))
	}
	if !out.Goals[0].Percentage.Equal(decimal.NewFromInt(25)) {
		t.Errorf("expected 25%%, got %s", out.Goals[0].Percentage)
	}
	if !out.Goals[1].Percentage.IsZero() {
		t.Errorf("expected 0%% for zero goal amount, got %s", out.Goals[1].Percentage)
	}

	filtered, err := uc.Execute(context.Background(), GetGoalProgressInput{Session: testSession(), Kind: entity.GoalKindRepayment})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filtered.Goals) != 1 || filtered.Goals[0].GoalID != "g2" {
		t.Errorf("expected only g2, got %+v", filtered.Goals)
	}
}

func TestGetOverviewUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource()
	source.income = []entity.Entry{entry(entity.EntryKindIncome, "i1", "2024-01-01", "3000", "salary", true)}
	source.expenses = []entity.Entry{entry(entity.EntryKindExpense, "e1", "2024-01-01", "1000", "rent", true)}
	source.savings = []entity.Entry{entry(entity.EntryKindSavings, "s1", "2024-04-01", "500", "emergency", false)}
	loader, memo := newTestDeps(source)
	uc := NewGetOverviewUseCase(loader, memo)

	t.Run("quarterly", func(t *testing.T) {
		out, err := uc.Execute(ctx, GetOverviewInput{Session: testSession(), Granularity: "quarterly", Year: 2024})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Periods) != 4 {
			t.Fatalf("expected 4 quarters, got %d", len(out.Periods))
		}
		q2 := out.Periods[1]
		if q2.Label != "Q2" {
			t.Errorf("expected Q2, got %s", q2.Label)
		}
		if !q2.Net.Equal(decimal.NewFromInt(5500)) {
			t.Errorf("expected Q2 net 5500, got %s", q2.Net)
		}
	})

	t.Run("yearly", func(t *testing.T) {
		out, err := uc.Execute(ctx, GetOverviewInput{Session: testSession(), Granularity: "yearly", Year: 2024})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Periods) != 1 || out.Periods[0].Label != "2024" {
			t.Fatalf("unexpected periods: %+v", out.Periods)
		}
		if !out.Periods[0].Net.Equal(decimal.NewFromInt(23500)) {
			t.Errorf("expected net 23500, got %s", out.Periods[0].Net)
		}
	})

	t.Run("invalid granularity", func(t *testing.T) {
		_, err := uc.Execute(ctx, GetOverviewInput{Session: testSession(), Granularity: "weekly"})
		assertDashboardCode(t, err, domainerror.ErrCodeInvalidGranularity)
	})
}

func TestGetTimeSeriesUseCase_Execute(t *testing.T) {
	source := newFakeSource()
	source.income = []entity.Entry{entry(entity.EntryKindIncome, "i1", "2024-06-01", "100", "salary", true)}
	source.expenses = []entity.Entry{entry(entity.EntryKindExpense, "e1", "2024-06-01", "40", "food", false)}
	loader, memo := newTestDeps(source)

	out, err := NewGetTimeSeriesUseCase(loader, memo).Execute(context.Background(), GetTimeSeriesInput{Session: testSession(), Year: 2024})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Points) != 12 {
		t.Fatalf("expected 12 points, got %d", len(out.Points))
	}
	june, july := out.Points[5], out.Points[6]
	if june.Month != "Jun" || !june.Net.Equal(decimal.NewFromInt(60)) {
		t.Errorf("unexpected June point: %+v", june)
	}
	if !july.Net.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected July net 100, got %s", july.Net)
	}
}
