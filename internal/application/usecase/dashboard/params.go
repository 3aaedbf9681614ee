package dashboard

import (
	"strings"
	"time"

	"github.com/budget-tracker/insights/internal/domain/entity"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
	"github.com/budget-tracker/insights/internal/domain/valueobject"
)

// Operation names used in memo keys.
const (
	opMonthlyBreakdown = "monthly_breakdown"
	opBudgetComparison = "budget_comparison"
	opTopRecurring     = "top_recurring"
	opGoalProgress     = "goal_progress"
	opOverview         = "overview"
	opTimeSeries       = "time_series"
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

// resolveYear defaults an unset year to the current one.
func resolveYear(year int) (int, error) {
	if year == 0 {
		return nowFunc().Year(), nil
	}
	if year < 1000 || year > 9999 {
		return 0, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidYear,
			domainerror.ErrInvalidYear.Error(),
			domainerror.ErrInvalidYear,
		)
	}
	return year, nil
}

// parseMonthParam parses an optional month selector. An empty value selects the whole year.
func parseMonthParam(raw string) (*time.Month, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	m, err := valueobject.ParseMonthLabel(raw)
	if err != nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidMonthParam,
			domainerror.ErrInvalidMonthParam.Error(),
			err,
		)
	}
	return &m, nil
}

// resourceForKind maps an entry kind to the upstream collection holding it.
func resourceForKind(kind entity.EntryKind) (Resource, error) {
	switch kind {
	case entity.EntryKindIncome:
		return ResourceIncome, nil
	case entity.EntryKindExpense:
		return ResourceExpenses, nil
	case entity.EntryKindSavings:
		return ResourceSavings, nil
	default:
		return "", domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidEntryKind,
			domainerror.ErrInvalidEntryKind.Error(),
			domainerror.ErrInvalidEntryKind,
		)
	}
}

// entriesOf returns the snapshot collection for the given kind.
func entriesOf(s *Snapshot, kind entity.EntryKind) []entity.Entry {
	switch kind {
	case entity.EntryKindIncome:
		return s.Income
	case entity.EntryKindSavings:
		return s.Savings
	default:
		return s.Expenses
	}
}
