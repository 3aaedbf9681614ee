// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedKey is the aggregation key for custom entries without a label.
const UncategorizedKey = "Uncategorized"

// MonthTotals holds per-category totals for one month.
type MonthTotals struct {
	Month          time.Month                 `json:"month"`
	Label          string                     `json:"label"`
	CategoryTotals map[string]decimal.Decimal `json:"category_totals"`
	Total          decimal.Decimal            `json:"total"`
}

// MonthlyBreakdown is the derived per-month, per-category view. It is always rebuilt
// from source entries, never patched.
type MonthlyBreakdown struct {
	Months []MonthTotals `json:"months"`
}

// Month returns the totals for the given month.
func (b *MonthlyBreakdown) Month(m time.Month) MonthTotals {
	return b.Months[int(m)-1]
}

// NameValue is the chart series shape for pie/bar breakdowns.
type NameValue struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// MonthPoint is the chart series shape for time-series views.
type MonthPoint struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// BudgetComparison is one (budget, applicable month) pair with its actual spend.
type BudgetComparison struct {
	BudgetID       string          `json:"budget_id"`
	Category       string          `json:"category"`
	Month          string          `json:"month"`
	BudgetAmount   decimal.Decimal `json:"budget_amount"`
	ActualAmount   decimal.Decimal `json:"actual_amount"`
	PercentageUsed decimal.Decimal `json:"percentage_used"`
	OverBudget     bool            `json:"over_budget"`
}

// RankedCategory is a category with its summed recurring amount.
type RankedCategory struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// GoalProgress is the computed progress of a goal.
type GoalProgress struct {
	GoalID            string          `json:"goal_id"`
	GoalName          string          `json:"goal_name"`
	Kind              GoalKind        `json:"kind"`
	Category          string          `json:"category"`
	GoalAmount        decimal.Decimal `json:"goal_amount"`
	CurrentAmount     decimal.Decimal `json:"current_amount"`
	Percentage        decimal.Decimal `json:"percentage"`
	DisplayPercentage decimal.Decimal `json:"display_percentage"`
	Outstanding       decimal.Decimal `json:"outstanding"`
	Deadline          string          `json:"deadline"`
}

// PeriodTotals holds income, expense and savings totals for one period.
type PeriodTotals struct {
	Label    string          `json:"label"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Savings  decimal.Decimal `json:"savings"`
	Net      decimal.Decimal `json:"net"`
}

// RejectedEntry records an entry that could not be projected.
type RejectedEntry struct {
	EntryID string `json:"entry_id"`
	Reason  string `json:"reason"`
}
