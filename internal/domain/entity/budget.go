// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/shopspring/decimal"

// Budget represents a spending ceiling for a category. It has the same shape as an
// Entry but is never summed as actual spend.
type Budget struct {
	ID               string
	Date             string
	Amount           decimal.NullDecimal
	Category         string
	CustomCategory   string
	RecurringMonthly bool
}

// AsEntry returns the budget viewed through the entry shape so that projection and
// category resolution can be shared.
func (b Budget) AsEntry() Entry {
	return Entry{
		ID:               b.ID,
		Kind:             EntryKindExpense,
		Date:             b.Date,
		Amount:           b.Amount,
		Category:         b.Category,
		CustomCategory:   b.CustomCategory,
		RecurringMonthly: b.RecurringMonthly,
	}
}
