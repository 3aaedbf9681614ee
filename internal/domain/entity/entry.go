// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/shopspring/decimal"
)

// EntryKind identifies what a financial entry represents.
type EntryKind string

const (
	EntryKindIncome  EntryKind = "income"
	EntryKindExpense EntryKind = "expense"
	EntryKindSavings EntryKind = "savings"
)

// CustomCategory is the category sentinel that defers to the entry's free-text label.
const CustomCategory = "custom"

// Entry represents a single income, expense or savings record fetched from the upstream API.
type Entry struct {
	ID   string
	Kind EntryKind
	// Date is kept as delivered; only its month component is used.
	Date string
	// Amount is invalid when the upstream value could not be coerced to a number.
	Amount           decimal.NullDecimal
	Category         string
	CustomCategory   string
	RecurringMonthly bool
}

// HasValidAmount reports whether the entry contributes to sums.
func (e Entry) HasValidAmount() bool {
	return e.Amount.Valid
}

