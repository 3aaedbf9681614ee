package aggregation

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/insights/internal/domain/entity"
)

func expense(id, date, amount, category string, recurring bool) entity.Entry {
	return entry(entity.EntryKindExpense, id, date, amount, category, recurring)
}

func income(id, date, amount, category string, recurring bool) entity.Entry {
	return entry(entity.EntryKindIncome, id, date, amount, category, recurring)
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

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s: expected %s, got %s", name, want, got.String())
	}
}
