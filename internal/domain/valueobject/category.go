// Package valueobject contains domain value objects for the budget insights service.
package valueobject

import (
	"strings"

	"github.com/budget-tracker/insights/internal/domain/entity"
)

// AggregationKey resolves the key an entry is grouped under.
//
// Both a fixed category and a custom label resolve to their trimmed, lower-cased form.
// Blank results fall back to entity.UncategorizedKey.
func AggregationKey(category, customCategory string) string {
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, entity.CustomCategory) {
		label := strings.ToLower(strings.TrimSpace(customCategory))
		if label == "" {
			return entity.UncategorizedKey
		}
		return label
	}
	if category == "" || strings.EqualFold(category, entity.UncategorizedKey) {
		return entity.UncategorizedKey
	}
	return strings.ToLower(category)
}

// SameCategory compares two aggregation keys case-insensitively.
func SameCategory(a, b string) bool {
	return strings.EqualFold(a, b)
}
