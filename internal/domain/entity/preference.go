// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"
)

// PreferenceKey names a cached UI selection.
type PreferenceKey string

const (
	PreferenceSelectedMonth    PreferenceKey = "selected_month"
	PreferenceSelectedCategory PreferenceKey = "selected_category"
	PreferenceSelectedQuarter  PreferenceKey = "selected_quarter"
	PreferenceSelectedYear     PreferenceKey = "selected_year"
	PreferenceChartView        PreferenceKey = "chart_view"
)

// KnownPreferenceKeys lists every key the store accepts.
var KnownPreferenceKeys = []PreferenceKey{
	PreferenceSelectedMonth,
	PreferenceSelectedCategory,
	PreferenceSelectedQuarter,
	PreferenceSelectedYear,
	PreferenceChartView,
}

// IsKnown reports whether the key is accepted by the store.
func (k PreferenceKey) IsKnown() bool {
	for _, known := range KnownPreferenceKeys {
		if k == known {
			return true
		}
	}
	return false
}

// Preference is a single UI selection scoped to its owner: the user for registered
// sessions, the session itself for guests.
type Preference struct {
	SessionType SessionType
	OwnerID     string
	Key         PreferenceKey
	Value       string
	UpdatedAt   time.Time
}

// NewPreference creates a new Preference stamped with the current time.
func NewPreference(session *Session, key PreferenceKey, value string) *Preference {
	return &Preference{
		SessionType: session.Type,
		OwnerID:     session.OwnerID(),
		Key:         key,
		Value:       value,
		UpdatedAt:   time.Now().UTC(),
	}
}
