// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/budget-tracker/insights/internal/domain/entity"
)

// PreferencesStore persists UI selections per session. The aggregation engine never
// reads from it.
type PreferencesStore interface {
	// Get retrieves the preference stored under key for the session.
	// Returns domainerror.ErrPreferenceNotFound when nothing is stored.
	Get(ctx context.Context, session *entity.Session, key entity.PreferenceKey) (*entity.Preference, error)

	// Set stores the preference, replacing any previous value.
	Set(ctx context.Context, preference *entity.Preference) error
}
