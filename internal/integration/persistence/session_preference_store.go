package persistence

import (
	"context"

	"github.com/budget-tracker/insights/internal/application/adapter"
	"github.com/budget-tracker/insights/internal/domain/entity"
)

// sessionPreferenceStore routes preferences to the guest or user store by session type.
type sessionPreferenceStore struct {
	guest adapter.PreferencesStore
	user  adapter.PreferencesStore
}

// NewSessionPreferenceStore creates a store that sends guest sessions to guest and
// registered users to user.
func NewSessionPreferenceStore(guest, user adapter.PreferencesStore) adapter.PreferencesStore {
	return &sessionPreferenceStore{
		guest: guest,
		user:  user,
	}
}

// Get reads from the store matching the session type.
func (s *sessionPreferenceStore) Get(ctx context.Context, session *entity.Session, key entity.PreferenceKey) (*entity.Preference, error) {
	if session.IsGuest() {
		return s.guest.Get(ctx, session, key)
	}
	return s.user.Get(ctx, session, key)
}

// Set writes to the store matching the preference's session type.
func (s *sessionPreferenceStore) Set(ctx context.Context, pref *entity.Preference) error {
	if pref.SessionType == entity.SessionTypeGuest {
		return s.guest.Set(ctx, pref)
	}
	return s.user.Set(ctx, pref)
}
