// Package preference contains use cases for the per-session UI preference store.
package preference

import (
	"context"
	"errors"
	"time"

	"github.com/budget-tracker/insights/internal/application/adapter"
	"github.com/budget-tracker/insights/internal/domain/entity"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
)

// GetPreferenceInput represents the input for reading a preference.
type GetPreferenceInput struct {
	Session *entity.Session
	Key     string
}

// GetPreferenceOutput represents a stored preference.
type GetPreferenceOutput struct {
	Key       entity.PreferenceKey
	Value     string
	UpdatedAt time.Time
}

// GetPreferenceUseCase reads a UI selection for the calling session.
type GetPreferenceUseCase struct {
	store adapter.PreferencesStore
}

// NewGetPreferenceUseCase creates a new GetPreferenceUseCase instance.
func NewGetPreferenceUseCase(store adapter.PreferencesStore) *GetPreferenceUseCase {
	return &GetPreferenceUseCase{
		store: store,
	}
}

// Execute returns the stored preference or a PRF-010001 error when none exists.
func (uc *GetPreferenceUseCase) Execute(ctx context.Context, input GetPreferenceInput) (*GetPreferenceOutput, error) {
	key, err := validateKey(input.Key)
	if err != nil {
		return nil, err
	}

	pref, err := uc.store.Get(ctx, input.Session, key)
	if err != nil {
		if errors.Is(err, domainerror.ErrPreferenceNotFound) {
			return nil, domainerror.NewPreferenceError(
				domainerror.ErrCodePreferenceNotFound,
				"no value stored for "+string(key),
				domainerror.ErrPreferenceNotFound,
			)
		}
		return nil, domainerror.NewPreferenceError(
			domainerror.ErrCodePreferenceStoreFailure,
			"failed to read preference",
			err,
		)
	}

	return &GetPreferenceOutput{
		Key:       pref.Key,
		Value:     pref.Value,
		UpdatedAt: pref.UpdatedAt,
	}, nil
}

// validateKey checks that key is one of the accepted preference keys.
func validateKey(raw string) (entity.PreferenceKey, error) {
	key := entity.PreferenceKey(raw)
	if !key.IsKnown() {
		return "", domainerror.NewPreferenceError(
			domainerror.ErrCodeUnknownPreferenceKey,
			"unknown preference key: "+raw,
			domainerror.ErrUnknownPreferenceKey,
		)
	}
	return key, nil
}
