package preference

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/budget-tracker/insights/internal/application/adapter"
	"github.com/budget-tracker/insights/internal/domain/entity"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
)

// MaxValueLength is the longest preference value accepted, in characters.
const MaxValueLength = 128

// SetPreferenceInput represents the input for writing a preference.
type SetPreferenceInput struct {
	Session *entity.Session
	Key     string
	Value   string
}

// SetPreferenceOutput represents the stored preference.
type SetPreferenceOutput struct {
	Key       entity.PreferenceKey
	Value     string
	UpdatedAt time.Time
}

// SetPreferenceUseCase stores a UI selection for the calling session.
type SetPreferenceUseCase struct {
	store adapter.PreferencesStore
}

// NewSetPreferenceUseCase creates a new SetPreferenceUseCase instance.
func NewSetPreferenceUseCase(store adapter.PreferencesStore) *SetPreferenceUseCase {
	return &SetPreferenceUseCase{
		store: store,
	}
}

// Execute validates and stores the preference, replacing any previous value.
func (uc *SetPreferenceUseCase) Execute(ctx context.Context, input SetPreferenceInput) (*SetPreferenceOutput, error) {
	key, err := validateKey(input.Key)
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(input.Value) > MaxValueLength {
		return nil, domainerror.NewPreferenceError(
			domainerror.ErrCodePreferenceValueTooLong,
			fmt.Sprintf("value must be at most %d characters", MaxValueLength),
			domainerror.ErrPreferenceValueTooLong,
		)
	}

	pref := entity.NewPreference(input.Session, key, input.Value)
	if err := uc.store.Set(ctx, pref); err != nil {
		slog.ErrorContext(ctx, "Failed to store preference",
			"key", string(key),
			"session_type", string(input.Session.Type),
			"error", err,
		)
		return nil, domainerror.NewPreferenceError(
			domainerror.ErrCodePreferenceStoreFailure,
			"failed to store preference",
			err,
		)
	}

	return &SetPreferenceOutput{
		Key:       pref.Key,
		Value:     pref.Value,
		UpdatedAt: pref.UpdatedAt,
	}, nil
}
