// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/budget-tracker/insights/internal/application/adapter"
	"github.com/budget-tracker/insights/internal/domain/entity"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
	"github.com/budget-tracker/insights/internal/integration/persistence/model"
)

// preferenceRepository stores preferences in the database, scoped by session type and owner.
type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new preference repository instance.
func NewPreferenceRepository(db *gorm.DB) adapter.PreferencesStore {
	return &preferenceRepository{
		db: db,
	}
}

// Get retrieves the preference stored under key for the session's owner.
func (r *preferenceRepository) Get(ctx context.Context, session *entity.Session, key entity.PreferenceKey) (*entity.Preference, error) {
	var prefModel model.PreferenceModel
	result := r.db.WithContext(ctx).
		Where("session_type = ? AND owner_id = ? AND pref_key = ?", string(session.Type), session.OwnerID(), string(key)).
		First(&prefModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPreferenceNotFound
		}
		return nil, result.Error
	}
	return prefModel.ToEntity(), nil
}

// Set inserts the preference or replaces the stored value.
func (r *preferenceRepository) Set(ctx context.Context, pref *entity.Preference) error {
	prefModel := model.PreferenceFromEntity(pref)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_type"}, {Name: "owner_id"}, {Name: "pref_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(prefModel)
	return result.Error
}
