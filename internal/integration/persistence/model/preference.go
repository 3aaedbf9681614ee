// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/insights/internal/domain/entity"
)

// PreferenceModel represents the preferences table in the database.
type PreferenceModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionType string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_preferences_owner_key"`
	OwnerID     string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_preferences_owner_key"`
	Key         string    `gorm:"column:pref_key;type:varchar(32);not null;uniqueIndex:idx_preferences_owner_key"`
	Value       string    `gorm:"type:varchar(128);not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the PreferenceModel.
func (PreferenceModel) TableName() string {
	return "preferences"
}

// ToEntity converts a PreferenceModel to a domain Preference entity.
func (m *PreferenceModel) ToEntity() *entity.Preference {
	return &entity.Preference{
		SessionType: entity.SessionType(m.SessionType),
		OwnerID:     m.OwnerID,
		Key:         entity.PreferenceKey(m.Key),
		Value:       m.Value,
		UpdatedAt:   m.UpdatedAt,
	}
}

// PreferenceFromEntity creates a PreferenceModel from a domain Preference entity.
func PreferenceFromEntity(pref *entity.Preference) *PreferenceModel {
	return &PreferenceModel{
		ID:          uuid.New(),
		SessionType: string(pref.SessionType),
		OwnerID:     pref.OwnerID,
		Key:         string(pref.Key),
		Value:       pref.Value,
		CreatedAt:   pref.UpdatedAt,
		UpdatedAt:   pref.UpdatedAt,
	}
}
