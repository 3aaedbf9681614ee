package dto

import (
	"github.com/budget-tracker/insights/internal/application/usecase/preference"
)

// SetPreferenceRequest represents the request body for storing a preference.
type SetPreferenceRequest struct {
	Value *string `json:"value" binding:"required"`
}

// PreferenceResponse represents a stored preference.
type PreferenceResponse struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updated_at"`
}

// ToPreferenceResponse converts a GetPreferenceOutput to a PreferenceResponse DTO.
func ToPreferenceResponse(output *preference.GetPreferenceOutput) PreferenceResponse {
	return PreferenceResponse{
		Key:       string(output.Key),
		Value:     output.Value,
		UpdatedAt: FormatTimestamp(output.UpdatedAt),
	}
}

// ToSetPreferenceResponse converts a SetPreferenceOutput to a PreferenceResponse DTO.
func ToSetPreferenceResponse(output *preference.SetPreferenceOutput) PreferenceResponse {
	return PreferenceResponse{
		Key:       string(output.Key),
		Value:     output.Value,
		UpdatedAt: FormatTimestamp(output.UpdatedAt),
	}
}
