package dto

import (
	"encoding/json"

	"lexihub/internal/models"

	"gorm.io/datatypes"
)

// UpdateUserRequest used for PUT /api/v1/users/:user_id (partial updates allowed)
type UpdateUserRequest struct {
	Email       *string        `json:"email,omitempty" binding:"omitempty,email"`
	Role        *string        `json:"role,omitempty"`
	IsActivated *bool          `json:"is_activated,omitempty"`
	Userdata    map[string]any `json:"userdata,omitempty"`
	Username    *string        `json:"username,omitempty"`
}

func (d UpdateUserRequest) ApplyTo(u *models.User) {
	if d.Email != nil {
		u.Email = *d.Email
	}
	if d.Role != nil {
		u.Role = *d.Role
	}
	if d.IsActivated != nil {
		u.IsActivated = *d.IsActivated
	}
	if d.Userdata != nil {
		if raw, err := json.Marshal(d.Userdata); err == nil {
			u.Userdata = datatypes.JSON(raw)
		}
	}
	if d.Username != nil {
		u.Username = d.Username
	}
}

// ActivityCounts is the rolling 30-day contribution summary.
type ActivityCounts struct {
	EntriesLast30Days      int64 `json:"entries_last_30_days"`
	TranslationsLast30Days int64 `json:"translations_last_30_days"`
}

// UserMetadataResponse aggregates a user's contribution footprint.
// "Updated" counts exclude rows the user also created.
type UserMetadataResponse struct {
	UserID              string               `json:"user_id"`
	EntriesCreated      int64                `json:"entries_created"`
	EntriesUpdated      int64                `json:"entries_updated"`
	TranslationsCreated int64                `json:"translations_created"`
	TranslationsUpdated int64                `json:"translations_updated"`
	TranslatedSources   []SourceResponse     `json:"translated_sources"`
	RecentActivity      ActivityCounts       `json:"recent_activity"`
	RecentEntries       []EntrySummary       `json:"recent_entries"`
	RecentTranslations  []TranslationSummary `json:"recent_translations"`
}
