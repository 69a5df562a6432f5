package dto

import (
	"lexihub/internal/models"
	"time"
)

// CreateTranslationRequest used for POST /api/v1/translations
type CreateTranslationRequest struct {
	EntryID        string  `json:"entry_id" binding:"required,uuid"`
	LanguageCode   string  `json:"language_code" binding:"required"`
	TranslatedName string  `json:"translated_name" binding:"required"`
	Notes          *string `json:"notes,omitempty"`
	SourceID       *string `json:"source_id,omitempty" binding:"omitempty,uuid"`
	IsPreferred    *bool   `json:"is_preferred,omitempty"`
}

func (d CreateTranslationRequest) ToModel() models.Translation {
	t := models.Translation{
		EntryID:        d.EntryID,
		LanguageCode:   d.LanguageCode,
		TranslatedName: d.TranslatedName,
		Notes:          d.Notes,
		SourceID:       d.SourceID,
	}
	if d.IsPreferred != nil {
		t.IsPreferred = *d.IsPreferred
	}
	return t
}

// UpdateTranslationRequest used for PUT /api/v1/translations/:translation_id
// (partial updates allowed)
type UpdateTranslationRequest struct {
	LanguageCode   *string `json:"language_code,omitempty"`
	TranslatedName *string `json:"translated_name,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	SourceID       *string `json:"source_id,omitempty" binding:"omitempty,uuid"`
	IsPreferred    *bool   `json:"is_preferred,omitempty"`
}

func (d UpdateTranslationRequest) ApplyTo(t *models.Translation) {
	if d.LanguageCode != nil {
		t.LanguageCode = *d.LanguageCode
	}
	if d.TranslatedName != nil {
		t.TranslatedName = *d.TranslatedName
	}
	if d.Notes != nil {
		t.Notes = d.Notes
	}
	if d.SourceID != nil {
		t.SourceID = d.SourceID
	}
	if d.IsPreferred != nil {
		t.IsPreferred = *d.IsPreferred
	}
}

// TranslationResponse DTO for responses. UserVote carries the viewer's own
// vote ("up"/"down") when the request was authenticated.
type TranslationResponse struct {
	ID             string    `json:"id"`
	EntryID        string    `json:"entry_id"`
	LanguageCode   string    `json:"language_code"`
	TranslatedName string    `json:"translated_name"`
	Notes          *string   `json:"notes,omitempty"`
	SourceID       *string   `json:"source_id,omitempty"`
	IsPreferred    bool      `json:"is_preferred"`
	Upvotes        int       `json:"upvotes"`
	Downvotes      int       `json:"downvotes"`
	CreatedBy      string    `json:"created_by"`
	UpdatedBy      string    `json:"updated_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UserVote       *string   `json:"user_vote,omitempty"`
}

func FromTranslationModel(t models.Translation) TranslationResponse {
	return TranslationResponse{
		ID:             t.ID,
		EntryID:        t.EntryID,
		LanguageCode:   t.LanguageCode,
		TranslatedName: t.TranslatedName,
		Notes:          t.Notes,
		SourceID:       t.SourceID,
		IsPreferred:    t.IsPreferred,
		Upvotes:        t.Upvotes,
		Downvotes:      t.Downvotes,
		CreatedBy:      t.CreatedBy,
		UpdatedBy:      t.UpdatedBy,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// TranslationSummary is the compact shape used in user metadata.
type TranslationSummary struct {
	ID             string    `json:"id"`
	EntryID        string    `json:"entry_id"`
	LanguageCode   string    `json:"language_code"`
	TranslatedName string    `json:"translated_name"`
	IsPreferred    bool      `json:"is_preferred"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToTranslationSummary(t models.Translation) TranslationSummary {
	return TranslationSummary{
		ID:             t.ID,
		EntryID:        t.EntryID,
		LanguageCode:   t.LanguageCode,
		TranslatedName: t.TranslatedName,
		IsPreferred:    t.IsPreferred,
		UpdatedAt:      t.UpdatedAt,
	}
}

// VoteRequest used for POST /api/v1/translations/:translation_id/vote
type VoteRequest struct {
	VoteType string `json:"vote_type" binding:"required,oneof=up down"`
}

// VoteResponse DTO for responses
type VoteResponse struct {
	ID            string    `json:"id"`
	TranslationID string    `json:"translation_id"`
	UserID        string    `json:"user_id"`
	VoteType      string    `json:"vote_type"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromVoteModel(v models.TranslationVote) VoteResponse {
	return VoteResponse{
		ID:            v.ID,
		TranslationID: v.TranslationID,
		UserID:        v.UserID,
		VoteType:      v.VoteType,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

// RecalculateVotesResponse reports counters after an admin repair.
type RecalculateVotesResponse struct {
	Message   string `json:"message"`
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes"`
}
