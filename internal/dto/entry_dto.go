package dto

import (
	"time"

	"lexihub/internal/models"

	"github.com/lib/pq"
)

// CreateEntryRequest used for POST /api/v1/entries
type CreateEntryRequest struct {
	PrimaryName        string   `json:"primary_name" binding:"required"`
	OriginalScript     *string  `json:"original_script,omitempty"`
	LanguageCode       string   `json:"language_code" binding:"required"`
	EntryType          *string  `json:"entry_type,omitempty"`
	AlternativeNames   []string `json:"alternative_names,omitempty"`
	OtherLanguageCodes []string `json:"other_language_codes,omitempty"`
	Etymology          *string  `json:"etymology,omitempty"`
	Definition         *string  `json:"definition,omitempty"`
	HistoricalContext  *string  `json:"historical_context,omitempty"`
}

func (d CreateEntryRequest) ToModel() models.Entry {
	return models.Entry{
		PrimaryName:        d.PrimaryName,
		OriginalScript:     d.OriginalScript,
		LanguageCode:       d.LanguageCode,
		EntryType:          d.EntryType,
		AlternativeNames:   pq.StringArray(d.AlternativeNames),
		OtherLanguageCodes: pq.StringArray(d.OtherLanguageCodes),
		Etymology:          d.Etymology,
		Definition:         d.Definition,
		HistoricalContext:  d.HistoricalContext,
	}
}

// UpdateEntryRequest used for PUT /api/v1/entries/:entry_id (partial updates
// allowed; only supplied fields change)
type UpdateEntryRequest struct {
	PrimaryName        *string  `json:"primary_name,omitempty"`
	OriginalScript     *string  `json:"original_script,omitempty"`
	LanguageCode       *string  `json:"language_code,omitempty"`
	EntryType          *string  `json:"entry_type,omitempty"`
	AlternativeNames   []string `json:"alternative_names,omitempty"`
	OtherLanguageCodes []string `json:"other_language_codes,omitempty"`
	Etymology          *string  `json:"etymology,omitempty"`
	Definition         *string  `json:"definition,omitempty"`
	HistoricalContext  *string  `json:"historical_context,omitempty"`
	VerificationNotes  *string  `json:"verification_notes,omitempty"`
}

func (d UpdateEntryRequest) ApplyTo(e *models.Entry) {
	if d.PrimaryName != nil {
		e.PrimaryName = *d.PrimaryName
	}
	if d.OriginalScript != nil {
		e.OriginalScript = d.OriginalScript
	}
	if d.LanguageCode != nil {
		e.LanguageCode = *d.LanguageCode
	}
	if d.EntryType != nil {
		e.EntryType = d.EntryType
	}
	if d.AlternativeNames != nil {
		e.AlternativeNames = pq.StringArray(d.AlternativeNames)
	}
	if d.OtherLanguageCodes != nil {
		e.OtherLanguageCodes = pq.StringArray(d.OtherLanguageCodes)
	}
	if d.Etymology != nil {
		e.Etymology = d.Etymology
	}
	if d.Definition != nil {
		e.Definition = d.Definition
	}
	if d.HistoricalContext != nil {
		e.HistoricalContext = d.HistoricalContext
	}
	if d.VerificationNotes != nil {
		e.VerificationNotes = d.VerificationNotes
	}
}

// BulkEntryUpdates is the shared partial update applied across entry_ids.
type BulkEntryUpdates struct {
	LanguageCode *string `json:"language_code,omitempty"`
	EntryType    *string `json:"entry_type,omitempty"`
	IsVerified   *bool   `json:"is_verified,omitempty"`
}

// BulkUpdateEntriesRequest used for PUT /api/v1/entries/bulk
type BulkUpdateEntriesRequest struct {
	EntryIDs []string         `json:"entry_ids" binding:"required"`
	Updates  BulkEntryUpdates `json:"updates"`
}

// VerifyEntryRequest used for POST /api/v1/entries/:entry_id/verify
type VerifyEntryRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// CreateRelationshipRequest used for POST /api/v1/entries/:entry_id/relationships
type CreateRelationshipRequest struct {
	TargetEntryID    string  `json:"target_entry_id" binding:"required,uuid"`
	RelationshipType string  `json:"relationship_type" binding:"required"`
	Notes            *string `json:"notes,omitempty"`
}

// RelationshipResponse DTO for responses
type RelationshipResponse struct {
	ID               string    `json:"id"`
	SourceEntryID    string    `json:"source_entry_id"`
	TargetEntryID    string    `json:"target_entry_id"`
	RelationshipType string    `json:"relationship_type"`
	Notes            *string   `json:"notes,omitempty"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
}

func FromRelationshipModel(r models.EntryRelationship) RelationshipResponse {
	return RelationshipResponse{
		ID:               r.ID,
		SourceEntryID:    r.SourceEntryID,
		TargetEntryID:    r.TargetEntryID,
		RelationshipType: r.RelationshipType,
		Notes:            r.Notes,
		CreatedBy:        r.CreatedBy,
		CreatedAt:        r.CreatedAt,
	}
}

// EntryHistoryResponse DTO for audit rows
type EntryHistoryResponse struct {
	ID           string    `json:"id"`
	EntryID      string    `json:"entry_id"`
	ChangedBy    string    `json:"changed_by"`
	ChangeType   string    `json:"change_type"`
	OldValues    any       `json:"old_values,omitempty"`
	NewValues    any       `json:"new_values,omitempty"`
	ChangeReason *string   `json:"change_reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromHistoryModel(h models.EntryHistory) EntryHistoryResponse {
	resp := EntryHistoryResponse{
		ID:           h.ID,
		EntryID:      h.EntryID,
		ChangedBy:    h.ChangedBy,
		ChangeType:   h.ChangeType,
		ChangeReason: h.ChangeReason,
		CreatedAt:    h.CreatedAt,
	}
	if len(h.OldValues) > 0 {
		resp.OldValues = h.OldValues
	}
	if len(h.NewValues) > 0 {
		resp.NewValues = h.NewValues
	}
	return resp
}

// EntryResponse DTO for responses. Translations are populated when the
// caller asked for them, ordered preferred-first then oldest-first.
type EntryResponse struct {
	ID                 string                `json:"id"`
	PrimaryName        string                `json:"primary_name"`
	OriginalScript     *string               `json:"original_script,omitempty"`
	LanguageCode       string                `json:"language_code"`
	EntryType          *string               `json:"entry_type,omitempty"`
	AlternativeNames   []string              `json:"alternative_names,omitempty"`
	OtherLanguageCodes []string              `json:"other_language_codes,omitempty"`
	Etymology          *string               `json:"etymology,omitempty"`
	Definition         *string               `json:"definition,omitempty"`
	HistoricalContext  *string               `json:"historical_context,omitempty"`
	CreatedBy          string                `json:"created_by"`
	UpdatedBy          string                `json:"updated_by"`
	IsVerified         bool                  `json:"is_verified"`
	VerificationNotes  *string               `json:"verification_notes,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
	Translations       []TranslationResponse `json:"translations,omitempty"`
}

func FromEntryModel(e models.Entry) EntryResponse {
	resp := EntryResponse{
		ID:                 e.ID,
		PrimaryName:        e.PrimaryName,
		OriginalScript:     e.OriginalScript,
		LanguageCode:       e.LanguageCode,
		EntryType:          e.EntryType,
		AlternativeNames:   []string(e.AlternativeNames),
		OtherLanguageCodes: []string(e.OtherLanguageCodes),
		Etymology:          e.Etymology,
		Definition:         e.Definition,
		HistoricalContext:  e.HistoricalContext,
		CreatedBy:          e.CreatedBy,
		UpdatedBy:          e.UpdatedBy,
		IsVerified:         e.IsVerified,
		VerificationNotes:  e.VerificationNotes,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
	for _, t := range e.Translations {
		resp.Translations = append(resp.Translations, FromTranslationModel(t))
	}
	return resp
}

// EntrySummary is the compact shape used in user metadata.
type EntrySummary struct {
	ID           string    `json:"id"`
	PrimaryName  string    `json:"primary_name"`
	LanguageCode string    `json:"language_code"`
	EntryType    *string   `json:"entry_type,omitempty"`
	IsVerified   bool      `json:"is_verified"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToEntrySummary(e models.Entry) EntrySummary {
	return EntrySummary{
		ID:           e.ID,
		PrimaryName:  e.PrimaryName,
		LanguageCode: e.LanguageCode,
		EntryType:    e.EntryType,
		IsVerified:   e.IsVerified,
		UpdatedAt:    e.UpdatedAt,
	}
}

// EntryWithCommentResponse pairs an entry with its single newest comment for
// the metadata dashboard.
type EntryWithCommentResponse struct {
	EntryResponse
	NewestComment *CommentResponse `json:"newest_comment,omitempty"`
}

// EntryMetadataResponse is the dashboard payload.
type EntryMetadataResponse struct {
	TotalEntries                  int64                      `json:"total_entries"`
	RecentlyUpdatedCount          int64                      `json:"recently_updated_count"`
	NewestUpdatedEntries          []EntryResponse            `json:"newest_updated_entries"`
	EntriesWithNewestTranslations []EntryResponse            `json:"entries_with_newest_translations"`
	EntriesWithNewestComments     []EntryWithCommentResponse `json:"entries_with_newest_comments"`
}

// PaginatedEntriesResponse is the page envelope for entry listings.
type PaginatedEntriesResponse struct {
	Total     int64           `json:"total"`
	Skip      int             `json:"skip"`
	Limit     int             `json:"limit"`
	Page      int             `json:"page"`
	PageCount int             `json:"page_count"`
	Items     []EntryResponse `json:"items"`
}

// NewPaginatedEntriesResponse computes the page number and page count from
// the requested window.
func NewPaginatedEntriesResponse(items []EntryResponse, total int64, skip, limit int) PaginatedEntriesResponse {
	page := 1
	pageCount := 1
	if limit > 0 {
		page = skip/limit + 1
		pageCount = int((total + int64(limit) - 1) / int64(limit))
		if pageCount < 1 {
			pageCount = 1
		}
	}
	if items == nil {
		items = []EntryResponse{}
	}
	return PaginatedEntriesResponse{
		Total:     total,
		Skip:      skip,
		Limit:     limit,
		Page:      page,
		PageCount: pageCount,
		Items:     items,
	}
}
