package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entry types. An entry may also carry no type at all.
const (
	EntryTypeTerm         = "term"
	EntryTypePersonalName = "personal_name"
	EntryTypePlaceName    = "place_name"
	EntryTypeArtworkTitle = "artwork_title"
	EntryTypeConcept      = "concept"
)

// ValidEntryType reports whether t is a known entry type.
func ValidEntryType(t string) bool {
	switch t {
	case EntryTypeTerm, EntryTypePersonalName, EntryTypePlaceName,
		EntryTypeArtworkTitle, EntryTypeConcept:
		return true
	}
	return false
}

// Entry is a dictionary headword. The search_vector column is not mapped
// here: it is created and maintained entirely by a database trigger (see
// database/db.go) so that it always reflects the current text fields no
// matter which code path writes the row.
type Entry struct {
	ID                 string         `gorm:"primaryKey;type:uuid" json:"id"`
	PrimaryName        string         `gorm:"size:500;not null;index" json:"primary_name"`
	OriginalScript     *string        `gorm:"type:text" json:"original_script,omitempty"`
	LanguageCode       string         `gorm:"size:10;not null;index" json:"language_code"`
	EntryType          *string        `gorm:"size:20;index" json:"entry_type,omitempty"`
	AlternativeNames   pq.StringArray `gorm:"type:text[]" json:"alternative_names,omitempty"`
	OtherLanguageCodes pq.StringArray `gorm:"type:text[]" json:"other_language_codes,omitempty"`
	Etymology          *string        `gorm:"type:text" json:"etymology,omitempty"`
	Definition         *string        `gorm:"type:text" json:"definition,omitempty"`
	HistoricalContext  *string        `gorm:"type:text" json:"historical_context,omitempty"`
	CreatedBy          string         `gorm:"type:uuid;not null;index" json:"created_by"`
	UpdatedBy          string         `gorm:"type:uuid;not null" json:"updated_by"`
	IsVerified         bool           `gorm:"default:false;not null" json:"is_verified"`
	VerificationNotes  *string        `gorm:"type:text" json:"verification_notes,omitempty"`
	CreatedAt          time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Creator      *User         `json:"-" gorm:"foreignKey:CreatedBy"`
	Updater      *User         `json:"-" gorm:"foreignKey:UpdatedBy"`
	Translations []Translation `json:"translations,omitempty" gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE;"`
	Comments     []Comment     `json:"-" gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE;"`
}

func (entry *Entry) BeforeCreate(tx *gorm.DB) (err error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	return
}

func (Entry) TableName() string {
	return "entries"
}

// Relationship types between two entries.
const (
	RelSynonym                = "synonym"
	RelAntonym                = "antonym"
	RelRelated                = "related"
	RelVariant                = "variant"
	RelSeeAlso                = "see_also"
	RelBroaderTerm            = "broader_term"
	RelNarrowerTerm           = "narrower_term"
	RelCrossLanguageEquivalent = "cross_language_equivalent"
)

// ValidRelationshipType reports whether t is a known relationship type.
func ValidRelationshipType(t string) bool {
	switch t {
	case RelSynonym, RelAntonym, RelRelated, RelVariant, RelSeeAlso,
		RelBroaderTerm, RelNarrowerTerm, RelCrossLanguageEquivalent:
		return true
	}
	return false
}

// EntryRelationship is a typed directed edge between two entries, unique per
// (source, target, type).
type EntryRelationship struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	SourceEntryID    string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_rel_src_tgt_type" json:"source_entry_id"`
	TargetEntryID    string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_rel_src_tgt_type" json:"target_entry_id"`
	RelationshipType string    `gorm:"size:50;not null;index;uniqueIndex:idx_rel_src_tgt_type" json:"relationship_type"`
	Notes            *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy        string    `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`

	SourceEntry *Entry `json:"-" gorm:"foreignKey:SourceEntryID;constraint:OnDelete:CASCADE;"`
	TargetEntry *Entry `json:"-" gorm:"foreignKey:TargetEntryID;constraint:OnDelete:CASCADE;"`
}

func (rel *EntryRelationship) BeforeCreate(tx *gorm.DB) (err error) {
	if rel.ID == "" {
		rel.ID = uuid.New().String()
	}
	return
}

func (EntryRelationship) TableName() string {
	return "entry_relationships"
}

// Change types recorded in the entry audit log.
const (
	ChangeCreated  = "created"
	ChangeUpdated  = "updated"
	ChangeVerified = "verified"
	ChangeArchived = "archived"
)

// EntryHistory is an append-only audit row capturing old/new snapshots of an
// entry change as JSON.
type EntryHistory struct {
	ID           string         `gorm:"primaryKey;type:uuid" json:"id"`
	EntryID      string         `gorm:"type:uuid;not null;index" json:"entry_id"`
	ChangedBy    string         `gorm:"type:uuid;not null" json:"changed_by"`
	ChangeType   string         `gorm:"size:20;not null" json:"change_type"`
	OldValues    datatypes.JSON `gorm:"type:jsonb" json:"old_values,omitempty"`
	NewValues    datatypes.JSON `gorm:"type:jsonb" json:"new_values,omitempty"`
	ChangeReason *string        `gorm:"type:text" json:"change_reason,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`

	Entry *Entry `json:"-" gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE;"`
}

func (h *EntryHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return
}

func (EntryHistory) TableName() string {
	return "entry_history"
}
