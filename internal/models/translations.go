package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Translation is a language-specific rendering of an entry, unique per
// (entry, language, translated name). The upvote/downvote counters are
// denormalized from translation_votes; the vote repository keeps them in
// step inside a single transaction and RecalculateVoteCounts repairs drift.
// Like entries, translations carry a search_vector column that is not mapped
// here: a database trigger (see database/db.go) maintains it from
// translated_name and notes.
type Translation struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	EntryID        string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_trans_entry_lang_name" json:"entry_id"`
	LanguageCode   string    `gorm:"size:10;not null;index;uniqueIndex:idx_trans_entry_lang_name" json:"language_code"`
	TranslatedName string    `gorm:"size:500;not null;index;uniqueIndex:idx_trans_entry_lang_name" json:"translated_name"`
	Notes          *string   `gorm:"type:text" json:"notes,omitempty"`
	SourceID       *string   `gorm:"type:uuid;index" json:"source_id,omitempty"`
	IsPreferred    bool      `gorm:"default:false;not null;index" json:"is_preferred"`
	Upvotes        int       `gorm:"default:0;not null" json:"upvotes"`
	Downvotes      int       `gorm:"default:0;not null" json:"downvotes"`
	CreatedBy      string    `gorm:"type:uuid;not null" json:"created_by"`
	UpdatedBy      string    `gorm:"type:uuid;not null" json:"updated_by"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Entry  *Entry  `json:"-" gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE;"`
	Source *Source `json:"source,omitempty" gorm:"foreignKey:SourceID"`
}

func (translation *Translation) BeforeCreate(tx *gorm.DB) (err error) {
	if translation.ID == "" {
		translation.ID = uuid.New().String()
	}
	return
}

func (Translation) TableName() string {
	return "translations"
}

// Vote types.
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// ValidVoteType reports whether t is "up" or "down".
func ValidVoteType(t string) bool {
	return t == VoteUp || t == VoteDown
}

// TranslationVote is one user's vote on one translation, unique per
// (translation, user). Changing a vote updates the row in place.
type TranslationVote struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	TranslationID string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_vote_translation_user" json:"translation_id"`
	UserID        string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_vote_translation_user" json:"user_id"`
	VoteType      string    `gorm:"size:10;not null;index" json:"vote_type"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Translation *Translation `json:"-" gorm:"foreignKey:TranslationID;constraint:OnDelete:CASCADE;"`
	User        *User        `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (vote *TranslationVote) BeforeCreate(tx *gorm.DB) (err error) {
	if vote.ID == "" {
		vote.ID = uuid.New().String()
	}
	return
}

func (TranslationVote) TableName() string {
	return "translation_votes"
}
