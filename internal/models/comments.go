package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Comment belongs to an entry; an optional parent makes a flat list
// threadable on the client. EditHistory is an append-only JSON log keyed by
// edit index ("0", "1", ...); IsEdited flips on the first content edit.
type Comment struct {
	ID              string         `gorm:"primaryKey;type:uuid" json:"id"`
	EntryID         string         `gorm:"type:uuid;not null;index" json:"entry_id"`
	UserID          string         `gorm:"type:uuid;not null;index" json:"user_id"`
	ParentCommentID *string        `gorm:"type:uuid;index" json:"parent_comment_id,omitempty"`
	Content         string         `gorm:"type:text;not null" json:"content"`
	IsEdited        bool           `gorm:"default:false;not null" json:"is_edited"`
	EditHistory     datatypes.JSON `gorm:"type:jsonb" json:"edit_history,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Entry  *Entry   `json:"-" gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE;"`
	User   *User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Parent *Comment `json:"-" gorm:"foreignKey:ParentCommentID;constraint:OnDelete:CASCADE;"`
}

func (comment *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	return
}

func (Comment) TableName() string {
	return "comments"
}
