package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Source is a bibliographic record that translations can cite.
type Source struct {
	ID              string    `gorm:"primaryKey;type:uuid" json:"id"`
	Title           string    `gorm:"size:500;not null" json:"title"`
	Author          *string   `gorm:"size:255" json:"author,omitempty"`
	Publisher       *string   `gorm:"size:255" json:"publisher,omitempty"`
	PublicationYear *int      `json:"publication_year,omitempty"`
	LanguageCode    string    `gorm:"size:10;not null" json:"language_code"`
	ISBN            *string   `gorm:"size:20" json:"isbn,omitempty"`
	Description     *string   `gorm:"type:text" json:"description,omitempty"`
	TranslatorID    *string   `gorm:"type:uuid;index" json:"translator_id,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Translator *User `json:"translator,omitempty" gorm:"foreignKey:TranslatorID"`
}

func (source *Source) BeforeCreate(tx *gorm.DB) (err error) {
	if source.ID == "" {
		source.ID = uuid.New().String()
	}
	return
}

func (Source) TableName() string {
	return "sources"
}
