package dto

import (
	"lexihub/internal/models"
	"time"
)

// CreateSourceRequest used for POST /api/v1/sources
type CreateSourceRequest struct {
	Title           string  `json:"title" binding:"required"`
	Author          *string `json:"author,omitempty"`
	Publisher       *string `json:"publisher,omitempty"`
	PublicationYear *int    `json:"publication_year,omitempty"`
	LanguageCode    string  `json:"language_code" binding:"required"`
	ISBN            *string `json:"isbn,omitempty"`
	Description     *string `json:"description,omitempty"`
	TranslatorID    *string `json:"translator_id,omitempty"`
}

func (d CreateSourceRequest) ToModel() models.Source {
	return models.Source{
		Title:           d.Title,
		Author:          d.Author,
		Publisher:       d.Publisher,
		PublicationYear: d.PublicationYear,
		LanguageCode:    d.LanguageCode,
		ISBN:            d.ISBN,
		Description:     d.Description,
		TranslatorID:    d.TranslatorID,
	}
}

// UpdateSourceRequest used for PUT /api/v1/sources/:source_id (partial updates allowed)
type UpdateSourceRequest struct {
	Title           *string `json:"title,omitempty"`
	Author          *string `json:"author,omitempty"`
	Publisher       *string `json:"publisher,omitempty"`
	PublicationYear *int    `json:"publication_year,omitempty"`
	LanguageCode    *string `json:"language_code,omitempty"`
	ISBN            *string `json:"isbn,omitempty"`
	Description     *string `json:"description,omitempty"`
	TranslatorID    *string `json:"translator_id,omitempty"`
}

func (d UpdateSourceRequest) ApplyTo(s *models.Source) {
	if d.Title != nil {
		s.Title = *d.Title
	}
	if d.Author != nil {
		s.Author = d.Author
	}
	if d.Publisher != nil {
		s.Publisher = d.Publisher
	}
	if d.PublicationYear != nil {
		s.PublicationYear = d.PublicationYear
	}
	if d.LanguageCode != nil {
		s.LanguageCode = *d.LanguageCode
	}
	if d.ISBN != nil {
		s.ISBN = d.ISBN
	}
	if d.Description != nil {
		s.Description = d.Description
	}
	if d.TranslatorID != nil {
		s.TranslatorID = d.TranslatorID
	}
}

// SourceResponse DTO for responses
type SourceResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Author          *string   `json:"author,omitempty"`
	Publisher       *string   `json:"publisher,omitempty"`
	PublicationYear *int      `json:"publication_year,omitempty"`
	LanguageCode    string    `json:"language_code"`
	ISBN            *string   `json:"isbn,omitempty"`
	Description     *string   `json:"description,omitempty"`
	TranslatorID    *string   `json:"translator_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromSourceModel(s models.Source) SourceResponse {
	return SourceResponse{
		ID:              s.ID,
		Title:           s.Title,
		Author:          s.Author,
		Publisher:       s.Publisher,
		PublicationYear: s.PublicationYear,
		LanguageCode:    s.LanguageCode,
		ISBN:            s.ISBN,
		Description:     s.Description,
		TranslatorID:    s.TranslatorID,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
