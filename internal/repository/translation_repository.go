package repository

import (
	"context"
	"fmt"

	"lexihub/internal/models"

	"gorm.io/gorm"
)

type TranslationRepository interface {
	ListByEntry(ctx context.Context, entryID string) ([]models.Translation, error)
	GetByID(ctx context.Context, id string) (*models.Translation, error)
	Create(ctx context.Context, t *models.Translation) error
	Update(ctx context.Context, t *models.Translation) error
	Delete(ctx context.Context, id string) error
}

type translationRepository struct {
	db *gorm.DB
}

func NewTranslationRepository(db *gorm.DB) TranslationRepository {
	return &translationRepository{db: db}
}

func (r *translationRepository) ListByEntry(ctx context.Context, entryID string) ([]models.Translation, error) {
	var translations []models.Translation
	err := r.db.WithContext(ctx).
		Where("entry_id = ?", entryID).
		Order("is_preferred DESC, created_at ASC").
		Find(&translations).Error
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	return translations, nil
}

func (r *translationRepository) GetByID(ctx context.Context, id string) (*models.Translation, error) {
	var t models.Translation
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *translationRepository) Create(ctx context.Context, t *models.Translation) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create translation: %w", err)
	}
	return nil
}

func (r *translationRepository) Update(ctx context.Context, t *models.Translation) error {
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		return fmt.Errorf("update translation: %w", err)
	}
	return nil
}

// Delete removes the translation and its votes together so the vote table
// never holds rows for a translation that no longer exists.
func (r *translationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("translation_id = ?", id).Delete(&models.TranslationVote{}).Error; err != nil {
			return fmt.Errorf("delete votes: %w", err)
		}
		result := tx.Delete(&models.Translation{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("delete translation: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
