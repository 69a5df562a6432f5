package repository

import (
	"context"
	"fmt"

	"lexihub/internal/models"

	"gorm.io/gorm"
)

type RelationshipRepository interface {
	ListByEntry(ctx context.Context, entryID string) ([]models.EntryRelationship, error)
	GetByID(ctx context.Context, id string) (*models.EntryRelationship, error)
	Create(ctx context.Context, rel *models.EntryRelationship) error
	Delete(ctx context.Context, id string) error
}

type relationshipRepository struct {
	db *gorm.DB
}

func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &relationshipRepository{db: db}
}

// ListByEntry returns edges where the entry appears on either side.
func (r *relationshipRepository) ListByEntry(ctx context.Context, entryID string) ([]models.EntryRelationship, error) {
	var rels []models.EntryRelationship
	err := r.db.WithContext(ctx).
		Where("source_entry_id = ? OR target_entry_id = ?", entryID, entryID).
		Order("created_at ASC").
		Find(&rels).Error
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	return rels, nil
}

func (r *relationshipRepository) GetByID(ctx context.Context, id string) (*models.EntryRelationship, error) {
	var rel models.EntryRelationship
	if err := r.db.WithContext(ctx).First(&rel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rel, nil
}

func (r *relationshipRepository) Create(ctx context.Context, rel *models.EntryRelationship) error {
	if err := r.db.WithContext(ctx).Create(rel).Error; err != nil {
		return fmt.Errorf("create relationship: %w", err)
	}
	return nil
}

func (r *relationshipRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.EntryRelationship{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete relationship: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
