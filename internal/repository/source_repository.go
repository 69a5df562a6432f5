package repository

import (
	"context"
	"fmt"

	"lexihub/internal/models"

	"gorm.io/gorm"
)

type SourceRepository interface {
	List(ctx context.Context, skip, limit int) ([]models.Source, int64, error)
	GetByID(ctx context.Context, id string) (*models.Source, error)
	Create(ctx context.Context, source *models.Source) error
	Update(ctx context.Context, source *models.Source) error
}

type sourceRepository struct {
	db *gorm.DB
}

func NewSourceRepository(db *gorm.DB) SourceRepository {
	return &sourceRepository{db: db}
}

func (r *sourceRepository) List(ctx context.Context, skip, limit int) ([]models.Source, int64, error) {
	var sources []models.Source
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Source{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("title ASC").
		Offset(skip).
		Limit(limit).
		Find(&sources).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list sources: %w", err)
	}
	return sources, total, nil
}

func (r *sourceRepository) GetByID(ctx context.Context, id string) (*models.Source, error) {
	var source models.Source
	if err := r.db.WithContext(ctx).First(&source, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &source, nil
}

func (r *sourceRepository) Create(ctx context.Context, source *models.Source) error {
	if err := r.db.WithContext(ctx).Create(source).Error; err != nil {
		return fmt.Errorf("create source: %w", err)
	}
	return nil
}

func (r *sourceRepository) Update(ctx context.Context, source *models.Source) error {
	if err := r.db.WithContext(ctx).Save(source).Error; err != nil {
		return fmt.Errorf("update source: %w", err)
	}
	return nil
}
