package repository

import (
	"context"
	"fmt"
	"time"

	"lexihub/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, skip, limit int) ([]models.User, int64, error)

	CreateVerificationCode(ctx context.Context, code *models.VerificationCode) error
	NewestUsableCode(ctx context.Context, userID string, now time.Time) (*models.VerificationCode, error)
	MarkCodeUsed(ctx context.Context, code *models.VerificationCode, usedAt time.Time) error

	ActivitySummary(ctx context.Context, userID string) (*UserActivity, error)
}

// UserActivity aggregates a user's contribution footprint for the metadata
// endpoint. "Updated" counts exclude rows the user also created.
type UserActivity struct {
	EntriesCreated         int64
	EntriesUpdated         int64
	TranslationsCreated    int64
	TranslationsUpdated    int64
	EntriesLast30Days      int64
	TranslationsLast30Days int64
	TranslatedSources      []models.Source
	RecentEntries          []models.Entry
	RecentTranslations     []models.Translation
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, skip, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) CreateVerificationCode(ctx context.Context, code *models.VerificationCode) error {
	if err := r.db.WithContext(ctx).Create(code).Error; err != nil {
		return fmt.Errorf("create verification code: %w", err)
	}
	return nil
}

// NewestUsableCode returns the most recently issued code for the user that is
// neither used nor expired. Older codes stay valid until they expire, so a
// user who requests twice can still redeem the newest one.
func (r *userRepository) NewestUsableCode(ctx context.Context, userID string, now time.Time) (*models.VerificationCode, error) {
	var code models.VerificationCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND used_at IS NULL AND expires_at > ?", userID, now).
		Order("created_at DESC").
		First(&code).Error
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *userRepository) MarkCodeUsed(ctx context.Context, code *models.VerificationCode, usedAt time.Time) error {
	code.UsedAt = &usedAt
	if err := r.db.WithContext(ctx).Model(code).Update("used_at", usedAt).Error; err != nil {
		return fmt.Errorf("mark code used: %w", err)
	}
	return nil
}

func (r *userRepository) ActivitySummary(ctx context.Context, userID string) (*UserActivity, error) {
	db := r.db.WithContext(ctx)
	activity := &UserActivity{}

	if err := db.Model(&models.Entry{}).
		Where("created_by = ?", userID).
		Count(&activity.EntriesCreated).Error; err != nil {
		return nil, fmt.Errorf("count created entries: %w", err)
	}
	if err := db.Model(&models.Entry{}).
		Where("updated_by = ? AND created_by != ?", userID, userID).
		Count(&activity.EntriesUpdated).Error; err != nil {
		return nil, fmt.Errorf("count updated entries: %w", err)
	}
	if err := db.Model(&models.Translation{}).
		Where("created_by = ?", userID).
		Count(&activity.TranslationsCreated).Error; err != nil {
		return nil, fmt.Errorf("count created translations: %w", err)
	}
	if err := db.Model(&models.Translation{}).
		Where("updated_by = ? AND created_by != ?", userID, userID).
		Count(&activity.TranslationsUpdated).Error; err != nil {
		return nil, fmt.Errorf("count updated translations: %w", err)
	}

	since := time.Now().AddDate(0, 0, -30)
	if err := db.Model(&models.Entry{}).
		Where("created_by = ? AND created_at >= ?", userID, since).
		Count(&activity.EntriesLast30Days).Error; err != nil {
		return nil, fmt.Errorf("count recent entries: %w", err)
	}
	if err := db.Model(&models.Translation{}).
		Where("created_by = ? AND created_at >= ?", userID, since).
		Count(&activity.TranslationsLast30Days).Error; err != nil {
		return nil, fmt.Errorf("count recent translations: %w", err)
	}

	if err := db.Where("translator_id = ?", userID).
		Order("created_at DESC").
		Find(&activity.TranslatedSources).Error; err != nil {
		return nil, fmt.Errorf("list translated sources: %w", err)
	}

	if err := db.Where("created_by = ? OR updated_by = ?", userID, userID).
		Order("updated_at DESC").
		Limit(5).
		Find(&activity.RecentEntries).Error; err != nil {
		return nil, fmt.Errorf("list recent entries: %w", err)
	}
	if err := db.Where("created_by = ? OR updated_by = ?", userID, userID).
		Order("updated_at DESC").
		Limit(5).
		Find(&activity.RecentTranslations).Error; err != nil {
		return nil, fmt.Errorf("list recent translations: %w", err)
	}

	return activity, nil
}
