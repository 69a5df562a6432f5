package repository

import (
	"context"
	"errors"
	"fmt"

	"lexihub/internal/models"

	"gorm.io/gorm"
)

type VoteRepository interface {
	GetByTranslationAndUser(ctx context.Context, translationID, userID string) (*models.TranslationVote, error)
	CreateOrUpdate(ctx context.Context, translationID, userID, voteType string) (*models.TranslationVote, error)
	Delete(ctx context.Context, translationID, userID string) error
	Recalculate(ctx context.Context, translationID string) (upvotes, downvotes int, err error)
	VotesForTranslations(ctx context.Context, userID string, translationIDs []string) (map[string]string, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) GetByTranslationAndUser(ctx context.Context, translationID, userID string) (*models.TranslationVote, error) {
	var vote models.TranslationVote
	err := r.db.WithContext(ctx).
		Where("translation_id = ? AND user_id = ?", translationID, userID).
		First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// CreateOrUpdate records the user's vote and keeps the denormalized counters
// on the translation in step, all inside one transaction. Re-casting the same
// vote is a no-op; switching decrements the old bucket (clamped at zero) and
// increments the new one.
func (r *voteRepository) CreateOrUpdate(ctx context.Context, translationID, userID, voteType string) (*models.TranslationVote, error) {
	var vote models.TranslationVote
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("translation_id = ? AND user_id = ?", translationID, userID).
			First(&vote).Error
		switch {
		case err == nil:
			if vote.VoteType == voteType {
				return nil
			}
			oldType := vote.VoteType
			vote.VoteType = voteType
			if err := tx.Save(&vote).Error; err != nil {
				return fmt.Errorf("update vote: %w", err)
			}
			if err := adjustCounter(tx, translationID, oldType, -1); err != nil {
				return err
			}
			return adjustCounter(tx, translationID, voteType, +1)
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote = models.TranslationVote{
				TranslationID: translationID,
				UserID:        userID,
				VoteType:      voteType,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return fmt.Errorf("create vote: %w", err)
			}
			return adjustCounter(tx, translationID, voteType, +1)
		default:
			return fmt.Errorf("load vote: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *voteRepository) Delete(ctx context.Context, translationID, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vote models.TranslationVote
		err := tx.Where("translation_id = ? AND user_id = ?", translationID, userID).
			First(&vote).Error
		if err != nil {
			return err
		}
		if err := tx.Delete(&vote).Error; err != nil {
			return fmt.Errorf("delete vote: %w", err)
		}
		return adjustCounter(tx, translationID, vote.VoteType, -1)
	})
}

// adjustCounter moves one of the translation's vote counters by delta.
// Decrements clamp at zero so counter drift can never push them negative.
func adjustCounter(tx *gorm.DB, translationID, voteType string, delta int) error {
	column := "upvotes"
	if voteType == models.VoteDown {
		column = "downvotes"
	}
	expr := column + " + ?"
	if delta < 0 {
		expr = "GREATEST(" + column + " - ?, 0)"
		delta = -delta
	}
	err := tx.Model(&models.Translation{}).
		Where("id = ?", translationID).
		Update(column, gorm.Expr(expr, delta)).Error
	if err != nil {
		return fmt.Errorf("adjust %s: %w", column, err)
	}
	return nil
}

// Recalculate rebuilds both counters from the vote rows. Admin repair for
// drift accumulated before clamping existed or after manual data edits.
func (r *voteRepository) Recalculate(ctx context.Context, translationID string) (int, int, error) {
	var up, down int64
	tx := r.db.WithContext(ctx)

	err := tx.Model(&models.TranslationVote{}).
		Where("translation_id = ? AND vote_type = ?", translationID, models.VoteUp).
		Count(&up).Error
	if err != nil {
		return 0, 0, fmt.Errorf("count upvotes: %w", err)
	}
	err = tx.Model(&models.TranslationVote{}).
		Where("translation_id = ? AND vote_type = ?", translationID, models.VoteDown).
		Count(&down).Error
	if err != nil {
		return 0, 0, fmt.Errorf("count downvotes: %w", err)
	}

	err = tx.Model(&models.Translation{}).
		Where("id = ?", translationID).
		Updates(map[string]any{"upvotes": up, "downvotes": down}).Error
	if err != nil {
		return 0, 0, fmt.Errorf("store recalculated counts: %w", err)
	}
	return int(up), int(down), nil
}

// VotesForTranslations returns the user's vote type keyed by translation ID,
// for annotating a translation list in one query.
func (r *voteRepository) VotesForTranslations(ctx context.Context, userID string, translationIDs []string) (map[string]string, error) {
	if len(translationIDs) == 0 {
		return map[string]string{}, nil
	}
	var votes []models.TranslationVote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND translation_id IN ?", userID, translationIDs).
		Find(&votes).Error
	if err != nil {
		return nil, fmt.Errorf("load user votes: %w", err)
	}
	result := make(map[string]string, len(votes))
	for _, v := range votes {
		result[v.TranslationID] = v.VoteType
	}
	return result, nil
}
