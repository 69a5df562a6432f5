package repository

import (
	"context"
	"fmt"
	"time"

	"lexihub/internal/models"

	"gorm.io/gorm"
)

// EntrySortFields is the whitelist of columns the list endpoint may sort by.
// Anything else falls back to created_at.
var EntrySortFields = map[string]bool{
	"primary_name":    true,
	"original_script": true,
	"language_code":   true,
	"entry_type":      true,
	"is_verified":     true,
	"created_at":      true,
	"updated_at":      true,
}

// EntryFilter collects the query parameters of GET /entries.
type EntryFilter struct {
	LanguageCode      string
	OtherLanguageCode string
	EntryType         string
	Search            string
	FuzzySearch       string
	SortedBy          string
	SortDirection     string
	Skip              int
	Limit             int
	IncludeTranslations bool
}

// EntryWithComment pairs an entry with its single newest comment for the
// dashboard.
type EntryWithComment struct {
	Entry   models.Entry
	Comment *models.Comment
}

type EntryRepository interface {
	List(ctx context.Context, filter EntryFilter, fuzzyThreshold float64) ([]models.Entry, int64, error)
	GetByID(ctx context.Context, id string, withTranslations bool) (*models.Entry, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, entry *models.Entry) error
	Update(ctx context.Context, entry *models.Entry) error
	BulkUpdate(ctx context.Context, ids []string, updates map[string]any, restrictToCreator string) ([]models.Entry, error)
	DeleteCascade(ctx context.Context, id string) error

	TotalCount(ctx context.Context) (int64, error)
	CountUpdatedSince(ctx context.Context, since time.Time) (int64, error)
	NewestUpdated(ctx context.Context, limit int) ([]models.Entry, error)
	WithNewestTranslations(ctx context.Context, limit int) ([]models.Entry, error)
	WithNewestComments(ctx context.Context, limit int) ([]EntryWithComment, error)

	CreateHistory(ctx context.Context, h *models.EntryHistory) error
	ListHistory(ctx context.Context, entryID string) ([]models.EntryHistory, error)
}

type entryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

// preloadOrderedTranslations loads translations preferred-first, then oldest
// first, which is the display order everywhere translations appear.
func preloadOrderedTranslations(db *gorm.DB) *gorm.DB {
	return db.Preload("Translations", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("is_preferred DESC, created_at ASC")
	})
}

func (r *entryRepository) List(ctx context.Context, filter EntryFilter, fuzzyThreshold float64) ([]models.Entry, int64, error) {
	if filter.FuzzySearch != "" {
		return r.listFuzzy(ctx, filter, fuzzyThreshold)
	}

	db := r.db.WithContext(ctx).Model(&models.Entry{})
	if filter.LanguageCode != "" {
		db = db.Where("language_code = ?", filter.LanguageCode)
	}
	if filter.OtherLanguageCode != "" {
		db = db.Where("other_language_codes @> ARRAY[?]::text[]", filter.OtherLanguageCode)
	}
	if filter.EntryType != "" {
		db = db.Where("entry_type = ?", filter.EntryType)
	}
	if filter.Search != "" {
		db = db.Where("search_vector @@ plainto_tsquery('simple', ?)", filter.Search)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count entries: %w", err)
	}

	sortCol := filter.SortedBy
	if !EntrySortFields[sortCol] {
		sortCol = "created_at"
	}
	dir := "ASC"
	if filter.SortDirection == "desc" {
		dir = "DESC"
	}

	if filter.IncludeTranslations {
		db = preloadOrderedTranslations(db)
	}

	var entries []models.Entry
	err := db.Order(sortCol + " " + dir).
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list entries: %w", err)
	}
	return entries, total, nil
}

// listFuzzy is the trigram path. similarity() has no gorm expression, so
// both the count and the page run as raw SQL; ordering is by similarity
// descending and overrides any requested sort.
func (r *entryRepository) listFuzzy(ctx context.Context, filter EntryFilter, threshold float64) ([]models.Entry, int64, error) {
	db := r.db.WithContext(ctx)

	where := "similarity(primary_name, ?) > ?"
	args := []any{filter.FuzzySearch, threshold}
	if filter.LanguageCode != "" {
		where += " AND language_code = ?"
		args = append(args, filter.LanguageCode)
	}
	if filter.OtherLanguageCode != "" {
		where += " AND other_language_codes @> ARRAY[?]::text[]"
		args = append(args, filter.OtherLanguageCode)
	}
	if filter.EntryType != "" {
		where += " AND entry_type = ?"
		args = append(args, filter.EntryType)
	}

	var total int64
	countSQL := "SELECT count(*) FROM entries WHERE " + where
	if err := db.Raw(countSQL, args...).Scan(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count fuzzy entries: %w", err)
	}

	var entries []models.Entry
	pageSQL := "SELECT * FROM entries WHERE " + where +
		" ORDER BY similarity(primary_name, ?) DESC LIMIT ? OFFSET ?"
	pageArgs := append(append([]any{}, args...), filter.FuzzySearch, filter.Limit, filter.Skip)
	if err := db.Raw(pageSQL, pageArgs...).Scan(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("fuzzy search entries: %w", err)
	}

	if filter.IncludeTranslations && len(entries) > 0 {
		if err := r.attachTranslations(ctx, entries); err != nil {
			return nil, 0, err
		}
	}
	return entries, total, nil
}

// attachTranslations rebuilds the ordered Translations association for rows
// fetched outside gorm's Preload machinery.
func (r *entryRepository) attachTranslations(ctx context.Context, entries []models.Entry) error {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}

	var translations []models.Translation
	err := r.db.WithContext(ctx).
		Where("entry_id IN ?", ids).
		Order("is_preferred DESC, created_at ASC").
		Find(&translations).Error
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	byEntry := make(map[string][]models.Translation, len(entries))
	for _, t := range translations {
		byEntry[t.EntryID] = append(byEntry[t.EntryID], t)
	}
	for i := range entries {
		entries[i].Translations = byEntry[entries[i].ID]
	}
	return nil
}

func (r *entryRepository) GetByID(ctx context.Context, id string, withTranslations bool) (*models.Entry, error) {
	db := r.db.WithContext(ctx)
	if withTranslations {
		db = preloadOrderedTranslations(db)
	}
	var entry models.Entry
	if err := db.First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Entry{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check entry exists: %w", err)
	}
	return count > 0, nil
}

func (r *entryRepository) Create(ctx context.Context, entry *models.Entry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

func (r *entryRepository) Update(ctx context.Context, entry *models.Entry) error {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return nil
}

// BulkUpdate applies the same column updates to every listed entry and
// returns the rows that were actually matched and updated. When
// restrictToCreator is non-empty only rows created by that user are touched.
func (r *entryRepository) BulkUpdate(ctx context.Context, ids []string, updates map[string]any, restrictToCreator string) ([]models.Entry, error) {
	if len(ids) == 0 || len(updates) == 0 {
		return []models.Entry{}, nil
	}

	var matched []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		db := tx.Model(&models.Entry{}).Where("id IN ?", ids)
		if restrictToCreator != "" {
			db = db.Where("created_by = ?", restrictToCreator)
		}
		if err := db.Pluck("id", &matched).Error; err != nil {
			return fmt.Errorf("match entries for bulk update: %w", err)
		}
		if len(matched) == 0 {
			return nil
		}
		err := tx.Model(&models.Entry{}).Where("id IN ?", matched).Updates(updates).Error
		if err != nil {
			return fmt.Errorf("bulk update entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return []models.Entry{}, nil
	}

	var entries []models.Entry
	err = preloadOrderedTranslations(r.db.WithContext(ctx)).
		Where("id IN ?", matched).
		Order("updated_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("reload bulk updated entries: %w", err)
	}
	return entries, nil
}

// DeleteCascade removes the entry and every dependent row in one
// transaction: votes on its translations first, then translations, comments,
// relationships in either direction, history, and finally the entry itself.
func (r *entryRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("translation_id IN (?)",
			tx.Model(&models.Translation{}).Select("id").Where("entry_id = ?", id),
		).Delete(&models.TranslationVote{}).Error
		if err != nil {
			return fmt.Errorf("delete votes: %w", err)
		}
		if err := tx.Where("entry_id = ?", id).Delete(&models.Translation{}).Error; err != nil {
			return fmt.Errorf("delete translations: %w", err)
		}
		if err := tx.Where("entry_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		err = tx.Where("source_entry_id = ? OR target_entry_id = ?", id, id).
			Delete(&models.EntryRelationship{}).Error
		if err != nil {
			return fmt.Errorf("delete relationships: %w", err)
		}
		if err := tx.Where("entry_id = ?", id).Delete(&models.EntryHistory{}).Error; err != nil {
			return fmt.Errorf("delete history: %w", err)
		}

		result := tx.Delete(&models.Entry{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("delete entry: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *entryRepository) TotalCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Entry{}).Count(&count).Error
	return count, err
}

func (r *entryRepository) CountUpdatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Entry{}).
		Where("updated_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *entryRepository) NewestUpdated(ctx context.Context, limit int) ([]models.Entry, error) {
	var entries []models.Entry
	err := preloadOrderedTranslations(r.db.WithContext(ctx)).
		Order("updated_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("newest updated entries: %w", err)
	}
	return entries, nil
}

// WithNewestTranslations returns entries ranked by the recency of their most
// recently updated translation.
func (r *entryRepository) WithNewestTranslations(ctx context.Context, limit int) ([]models.Entry, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Translation{}).
		Select("entry_id").
		Group("entry_id").
		Order("MAX(updated_at) DESC").
		Limit(limit).
		Pluck("entry_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("rank entries by translation recency: %w", err)
	}
	if len(ids) == 0 {
		return []models.Entry{}, nil
	}

	var entries []models.Entry
	err = preloadOrderedTranslations(r.db.WithContext(ctx)).
		Where("id IN ?", ids).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("load ranked entries: %w", err)
	}

	// Find() returns rows in arbitrary order; restore the ranking.
	byID := make(map[string]models.Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	ordered := make([]models.Entry, 0, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			ordered = append(ordered, e)
		}
	}
	return ordered, nil
}

// WithNewestComments returns commented entries ranked by the recency of
// their most recently touched translation, each annotated with its newest
// comment. Entries without translations never rank. Both the ranking and
// the comment lookup are batched so the dashboard never does per-entry
// queries.
func (r *entryRepository) WithNewestComments(ctx context.Context, limit int) ([]EntryWithComment, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Translation{}).
		Select("entry_id").
		Where("entry_id IN (?)", r.db.Model(&models.Comment{}).Select("entry_id")).
		Group("entry_id").
		Order("MAX(updated_at) DESC").
		Limit(limit).
		Pluck("entry_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("rank commented entries by translation recency: %w", err)
	}
	if len(ids) == 0 {
		return []EntryWithComment{}, nil
	}

	var entries []models.Entry
	err = preloadOrderedTranslations(r.db.WithContext(ctx)).
		Where("id IN ?", ids).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("load commented entries: %w", err)
	}

	var comments []models.Comment
	err = r.db.WithContext(ctx).
		Preload("User").
		Where("entry_id IN ?", ids).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("load newest comments: %w", err)
	}
	newest := make(map[string]*models.Comment, len(ids))
	for i := range comments {
		c := comments[i]
		if _, seen := newest[c.EntryID]; !seen {
			newest[c.EntryID] = &c
		}
	}

	byID := make(map[string]models.Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	result := make([]EntryWithComment, 0, len(ids))
	for _, id := range ids {
		e, ok := byID[id]
		if !ok {
			continue
		}
		result = append(result, EntryWithComment{Entry: e, Comment: newest[id]})
	}
	return result, nil
}

func (r *entryRepository) CreateHistory(ctx context.Context, h *models.EntryHistory) error {
	if err := r.db.WithContext(ctx).Create(h).Error; err != nil {
		return fmt.Errorf("create history row: %w", err)
	}
	return nil
}

func (r *entryRepository) ListHistory(ctx context.Context, entryID string) ([]models.EntryHistory, error) {
	var rows []models.EntryHistory
	err := r.db.WithContext(ctx).
		Where("entry_id = ?", entryID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list entry history: %w", err)
	}
	return rows, nil
}
