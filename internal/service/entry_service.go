package service

import (
	"context"
	"encoding/json"
	"time"

	"lexihub/internal/cache"
	"lexihub/internal/config"
	"lexihub/internal/dto"
	"lexihub/internal/models"
	"lexihub/internal/repository"

	"gorm.io/datatypes"
)

const metadataCacheKey = "entries:metadata"

type EntryService interface {
	ListEntries(ctx context.Context, filter repository.EntryFilter) (*dto.PaginatedEntriesResponse, error)
	GetEntry(ctx context.Context, viewer *models.User, id string) (*dto.EntryResponse, error)
	GetMetadata(ctx context.Context) (*dto.EntryMetadataResponse, error)
	CreateEntry(ctx context.Context, actor *models.User, req dto.CreateEntryRequest) (*dto.EntryResponse, error)
	UpdateEntry(ctx context.Context, actor *models.User, id string, req dto.UpdateEntryRequest) (*dto.EntryResponse, error)
	BulkUpdateEntries(ctx context.Context, actor *models.User, req dto.BulkUpdateEntriesRequest) ([]dto.EntryResponse, error)
	DeleteEntry(ctx context.Context, actor *models.User, id string) error
	VerifyEntry(ctx context.Context, actor *models.User, id string, req dto.VerifyEntryRequest) (*dto.EntryResponse, error)

	ListRelationships(ctx context.Context, entryID string) ([]dto.RelationshipResponse, error)
	CreateRelationship(ctx context.Context, actor *models.User, entryID string, req dto.CreateRelationshipRequest) (*dto.RelationshipResponse, error)
	DeleteRelationship(ctx context.Context, actor *models.User, relationshipID string) error
	ListHistory(ctx context.Context, entryID string) ([]dto.EntryHistoryResponse, error)
}

type entryService struct {
	entryRepo repository.EntryRepository
	relRepo   repository.RelationshipRepository
	voteRepo  repository.VoteRepository
	cache     *cache.MetadataCache

	fuzzyThreshold float64
}

func NewEntryService(
	entryRepo repository.EntryRepository,
	relRepo repository.RelationshipRepository,
	voteRepo repository.VoteRepository,
	metadataCache *cache.MetadataCache,
	cfg *config.Config,
) EntryService {
	return &entryService{
		entryRepo:      entryRepo,
		relRepo:        relRepo,
		voteRepo:       voteRepo,
		cache:          metadataCache,
		fuzzyThreshold: cfg.FuzzyThreshold,
	}
}

func (s *entryService) ListEntries(ctx context.Context, filter repository.EntryFilter) (*dto.PaginatedEntriesResponse, error) {
	if filter.EntryType != "" && !models.ValidEntryType(filter.EntryType) {
		return nil, ErrInvalidEntryType
	}

	entries, total, err := s.entryRepo.List(ctx, filter, s.fuzzyThreshold)
	if err != nil {
		return nil, err
	}

	items := make([]dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.FromEntryModel(e))
	}
	resp := dto.NewPaginatedEntriesResponse(items, total, filter.Skip, filter.Limit)
	return &resp, nil
}

// GetEntry returns the entry with its translations. Authenticated viewers
// get their own vote attached to each translation in one batched lookup.
func (s *entryService) GetEntry(ctx context.Context, viewer *models.User, id string) (*dto.EntryResponse, error) {
	entry, err := s.entryRepo.GetByID(ctx, id, true)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	resp := dto.FromEntryModel(*entry)
	if viewer != nil && len(resp.Translations) > 0 {
		ids := make([]string, 0, len(resp.Translations))
		for _, t := range resp.Translations {
			ids = append(ids, t.ID)
		}
		votes, err := s.voteRepo.VotesForTranslations(ctx, viewer.ID, ids)
		if err != nil {
			return nil, err
		}
		for i := range resp.Translations {
			if vt, ok := votes[resp.Translations[i].ID]; ok {
				v := vt
				resp.Translations[i].UserVote = &v
			}
		}
	}
	return &resp, nil
}

func (s *entryService) GetMetadata(ctx context.Context) (*dto.EntryMetadataResponse, error) {
	var cached dto.EntryMetadataResponse
	if s.cache.Get(ctx, metadataCacheKey, &cached) {
		return &cached, nil
	}

	total, err := s.entryRepo.TotalCount(ctx)
	if err != nil {
		return nil, err
	}
	recentCount, err := s.entryRepo.CountUpdatedSince(ctx, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	newest, err := s.entryRepo.NewestUpdated(ctx, 20)
	if err != nil {
		return nil, err
	}
	withTranslations, err := s.entryRepo.WithNewestTranslations(ctx, 20)
	if err != nil {
		return nil, err
	}
	withComments, err := s.entryRepo.WithNewestComments(ctx, 20)
	if err != nil {
		return nil, err
	}

	resp := &dto.EntryMetadataResponse{
		TotalEntries:                  total,
		RecentlyUpdatedCount:          recentCount,
		NewestUpdatedEntries:          make([]dto.EntryResponse, 0, len(newest)),
		EntriesWithNewestTranslations: make([]dto.EntryResponse, 0, len(withTranslations)),
		EntriesWithNewestComments:     make([]dto.EntryWithCommentResponse, 0, len(withComments)),
	}
	for _, e := range newest {
		resp.NewestUpdatedEntries = append(resp.NewestUpdatedEntries, dto.FromEntryModel(e))
	}
	for _, e := range withTranslations {
		resp.EntriesWithNewestTranslations = append(resp.EntriesWithNewestTranslations, dto.FromEntryModel(e))
	}
	for _, ec := range withComments {
		item := dto.EntryWithCommentResponse{EntryResponse: dto.FromEntryModel(ec.Entry)}
		if ec.Comment != nil {
			comment := dto.FromCommentModel(*ec.Comment)
			item.NewestComment = &comment
		}
		resp.EntriesWithNewestComments = append(resp.EntriesWithNewestComments, item)
	}

	s.cache.Set(ctx, metadataCacheKey, resp)
	return resp, nil
}

func (s *entryService) CreateEntry(ctx context.Context, actor *models.User, req dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	if req.EntryType != nil && !models.ValidEntryType(*req.EntryType) {
		return nil, ErrInvalidEntryType
	}

	entry := req.ToModel()
	entry.CreatedBy = actor.ID
	entry.UpdatedBy = actor.ID
	if err := s.entryRepo.Create(ctx, &entry); err != nil {
		return nil, err
	}

	s.recordHistory(ctx, &entry, actor.ID, models.ChangeCreated, nil, entrySnapshot(&entry))
	s.cache.Invalidate(ctx, metadataCacheKey)

	resp := dto.FromEntryModel(entry)
	return &resp, nil
}

func (s *entryService) UpdateEntry(ctx context.Context, actor *models.User, id string, req dto.UpdateEntryRequest) (*dto.EntryResponse, error) {
	if req.EntryType != nil && !models.ValidEntryType(*req.EntryType) {
		return nil, ErrInvalidEntryType
	}

	entry, err := s.entryRepo.GetByID(ctx, id, false)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	if !canModify(actor, entry.CreatedBy) {
		return nil, ErrForbidden
	}

	before := entrySnapshot(entry)
	req.ApplyTo(entry)
	entry.UpdatedBy = actor.ID
	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.recordHistory(ctx, entry, actor.ID, models.ChangeUpdated, before, entrySnapshot(entry))
	s.cache.Invalidate(ctx, metadataCacheKey)

	resp := dto.FromEntryModel(*entry)
	return &resp, nil
}

// BulkUpdateEntries applies the same updates across many entries and returns
// the entries actually matched and updated. Callers without elevated roles
// only touch entries they created; matching nothing is reported as not found.
func (s *entryService) BulkUpdateEntries(ctx context.Context, actor *models.User, req dto.BulkUpdateEntriesRequest) ([]dto.EntryResponse, error) {
	if req.Updates.EntryType != nil && !models.ValidEntryType(*req.Updates.EntryType) {
		return nil, ErrInvalidEntryType
	}

	updates := map[string]any{"updated_by": actor.ID}
	if req.Updates.LanguageCode != nil {
		updates["language_code"] = *req.Updates.LanguageCode
	}
	if req.Updates.EntryType != nil {
		updates["entry_type"] = *req.Updates.EntryType
	}
	if req.Updates.IsVerified != nil {
		updates["is_verified"] = *req.Updates.IsVerified
	}

	restrictTo := ""
	if !isElevated(actor) {
		restrictTo = actor.ID
	}
	entries, err := s.entryRepo.BulkUpdate(ctx, req.EntryIDs, updates, restrictTo)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntriesUpdated
	}
	s.cache.Invalidate(ctx, metadataCacheKey)

	items := make([]dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.FromEntryModel(e))
	}
	return items, nil
}

func (s *entryService) DeleteEntry(ctx context.Context, actor *models.User, id string) error {
	entry, err := s.entryRepo.GetByID(ctx, id, false)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrEntryNotFound
		}
		return err
	}
	if !canDelete(actor, entry.CreatedBy) {
		return ErrForbidden
	}

	if err := s.entryRepo.DeleteCascade(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrEntryNotFound
		}
		return err
	}
	s.cache.Invalidate(ctx, metadataCacheKey)
	return nil
}

func (s *entryService) VerifyEntry(ctx context.Context, actor *models.User, id string, req dto.VerifyEntryRequest) (*dto.EntryResponse, error) {
	entry, err := s.entryRepo.GetByID(ctx, id, false)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	before := entrySnapshot(entry)
	entry.IsVerified = true
	entry.VerificationNotes = req.Notes
	entry.UpdatedBy = actor.ID
	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.recordHistory(ctx, entry, actor.ID, models.ChangeVerified, before, entrySnapshot(entry))
	s.cache.Invalidate(ctx, metadataCacheKey)

	resp := dto.FromEntryModel(*entry)
	return &resp, nil
}

func (s *entryService) ListRelationships(ctx context.Context, entryID string) ([]dto.RelationshipResponse, error) {
	exists, err := s.entryRepo.Exists(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEntryNotFound
	}

	rels, err := s.relRepo.ListByEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.RelationshipResponse, 0, len(rels))
	for _, rel := range rels {
		responses = append(responses, dto.FromRelationshipModel(rel))
	}
	return responses, nil
}

func (s *entryService) CreateRelationship(ctx context.Context, actor *models.User, entryID string, req dto.CreateRelationshipRequest) (*dto.RelationshipResponse, error) {
	if !models.ValidRelationshipType(req.RelationshipType) {
		return nil, ErrInvalidRelationshipType
	}
	for _, id := range []string{entryID, req.TargetEntryID} {
		exists, err := s.entryRepo.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrEntryNotFound
		}
	}

	rel := models.EntryRelationship{
		SourceEntryID:    entryID,
		TargetEntryID:    req.TargetEntryID,
		RelationshipType: req.RelationshipType,
		Notes:            req.Notes,
		CreatedBy:        actor.ID,
	}
	if err := s.relRepo.Create(ctx, &rel); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrRelationshipConflict
		}
		return nil, err
	}
	resp := dto.FromRelationshipModel(rel)
	return &resp, nil
}

func (s *entryService) DeleteRelationship(ctx context.Context, actor *models.User, relationshipID string) error {
	rel, err := s.relRepo.GetByID(ctx, relationshipID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrRelationshipNotFound
		}
		return err
	}
	if !canDelete(actor, rel.CreatedBy) {
		return ErrForbidden
	}
	if err := s.relRepo.Delete(ctx, relationshipID); err != nil {
		if repository.IsNotFound(err) {
			return ErrRelationshipNotFound
		}
		return err
	}
	return nil
}

func (s *entryService) ListHistory(ctx context.Context, entryID string) ([]dto.EntryHistoryResponse, error) {
	exists, err := s.entryRepo.Exists(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEntryNotFound
	}

	rows, err := s.entryRepo.ListHistory(ctx, entryID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.EntryHistoryResponse, 0, len(rows))
	for _, h := range rows {
		responses = append(responses, dto.FromHistoryModel(h))
	}
	return responses, nil
}

// recordHistory writes an audit row. History is best-effort: a failed write
// is not worth failing the request the user just made.
func (s *entryService) recordHistory(ctx context.Context, entry *models.Entry, actorID, changeType string, oldValues, newValues datatypes.JSON) {
	h := &models.EntryHistory{
		EntryID:    entry.ID,
		ChangedBy:  actorID,
		ChangeType: changeType,
		OldValues:  oldValues,
		NewValues:  newValues,
	}
	_ = s.entryRepo.CreateHistory(ctx, h)
}

// entrySnapshot captures the user-editable fields of an entry as JSON for
// the audit log.
func entrySnapshot(e *models.Entry) datatypes.JSON {
	snapshot := map[string]any{
		"primary_name":         e.PrimaryName,
		"original_script":      e.OriginalScript,
		"language_code":        e.LanguageCode,
		"entry_type":           e.EntryType,
		"alternative_names":    []string(e.AlternativeNames),
		"other_language_codes": []string(e.OtherLanguageCodes),
		"etymology":            e.Etymology,
		"definition":           e.Definition,
		"historical_context":   e.HistoricalContext,
		"is_verified":          e.IsVerified,
		"verification_notes":   e.VerificationNotes,
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
