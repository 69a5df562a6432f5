package service

import (
	"context"

	"lexihub/internal/dto"
	"lexihub/internal/models"
	"lexihub/internal/repository"
)

type TranslationService interface {
	ListByEntry(ctx context.Context, viewer *models.User, entryID string) ([]dto.TranslationResponse, error)
	CreateTranslation(ctx context.Context, actor *models.User, req dto.CreateTranslationRequest) (*dto.TranslationResponse, error)
	UpdateTranslation(ctx context.Context, actor *models.User, id string, req dto.UpdateTranslationRequest) (*dto.TranslationResponse, error)
	DeleteTranslation(ctx context.Context, actor *models.User, id string) error
}

type translationService struct {
	translationRepo repository.TranslationRepository
	entryRepo       repository.EntryRepository
	voteRepo        repository.VoteRepository
}

func NewTranslationService(
	translationRepo repository.TranslationRepository,
	entryRepo repository.EntryRepository,
	voteRepo repository.VoteRepository,
) TranslationService {
	return &translationService{
		translationRepo: translationRepo,
		entryRepo:       entryRepo,
		voteRepo:        voteRepo,
	}
}

// ListByEntry returns the entry's translations preferred-first. When a
// viewer is present their own vote is attached in a single batched lookup.
func (s *translationService) ListByEntry(ctx context.Context, viewer *models.User, entryID string) ([]dto.TranslationResponse, error) {
	exists, err := s.entryRepo.Exists(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEntryNotFound
	}

	translations, err := s.translationRepo.ListByEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TranslationResponse, 0, len(translations))
	for _, t := range translations {
		responses = append(responses, dto.FromTranslationModel(t))
	}

	if viewer != nil && len(responses) > 0 {
		ids := make([]string, 0, len(responses))
		for _, t := range responses {
			ids = append(ids, t.ID)
		}
		votes, err := s.voteRepo.VotesForTranslations(ctx, viewer.ID, ids)
		if err != nil {
			return nil, err
		}
		for i := range responses {
			if vt, ok := votes[responses[i].ID]; ok {
				v := vt
				responses[i].UserVote = &v
			}
		}
	}
	return responses, nil
}

func (s *translationService) CreateTranslation(ctx context.Context, actor *models.User, req dto.CreateTranslationRequest) (*dto.TranslationResponse, error) {
	exists, err := s.entryRepo.Exists(ctx, req.EntryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEntryNotFound
	}

	translation := req.ToModel()
	translation.CreatedBy = actor.ID
	translation.UpdatedBy = actor.ID
	if err := s.translationRepo.Create(ctx, &translation); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrTranslationConflict
		}
		return nil, err
	}
	resp := dto.FromTranslationModel(translation)
	return &resp, nil
}

func (s *translationService) UpdateTranslation(ctx context.Context, actor *models.User, id string, req dto.UpdateTranslationRequest) (*dto.TranslationResponse, error) {
	translation, err := s.translationRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrTranslationNotFound
		}
		return nil, err
	}
	if !canModify(actor, translation.CreatedBy) {
		return nil, ErrForbidden
	}

	req.ApplyTo(translation)
	translation.UpdatedBy = actor.ID
	if err := s.translationRepo.Update(ctx, translation); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrTranslationConflict
		}
		return nil, err
	}
	resp := dto.FromTranslationModel(*translation)
	return &resp, nil
}

func (s *translationService) DeleteTranslation(ctx context.Context, actor *models.User, id string) error {
	translation, err := s.translationRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrTranslationNotFound
		}
		return err
	}
	if !canDelete(actor, translation.CreatedBy) {
		return ErrForbidden
	}
	if err := s.translationRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrTranslationNotFound
		}
		return err
	}
	return nil
}
