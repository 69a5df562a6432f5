package service

import (
	"context"

	"lexihub/internal/dto"
	"lexihub/internal/models"
	"lexihub/internal/repository"
)

type VoteService interface {
	CastVote(ctx context.Context, actor *models.User, translationID string, req dto.VoteRequest) (*dto.VoteResponse, error)
	GetVote(ctx context.Context, actor *models.User, translationID string) (*dto.VoteResponse, error)
	RemoveVote(ctx context.Context, actor *models.User, translationID string) error
	RecalculateVotes(ctx context.Context, translationID string) (*dto.RecalculateVotesResponse, error)
}

type voteService struct {
	voteRepo        repository.VoteRepository
	translationRepo repository.TranslationRepository
}

func NewVoteService(voteRepo repository.VoteRepository, translationRepo repository.TranslationRepository) VoteService {
	return &voteService{voteRepo: voteRepo, translationRepo: translationRepo}
}

// CastVote records or switches the caller's vote on a translation. One row
// per (translation, user); the counters move in the same transaction.
func (s *voteService) CastVote(ctx context.Context, actor *models.User, translationID string, req dto.VoteRequest) (*dto.VoteResponse, error) {
	if _, err := s.translationRepo.GetByID(ctx, translationID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrTranslationNotFound
		}
		return nil, err
	}

	vote, err := s.voteRepo.CreateOrUpdate(ctx, translationID, actor.ID, req.VoteType)
	if err != nil {
		return nil, err
	}
	resp := dto.FromVoteModel(*vote)
	return &resp, nil
}

func (s *voteService) GetVote(ctx context.Context, actor *models.User, translationID string) (*dto.VoteResponse, error) {
	vote, err := s.voteRepo.GetByTranslationAndUser(ctx, translationID, actor.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrVoteNotFound
		}
		return nil, err
	}
	resp := dto.FromVoteModel(*vote)
	return &resp, nil
}

func (s *voteService) RemoveVote(ctx context.Context, actor *models.User, translationID string) error {
	err := s.voteRepo.Delete(ctx, translationID, actor.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrVoteNotFound
		}
		return err
	}
	return nil
}

// RecalculateVotes rebuilds the denormalized counters from the vote rows.
func (s *voteService) RecalculateVotes(ctx context.Context, translationID string) (*dto.RecalculateVotesResponse, error) {
	if _, err := s.translationRepo.GetByID(ctx, translationID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrTranslationNotFound
		}
		return nil, err
	}

	up, down, err := s.voteRepo.Recalculate(ctx, translationID)
	if err != nil {
		return nil, err
	}
	return &dto.RecalculateVotesResponse{
		Message:   "Vote counts recalculated",
		Upvotes:   up,
		Downvotes: down,
	}, nil
}
