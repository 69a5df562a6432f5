package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"lexihub/internal/dto"
	"lexihub/internal/models"
	"lexihub/internal/repository"

	"gorm.io/datatypes"
)

type CommentService interface {
	ListByEntry(ctx context.Context, entryID string) ([]dto.CommentResponse, error)
	CreateComment(ctx context.Context, actor *models.User, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, actor *models.User, id string, req dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, actor *models.User, id string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	entryRepo   repository.EntryRepository
}

func NewCommentService(commentRepo repository.CommentRepository, entryRepo repository.EntryRepository) CommentService {
	return &commentService{commentRepo: commentRepo, entryRepo: entryRepo}
}

func (s *commentService) ListByEntry(ctx context.Context, entryID string) ([]dto.CommentResponse, error) {
	exists, err := s.entryRepo.Exists(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEntryNotFound
	}

	comments, err := s.commentRepo.ListByEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, dto.FromCommentModel(c))
	}
	return responses, nil
}

// CreateComment posts a comment on an entry. A reply's parent must exist and
// belong to the same entry, otherwise threads could span entries.
func (s *commentService) CreateComment(ctx context.Context, actor *models.User, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	exists, err := s.entryRepo.Exists(ctx, req.EntryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEntryNotFound
	}

	if req.ParentCommentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentCommentID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, ErrCommentNotFound
			}
			return nil, err
		}
		if parent.EntryID != req.EntryID {
			return nil, ErrInvalidParentComment
		}
	}

	comment := req.ToModel()
	comment.UserID = actor.ID
	if err := s.commentRepo.Create(ctx, &comment); err != nil {
		return nil, err
	}

	// Reload so the response carries the author.
	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromCommentModel(*created)
	return &resp, nil
}

// UpdateComment changes the comment text, author only. The previous content
// is appended to the edit_history JSON log and is_edited flips on; posting
// identical content changes nothing.
func (s *commentService) UpdateComment(ctx context.Context, actor *models.User, id string, req dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.UserID != actor.ID {
		return nil, ErrForbidden
	}

	if req.Content != comment.Content {
		history, err := appendEditHistory(comment.EditHistory, comment.Content)
		if err != nil {
			return nil, err
		}
		comment.EditHistory = history
		comment.Content = req.Content
		comment.IsEdited = true
		if err := s.commentRepo.Update(ctx, comment); err != nil {
			return nil, err
		}
	}

	resp := dto.FromCommentModel(*comment)
	return &resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, actor *models.User, id string) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.UserID != actor.ID && !isAdmin(actor) {
		return ErrForbidden
	}
	if err := s.commentRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

// appendEditHistory adds the outgoing content to the JSON log, keyed by the
// number of prior edits ("0", "1", ...).
func appendEditHistory(history datatypes.JSON, oldContent string) (datatypes.JSON, error) {
	log := map[string]any{}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &log); err != nil {
			return nil, err
		}
	}
	log[strconv.Itoa(len(log))] = map[string]any{
		"old_content": oldContent,
		"edited_at":   time.Now().UTC().Format(time.RFC3339),
	}
	raw, err := json.Marshal(log)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
