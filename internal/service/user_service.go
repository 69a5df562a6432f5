package service

import (
	"context"

	"lexihub/internal/dto"
	"lexihub/internal/models"
	"lexihub/internal/repository"
)

type UserService interface {
	GetUser(ctx context.Context, actor *models.User, userID string) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, actor *models.User, userID string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, skip, limit int) ([]dto.UserResponse, int64, error)
	GetMetadata(ctx context.Context, actor *models.User, userID string) (*dto.UserMetadataResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetUser returns a profile. Users may read themselves; only admins may read
// others.
func (s *userService) GetUser(ctx context.Context, actor *models.User, userID string) (*dto.UserResponse, error) {
	if actor.ID != userID && !isAdmin(actor) {
		return nil, ErrForbidden
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := dto.FromUserModel(*user)
	return &resp, nil
}

// UpdateUser applies a partial update. Self-or-admin, and only admins may
// change roles or activation.
func (s *userService) UpdateUser(ctx context.Context, actor *models.User, userID string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if actor.ID != userID && !isAdmin(actor) {
		return nil, ErrForbidden
	}
	if (req.Role != nil || req.IsActivated != nil) && !isAdmin(actor) {
		return nil, ErrForbidden
	}
	if req.Role != nil && !models.ValidRole(*req.Role) {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	req.ApplyTo(user)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.FromUserModel(*user)
	return &resp, nil
}

func (s *userService) ListUsers(ctx context.Context, skip, limit int) ([]dto.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.FromUserModel(u))
	}
	return responses, total, nil
}

// GetMetadata aggregates the user's contribution footprint. Self-or-admin.
func (s *userService) GetMetadata(ctx context.Context, actor *models.User, userID string) (*dto.UserMetadataResponse, error) {
	if actor.ID != userID && !isAdmin(actor) {
		return nil, ErrForbidden
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	activity, err := s.userRepo.ActivitySummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserMetadataResponse{
		UserID:              userID,
		EntriesCreated:      activity.EntriesCreated,
		EntriesUpdated:      activity.EntriesUpdated,
		TranslationsCreated: activity.TranslationsCreated,
		TranslationsUpdated: activity.TranslationsUpdated,
		RecentActivity: dto.ActivityCounts{
			EntriesLast30Days:      activity.EntriesLast30Days,
			TranslationsLast30Days: activity.TranslationsLast30Days,
		},
		TranslatedSources:  make([]dto.SourceResponse, 0, len(activity.TranslatedSources)),
		RecentEntries:      make([]dto.EntrySummary, 0, len(activity.RecentEntries)),
		RecentTranslations: make([]dto.TranslationSummary, 0, len(activity.RecentTranslations)),
	}
	for _, src := range activity.TranslatedSources {
		resp.TranslatedSources = append(resp.TranslatedSources, dto.FromSourceModel(src))
	}
	for _, e := range activity.RecentEntries {
		resp.RecentEntries = append(resp.RecentEntries, dto.ToEntrySummary(e))
	}
	for _, t := range activity.RecentTranslations {
		resp.RecentTranslations = append(resp.RecentTranslations, dto.ToTranslationSummary(t))
	}
	return resp, nil
}
