package service

import (
	"context"

	"lexihub/internal/dto"
	"lexihub/internal/repository"
)

type SourceService interface {
	ListSources(ctx context.Context, skip, limit int) ([]dto.SourceResponse, int64, error)
	GetSource(ctx context.Context, id string) (*dto.SourceResponse, error)
	CreateSource(ctx context.Context, req dto.CreateSourceRequest) (*dto.SourceResponse, error)
	UpdateSource(ctx context.Context, id string, req dto.UpdateSourceRequest) (*dto.SourceResponse, error)
}

type sourceService struct {
	sourceRepo repository.SourceRepository
}

func NewSourceService(sourceRepo repository.SourceRepository) SourceService {
	return &sourceService{sourceRepo: sourceRepo}
}

func (s *sourceService) ListSources(ctx context.Context, skip, limit int) ([]dto.SourceResponse, int64, error) {
	sources, total, err := s.sourceRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]dto.SourceResponse, 0, len(sources))
	for _, src := range sources {
		responses = append(responses, dto.FromSourceModel(src))
	}
	return responses, total, nil
}

func (s *sourceService) GetSource(ctx context.Context, id string) (*dto.SourceResponse, error) {
	source, err := s.sourceRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrSourceNotFound
		}
		return nil, err
	}
	resp := dto.FromSourceModel(*source)
	return &resp, nil
}

func (s *sourceService) CreateSource(ctx context.Context, req dto.CreateSourceRequest) (*dto.SourceResponse, error) {
	source := req.ToModel()
	if err := s.sourceRepo.Create(ctx, &source); err != nil {
		return nil, err
	}
	resp := dto.FromSourceModel(source)
	return &resp, nil
}

func (s *sourceService) UpdateSource(ctx context.Context, id string, req dto.UpdateSourceRequest) (*dto.SourceResponse, error) {
	source, err := s.sourceRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrSourceNotFound
		}
		return nil, err
	}

	req.ApplyTo(source)
	if err := s.sourceRepo.Update(ctx, source); err != nil {
		return nil, err
	}
	resp := dto.FromSourceModel(*source)
	return &resp, nil
}
