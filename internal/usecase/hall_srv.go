package usecase

import (
	"context"
	"fmt"
	"time"

	"box-office/internal/data/entity"
	"box-office/internal/data/repository"
	"box-office/internal/dto/request"
	"box-office/internal/dto/response"
	"box-office/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HallService interface {
	CreateHall(ctx context.Context, req *request.CreateHallRequest) (*response.HallResponse, error)
	GetHalls(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.HallResponse], error)
	GetHallByID(ctx context.Context, hallID string) (*response.HallResponse, error)
	UpdateHall(ctx context.Context, hallID string, req *request.UpdateHallRequest) (*response.HallResponse, error)
}

type hallService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewHallService(repo *repository.Repository, log *zap.Logger) HallService {
	return &hallService{
		repo: repo,
		log:  log.With(zap.String("service", "hall")),
	}
}

func (s *hallService) CreateHall(ctx context.Context, req *request.CreateHallRequest) (*response.HallResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create hall validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(errs)
	}

	now := time.Now()
	hall := &entity.Hall{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		Capacity: req.Capacity,
	}

	if err := s.repo.Hall.Create(ctx, hall); err != nil {
		return nil, err
	}

	s.log.Info("Hall created",
		zap.String("hall_id", hall.ID.String()),
		zap.String("name", hall.Name),
		zap.Int("capacity", hall.Capacity),
	)

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) GetHalls(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.HallResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	halls, err := s.repo.Hall.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get halls: %w", err)
	}

	total, err := s.repo.Hall.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count halls: %w", err)
	}

	hallResponses := make([]response.HallResponse, len(halls))
	for i, hall := range halls {
		hallResponses[i] = response.HallToResponse(hall)
	}

	return response.NewPaginatedResponse(hallResponses, req.Page, req.PerPage, total), nil
}

func (s *hallService) GetHallByID(ctx context.Context, hallID string) (*response.HallResponse, error) {
	id, err := uuid.Parse(hallID)
	if err != nil {
		return nil, fmt.Errorf("hall ID %q is not a UUID: %w", hallID, entity.ErrInvalidInput)
	}

	hall, err := s.repo.Hall.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get hall: %w", err)
	}
	if hall == nil {
		return nil, entity.ErrHallNotFound
	}

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) UpdateHall(ctx context.Context, hallID string, req *request.UpdateHallRequest) (*response.HallResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update hall validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(errs)
	}

	id, err := uuid.Parse(hallID)
	if err != nil {
		return nil, fmt.Errorf("hall ID %q is not a UUID: %w", hallID, entity.ErrInvalidInput)
	}

	hall, err := s.repo.Hall.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get hall: %w", err)
	}
	if hall == nil {
		return nil, entity.ErrHallNotFound
	}

	hall.Name = req.Name
	hall.Capacity = req.Capacity
	hall.UpdatedAt = time.Now()

	// The repository re-checks the lock state inside its transaction; the
	// fetch above only gives early feedback for a missing hall.
	if err := s.repo.Hall.Update(ctx, hall); err != nil {
		return nil, err
	}

	s.log.Info("Hall updated",
		zap.String("hall_id", hall.ID.String()),
		zap.String("name", hall.Name),
		zap.Int("capacity", hall.Capacity),
	)

	resp := response.HallToResponse(hall)
	return &resp, nil
}
