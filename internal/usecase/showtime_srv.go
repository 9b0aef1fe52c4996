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

type ShowtimeService interface {
	// Admin endpoints
	CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, showtimeID string, req *request.UpdateShowtimeRequest) (*response.ShowtimeResponse, error)

	// Public endpoints
	GetShowtimes(ctx context.Context, day, sort string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ShowtimeResponse], error)
	GetShowtimeByID(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error)
	RemainingSeats(ctx context.Context, showtimeID, date string) (*response.SeatAvailabilityResponse, error)
	CountRunning(ctx context.Context) (*response.RunningShowtimesResponse, error)
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
	}
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create showtime validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(errs)
	}

	showtime, err := s.parseShowtime(req.MovieTitle, req.TicketPrice, req.StartDate, req.FinishDate, req.StartTime, req.FinishTime, req.HallID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	showtime.Base = entity.Base{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if errs := showtime.ValidateSchedule(now); len(errs) > 0 {
		s.log.Warn("Create showtime schedule rejected", zap.Any("errors", errs))
		return nil, utils.NewValidationError(errs)
	}

	hall, err := s.repo.Hall.FindByID(ctx, showtime.HallID)
	if err != nil {
		return nil, fmt.Errorf("get hall: %w", err)
	}
	if hall == nil {
		return nil, entity.ErrHallNotFound
	}

	// The repository runs the overlap check under the hall row lock.
	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		return nil, err
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("movie_title", showtime.MovieTitle),
		zap.String("hall_id", showtime.HallID.String()),
	)

	resp := response.ShowtimeToResponse(showtime)
	resp.HallName = hall.Name
	return &resp, nil
}

func (s *showtimeService) UpdateShowtime(ctx context.Context, showtimeID string, req *request.UpdateShowtimeRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update showtime validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(errs)
	}

	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("showtime ID %q is not a UUID: %w", showtimeID, entity.ErrInvalidInput)
	}

	existing, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get showtime: %w", err)
	}
	if existing == nil {
		return nil, entity.ErrShowtimeNotFound
	}

	showtime, err := s.parseShowtime(req.MovieTitle, req.TicketPrice, req.StartDate, req.FinishDate, req.StartTime, req.FinishTime, req.HallID)
	if err != nil {
		return nil, err
	}
	showtime.Base = existing.Base

	now := time.Now()
	if errs := showtime.ValidateSchedule(now); len(errs) > 0 {
		s.log.Warn("Update showtime schedule rejected", zap.Any("errors", errs))
		return nil, utils.NewValidationError(errs)
	}

	hall, err := s.repo.Hall.FindByID(ctx, showtime.HallID)
	if err != nil {
		return nil, fmt.Errorf("get hall: %w", err)
	}
	if hall == nil {
		return nil, entity.ErrHallNotFound
	}

	if err := s.repo.Showtime.Update(ctx, showtime); err != nil {
		return nil, err
	}

	s.log.Info("Showtime updated",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("movie_title", showtime.MovieTitle),
		zap.String("hall_id", showtime.HallID.String()),
	)

	resp := response.ShowtimeToResponse(showtime)
	resp.HallName = hall.Name
	return &resp, nil
}

func (s *showtimeService) GetShowtimes(ctx context.Context, day, sort string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ShowtimeResponse], error) {
	target := entity.DateOnly(time.Now())
	switch day {
	case "", "today":
	case "tomorrow":
		target = target.AddDate(0, 0, 1)
	default:
		return nil, fmt.Errorf("day filter %q, expected today or tomorrow: %w", day, entity.ErrInvalidInput)
	}

	switch sort {
	case "", "start_time", "price_min", "price_max":
	default:
		return nil, fmt.Errorf("sort %q, expected start_time, price_min or price_max: %w", sort, entity.ErrInvalidInput)
	}

	limit := req.Limit()
	offset := req.Offset()

	showtimes, err := s.repo.Showtime.FindPlayingOn(ctx, target, sort, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get showtimes: %w", err)
	}

	total, err := s.repo.Showtime.CountPlayingOn(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("count showtimes: %w", err)
	}

	halls := make(map[uuid.UUID]*entity.Hall)
	showtimeResponses := make([]response.ShowtimeResponse, len(showtimes))
	for i, st := range showtimes {
		resp := response.ShowtimeToResponse(st)

		hall, ok := halls[st.HallID]
		if !ok {
			hall, err = s.repo.Hall.FindByID(ctx, st.HallID)
			if err != nil {
				return nil, fmt.Errorf("get hall for showtime: %w", err)
			}
			halls[st.HallID] = hall
		}

		if hall != nil {
			resp.HallName = hall.Name

			sold, err := s.repo.Ticket.SumQuantityForDate(ctx, st.ID, target)
			if err != nil {
				return nil, fmt.Errorf("sum sold tickets: %w", err)
			}
			left := hall.Capacity - sold
			resp.SeatsLeft = &left
		}

		showtimeResponses[i] = resp
	}

	return response.NewPaginatedResponse(showtimeResponses, req.Page, req.PerPage, total), nil
}

func (s *showtimeService) GetShowtimeByID(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error) {
	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("showtime ID %q is not a UUID: %w", showtimeID, entity.ErrInvalidInput)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get showtime: %w", err)
	}
	if showtime == nil {
		return nil, entity.ErrShowtimeNotFound
	}

	resp := response.ShowtimeToResponse(showtime)

	hall, err := s.repo.Hall.FindByID(ctx, showtime.HallID)
	if err != nil {
		return nil, fmt.Errorf("get hall: %w", err)
	}
	if hall != nil {
		resp.HallName = hall.Name
	}

	return &resp, nil
}

func (s *showtimeService) RemainingSeats(ctx context.Context, showtimeID, date string) (*response.SeatAvailabilityResponse, error) {
	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("showtime ID %q is not a UUID: %w", showtimeID, entity.ErrInvalidInput)
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("date %q is not in 2006-01-02 form: %w", date, entity.ErrInvalidInput)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get showtime: %w", err)
	}
	if showtime == nil {
		return nil, entity.ErrShowtimeNotFound
	}

	hall, err := s.repo.Hall.FindByID(ctx, showtime.HallID)
	if err != nil {
		return nil, fmt.Errorf("get hall: %w", err)
	}
	if hall == nil {
		return nil, entity.ErrHallNotFound
	}

	sold, err := s.repo.Ticket.SumQuantityForDate(ctx, showtime.ID, day)
	if err != nil {
		return nil, fmt.Errorf("sum sold tickets: %w", err)
	}

	return &response.SeatAvailabilityResponse{
		ShowtimeID: showtime.ID.String(),
		Date:       day.Format("2006-01-02"),
		SeatsLeft:  hall.Capacity - sold,
	}, nil
}

func (s *showtimeService) CountRunning(ctx context.Context) (*response.RunningShowtimesResponse, error) {
	count, err := s.repo.Showtime.CountRunningAt(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("count running showtimes: %w", err)
	}

	return &response.RunningShowtimesResponse{Running: count}, nil
}

func (s *showtimeService) parseShowtime(title string, price int, startDate, finishDate, startTime, finishTime, hallID string) (*entity.Showtime, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("start date %q is not in 2006-01-02 form: %w", startDate, entity.ErrInvalidInput)
	}
	finish, err := time.Parse("2006-01-02", finishDate)
	if err != nil {
		return nil, fmt.Errorf("finish date %q is not in 2006-01-02 form: %w", finishDate, entity.ErrInvalidInput)
	}

	startClock, err := entity.ParseClock(startTime)
	if err != nil {
		return nil, fmt.Errorf("start time %q: %w", startTime, entity.ErrInvalidInput)
	}
	finishClock, err := entity.ParseClock(finishTime)
	if err != nil {
		return nil, fmt.Errorf("finish time %q: %w", finishTime, entity.ErrInvalidInput)
	}

	hallUUID, err := uuid.Parse(hallID)
	if err != nil {
		return nil, fmt.Errorf("hall ID %q is not a UUID: %w", hallID, entity.ErrInvalidInput)
	}

	return &entity.Showtime{
		MovieTitle:  title,
		TicketPrice: price,
		StartDate:   start,
		FinishDate:  finish,
		StartTime:   startClock,
		FinishTime:  finishClock,
		HallID:      hallUUID,
	}, nil
}
