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

type TicketService interface {
	// PurchaseTicket books seats for the authenticated user. The booking
	// itself runs as one transaction in the repository, which re-reads the
	// hall capacity under lock; the service only resolves the showtime and
	// shapes the response.
	PurchaseTicket(ctx context.Context, userID string, req *request.PurchaseTicketRequest) (*response.TicketResponse, error)

	GetUserTickets(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.UserTicketsResponse, error)
}

type ticketService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTicketService(repo *repository.Repository, log *zap.Logger) TicketService {
	return &ticketService{
		repo: repo,
		log:  log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) PurchaseTicket(ctx context.Context, userID string, req *request.PurchaseTicketRequest) (*response.TicketResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Purchase validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(errs)
	}

	if req.Quantity < 1 {
		return nil, entity.ErrInvalidQuantity
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("user ID %q is not a UUID: %w", userID, entity.ErrInvalidInput)
	}

	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("showtime ID %q is not a UUID: %w", req.ShowtimeID, entity.ErrInvalidInput)
	}

	showDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("date %q is not in 2006-01-02 form: %w", req.Date, entity.ErrInvalidInput)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("get showtime: %w", err)
	}
	if showtime == nil {
		return nil, entity.ErrShowtimeNotFound
	}

	ticket := &entity.Ticket{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ShowDate:   showDate,
		Quantity:   req.Quantity,
		ShowtimeID: showtime.ID,
		UserID:     userUUID,
	}

	if err := s.repo.Ticket.Purchase(ctx, ticket, showtime); err != nil {
		return nil, err
	}

	resp := response.TicketToResponse(ticket, showtime)
	return &resp, nil
}

func (s *ticketService) GetUserTickets(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.UserTicketsResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("user ID %q is not a UUID: %w", userID, entity.ErrInvalidInput)
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}

	limit := req.Limit()
	offset := req.Offset()

	tickets, err := s.repo.Ticket.FindByUserID(ctx, userUUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get user tickets: %w", err)
	}

	total, err := s.repo.Ticket.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("count user tickets: %w", err)
	}

	showtimes := make(map[uuid.UUID]*entity.Showtime)
	ticketResponses := make([]response.TicketResponse, len(tickets))
	for i, ticket := range tickets {
		showtime, ok := showtimes[ticket.ShowtimeID]
		if !ok {
			showtime, err = s.repo.Showtime.FindByID(ctx, ticket.ShowtimeID)
			if err != nil {
				return nil, fmt.Errorf("get showtime for ticket: %w", err)
			}
			showtimes[ticket.ShowtimeID] = showtime
		}
		ticketResponses[i] = response.TicketToResponse(ticket, showtime)
	}

	return &response.UserTicketsResponse{
		Tickets:    response.NewPaginatedResponse(ticketResponses, req.Page, req.PerPage, total),
		MoneySpent: user.MoneySpent,
	}, nil
}
