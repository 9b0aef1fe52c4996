package adaptor

import (
	"errors"
	"net/http"

	"box-office/internal/data/entity"
	"box-office/internal/usecase"
	"box-office/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Hall     *HallHandler
	Showtime *ShowtimeHandler
	Ticket   *TicketHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Hall:     NewHallHandler(service.Hall, log),
		Showtime: NewShowtimeHandler(service.Showtime, log),
		Ticket:   NewTicketHandler(service.Ticket, log),
	}
}

// respondServiceError maps a service error onto an HTTP status. Every
// rejected precondition arrives as a domain sentinel or a typed validation
// error; anything unrecognized is a server fault.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *utils.ValidationError

	switch {
	case errors.Is(err, entity.ErrHallNotFound),
		errors.Is(err, entity.ErrShowtimeNotFound),
		errors.Is(err, entity.ErrUserNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrInvalidCredentials):
		log.Warn(operation+" failed - bad credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.As(err, &validationErr):
		log.Warn(operation+" rejected", zap.Any("errors", validationErr.Fields))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, entity.ErrHallNameTaken),
		errors.Is(err, entity.ErrHallLocked),
		errors.Is(err, entity.ErrShowtimeLocked),
		errors.Is(err, entity.ErrShowtimeOverlap),
		errors.Is(err, entity.ErrInvalidQuantity),
		errors.Is(err, entity.ErrCapacityExceeded),
		errors.Is(err, entity.ErrSalesClosed),
		errors.Is(err, entity.ErrPastDate),
		errors.Is(err, entity.ErrUsernameTaken),
		errors.Is(err, entity.ErrInvalidInput):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
