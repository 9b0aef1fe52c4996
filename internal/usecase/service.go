package usecase

import (
	"box-office/internal/data/repository"
	"box-office/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	Hall     HallService
	Showtime ShowtimeService
	Ticket   TicketService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		Hall:     NewHallService(repo, log),
		Showtime: NewShowtimeService(repo, log),
		Ticket:   NewTicketService(repo, log),
	}
}
