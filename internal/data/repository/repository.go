package repository

import (
	"box-office/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Hall     HallRepository
	Showtime ShowtimeRepository
	Ticket   TicketRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Hall:     NewHallRepository(db, log),
		Showtime: NewShowtimeRepository(db, log),
		Ticket:   NewTicketRepository(db, log),
	}
}
