package wire

import (
	"box-office/internal/adaptor"
	"box-office/internal/data/repository"
	"box-office/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTicket(
	r chi.Router,
	ticketHandler *adaptor.TicketHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/api/tickets", ticketHandler.PurchaseTicket)
		r.Get("/api/user/tickets", ticketHandler.GetUserTickets)
	})
}
