package wire

import (
	"box-office/internal/adaptor"
	"box-office/internal/data/repository"
	"box-office/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireHall(
	r chi.Router,
	hallHandler *adaptor.HallHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Hall management is admin territory end to end.
	r.Route("/api/admin/halls", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/", hallHandler.CreateHall)
		r.Get("/", hallHandler.GetHalls)
		r.Get("/{id}", hallHandler.GetHallByID)
		r.Put("/{id}", hallHandler.UpdateHall)
	})
}
