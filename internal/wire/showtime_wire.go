package wire

import (
	"box-office/internal/adaptor"
	"box-office/internal/data/repository"
	"box-office/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireShowtime(
	r chi.Router,
	showtimeHandler *adaptor.ShowtimeHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public browsing. The active route is registered before {id} so chi
	// does not treat "active" as a showtime ID.
	r.Get("/api/showtimes", showtimeHandler.GetShowtimes)
	r.Get("/api/showtimes/active", showtimeHandler.GetActiveShowtimes)
	r.Get("/api/showtimes/{id}", showtimeHandler.GetShowtimeByID)
	r.Get("/api/showtimes/{id}/seats", showtimeHandler.GetRemainingSeats)

	// Admin scheduling
	r.Route("/api/admin/showtimes", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/", showtimeHandler.CreateShowtime)
		r.Put("/{id}", showtimeHandler.UpdateShowtime)
	})
}
