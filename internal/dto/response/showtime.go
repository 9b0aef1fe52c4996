package response

import (
	"time"

	"box-office/internal/data/entity"
)

type ShowtimeResponse struct {
	ID          string    `json:"id"`
	MovieTitle  string    `json:"movie_title"`
	TicketPrice int       `json:"ticket_price"`
	StartDate   string    `json:"start_date"`
	FinishDate  string    `json:"finish_date"`
	StartTime   string    `json:"start_time"`
	FinishTime  string    `json:"finish_time"`
	HallID      string    `json:"hall_id"`
	HallName    string    `json:"hall_name,omitempty"`
	SeatsLeft   *int      `json:"seats_left,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type SeatAvailabilityResponse struct {
	ShowtimeID string `json:"showtime_id"`
	Date       string `json:"date"`
	SeatsLeft  int    `json:"seats_left"`
}

type RunningShowtimesResponse struct {
	Running int64 `json:"running"`
}

func ShowtimeToResponse(st *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:          st.ID.String(),
		MovieTitle:  st.MovieTitle,
		TicketPrice: st.TicketPrice,
		StartDate:   st.StartDate.Format("2006-01-02"),
		FinishDate:  st.FinishDate.Format("2006-01-02"),
		StartTime:   st.StartTime.String(),
		FinishTime:  st.FinishTime.String(),
		HallID:      st.HallID.String(),
		CreatedAt:   st.CreatedAt,
	}
}
