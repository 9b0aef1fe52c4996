package response

import (
	"time"

	"box-office/internal/data/entity"
)

type TicketResponse struct {
	ID         string    `json:"id"`
	ShowtimeID string    `json:"showtime_id"`
	MovieTitle string    `json:"movie_title,omitempty"`
	ShowDate   string    `json:"show_date"`
	Quantity   int       `json:"quantity"`
	Amount     int       `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserTicketsResponse is the purchase history of one user together with
// the cumulative spend counter.
type UserTicketsResponse struct {
	Tickets    *PaginatedResponse[TicketResponse] `json:"tickets"`
	MoneySpent int                                `json:"money_spent"`
}

func TicketToResponse(ticket *entity.Ticket, showtime *entity.Showtime) TicketResponse {
	resp := TicketResponse{
		ID:         ticket.ID.String(),
		ShowtimeID: ticket.ShowtimeID.String(),
		ShowDate:   ticket.ShowDate.Format("2006-01-02"),
		Quantity:   ticket.Quantity,
		CreatedAt:  ticket.CreatedAt,
	}
	if showtime != nil {
		resp.MovieTitle = showtime.MovieTitle
		resp.Amount = ticket.Amount(showtime.TicketPrice)
	}
	return resp
}
