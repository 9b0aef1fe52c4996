package request

// Dates use "2006-01-02", times of day "15:04" or "15:04:05". A start time
// after the finish time means the screening crosses midnight.
type CreateShowtimeRequest struct {
	MovieTitle  string `json:"movie_title" validate:"required,min=1,max=120"`
	TicketPrice int    `json:"ticket_price" validate:"gte=0"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	FinishDate  string `json:"finish_date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required"`
	FinishTime  string `json:"finish_time" validate:"required"`
	HallID      string `json:"hall_id" validate:"required,uuid4"`
}

type UpdateShowtimeRequest struct {
	MovieTitle  string `json:"movie_title" validate:"required,min=1,max=120"`
	TicketPrice int    `json:"ticket_price" validate:"gte=0"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	FinishDate  string `json:"finish_date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required"`
	FinishTime  string `json:"finish_time" validate:"required"`
	HallID      string `json:"hall_id" validate:"required,uuid4"`
}
