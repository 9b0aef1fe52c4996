package request

// Quantity deliberately carries no validator tag: a non-positive quantity is
// rejected by the purchase gates with its own distinguishable error.
type PurchaseTicketRequest struct {
	ShowtimeID string `json:"showtime_id" validate:"required,uuid4"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Quantity   int    `json:"quantity"`
}
