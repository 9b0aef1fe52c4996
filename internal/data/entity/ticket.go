package entity

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is one purchase of seats for a showtime on a specific attendance
// date. Tickets are immutable once written and never deleted.
type Ticket struct {
	BaseSimple
	ShowDate   time.Time `db:"show_date"`
	Quantity   int       `db:"quantity"`
	ShowtimeID uuid.UUID `db:"showtime_id"`
	UserID     uuid.UUID `db:"user_id"`
}

// Amount is the total cost of the purchase at the given ticket price.
func (t *Ticket) Amount(price int) int {
	return t.Quantity * price
}

// ValidatePurchase applies the sale gates in order; the first failing check
// decides the error. sold is the quantity already sold for (showtime, date),
// recomputed by the caller inside the purchase transaction.
func ValidatePurchase(st *Showtime, capacity, sold, quantity int, date, now time.Time) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if capacity-sold-quantity < 0 {
		return ErrCapacityExceeded
	}

	today := DateOnly(now)
	if date.Equal(today) && st.StartTime < ClockOf(now) {
		return ErrSalesClosed
	}
	if date.Before(today) {
		return ErrPastDate
	}
	return nil
}
