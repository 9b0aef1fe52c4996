package entity

import "errors"

// Domain errors. Handlers map these onto HTTP statuses, so every rejected
// precondition keeps a distinguishable reason.
var (
	ErrHallNotFound     = errors.New("hall not found")
	ErrShowtimeNotFound = errors.New("showtime not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrHallNameTaken   = errors.New("hall name already in use")
	ErrHallLocked      = errors.New("hall has sold tickets and cannot be changed")
	ErrShowtimeLocked  = errors.New("showtime has sold tickets and cannot be changed")
	ErrShowtimeOverlap = errors.New("showtimes in the same hall cannot overlap")

	ErrInvalidQuantity  = errors.New("number of tickets must be at least one")
	ErrCapacityExceeded = errors.New("not enough free seats for this date")
	ErrSalesClosed      = errors.New("online sales for this showtime are closed")
	ErrPastDate         = errors.New("attendance date cannot be in the past")

	ErrUsernameTaken      = errors.New("username already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidInput marks malformed request input such as unparseable IDs,
	// dates or filter values. Services wrap it with the offending field.
	ErrInvalidInput = errors.New("invalid input")
)
