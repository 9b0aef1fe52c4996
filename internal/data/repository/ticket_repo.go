package repository

import (
	"context"
	"fmt"
	"time"

	"box-office/internal/data/entity"
	"box-office/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// purchaseAttempts bounds the retries of a purchase transaction that failed
// with a serialization error.
const purchaseAttempts = 3

type TicketRepository interface {
	// Purchase runs the whole booking as one serializable transaction:
	// locks the showtime and hall rows, re-reads the hall capacity and the
	// sold quantity for (showtime, date), applies the sale gates, inserts
	// the ticket and increments the buyer's cumulative spend. Both writes
	// commit together or neither does.
	Purchase(ctx context.Context, ticket *entity.Ticket, showtime *entity.Showtime) error

	// SumQuantityForDate returns the tickets already sold for the showtime
	// on the exact date. Recomputed on every call, never cached.
	SumQuantityForDate(ctx context.Context, showtimeID uuid.UUID, date time.Time) (int, error)

	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Ticket, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

// rowQuerier is satisfied by the pool and by a transaction, so the lock-state
// predicates below can run inside the guarded update transactions.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ticketsExistForShowtime is the locked-state predicate for a showtime: one
// sold ticket freezes its schedule. Always derived from the tickets table,
// never persisted.
func ticketsExistForShowtime(ctx context.Context, q rowQuerier, showtimeID uuid.UUID) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets WHERE showtime_id = $1)`, showtimeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check tickets for showtime %s: %w", showtimeID.String(), err)
	}
	return exists, nil
}

// ticketsExistForHall is the locked-state predicate for a hall: one sold
// ticket for any of its showtimes freezes the hall.
func ticketsExistForHall(ctx context.Context, q rowQuerier, hallID uuid.UUID) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tickets t
			JOIN showtimes s ON t.showtime_id = s.id
			WHERE s.hall_id = $1
		)
	`, hallID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check tickets for hall %s: %w", hallID.String(), err)
	}
	return exists, nil
}

func (r *ticketRepository) Purchase(ctx context.Context, ticket *entity.Ticket, showtime *entity.Showtime) error {
	var err error
	for attempt := 1; attempt <= purchaseAttempts; attempt++ {
		err = r.purchaseOnce(ctx, ticket, showtime)
		if !isSerializationFailure(err) {
			return err
		}
		r.log.Warn("Purchase transaction serialization failure, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.String("showtime_id", showtime.ID.String()),
		)
	}
	return fmt.Errorf("purchase for showtime %s: %w", showtime.ID.String(), err)
}

func (r *ticketRepository) purchaseOnce(ctx context.Context, ticket *entity.Ticket, showtime *entity.Showtime) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin purchase: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize purchases per showtime so two buyers cannot both pass the
	// capacity check for the same seats. Lock order is showtime first,
	// hall second, the same order the showtime update takes them in.
	var lockedID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM showtimes WHERE id = $1 FOR UPDATE`, showtime.ID).Scan(&lockedID)
	if err == pgx.ErrNoRows {
		return entity.ErrShowtimeNotFound
	}
	if err != nil {
		return fmt.Errorf("lock showtime %s: %w", showtime.ID.String(), err)
	}

	// Share-lock the hall and re-read its capacity inside the transaction.
	// The shared lock lets purchases of the same hall proceed in parallel
	// while blocking hall mutations, whose FOR UPDATE must wait for every
	// in-flight sale to commit before re-checking the lock state.
	var capacity int
	err = tx.QueryRow(ctx, `SELECT capacity FROM halls WHERE id = $1 FOR SHARE`, showtime.HallID).Scan(&capacity)
	if err == pgx.ErrNoRows {
		return entity.ErrHallNotFound
	}
	if err != nil {
		return fmt.Errorf("lock hall %s: %w", showtime.HallID.String(), err)
	}

	var sold int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0)
		FROM tickets
		WHERE showtime_id = $1 AND show_date = $2
	`, showtime.ID, ticket.ShowDate).Scan(&sold)
	if err != nil {
		return fmt.Errorf("sum sold tickets for showtime %s: %w", showtime.ID.String(), err)
	}

	if err := entity.ValidatePurchase(showtime, capacity, sold, ticket.Quantity, ticket.ShowDate, time.Now()); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO tickets (id, show_date, quantity, showtime_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		ticket.ID,
		ticket.ShowDate,
		ticket.Quantity,
		ticket.ShowtimeID,
		ticket.UserID,
		ticket.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}

	result, err := tx.Exec(ctx, `
		UPDATE users
		SET money_spent = money_spent + $2, updated_at = NOW()
		WHERE id = $1
	`, ticket.UserID, ticket.Amount(showtime.TicketPrice))
	if err != nil {
		return fmt.Errorf("update user spend: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrUserNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit purchase: %w", err)
	}

	r.log.Info("Ticket purchased",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("user_id", ticket.UserID.String()),
		zap.Int("quantity", ticket.Quantity),
		zap.Int("amount", ticket.Amount(showtime.TicketPrice)),
	)

	return nil
}

func (r *ticketRepository) SumQuantityForDate(ctx context.Context, showtimeID uuid.UUID, date time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM tickets
		WHERE showtime_id = $1 AND show_date = $2
	`

	var sum int
	err := r.db.QueryRow(ctx, query, showtimeID, date).Scan(&sum)
	if err != nil {
		r.log.Error("Failed to sum tickets for date",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
			zap.Time("date", date),
		)
		return 0, fmt.Errorf("sum tickets for showtime %s: %w", showtimeID.String(), err)
	}

	return sum, nil
}

func (r *ticketRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Ticket, error) {
	query := `
		SELECT id, show_date, quantity, showtime_id, user_id, created_at
		FROM tickets
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find tickets by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find tickets by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var tickets []*entity.Ticket
	for rows.Next() {
		var ticket entity.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.ShowDate,
			&ticket.Quantity,
			&ticket.ShowtimeID,
			&ticket.UserID,
			&ticket.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, &ticket)
	}

	return tickets, nil
}

func (r *ticketRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count tickets by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count tickets by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}
