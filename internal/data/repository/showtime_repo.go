package repository

import (
	"context"
	"fmt"
	"time"

	"box-office/internal/data/entity"
	"box-office/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

const showtimeColumns = `id, movie_title, ticket_price, start_date, finish_date, start_time, finish_time, hall_id, created_at, updated_at`

type ShowtimeRepository interface {
	// Create inserts the showtime only when its span conflicts with no
	// existing showtime of the hall. The hall row is locked for the
	// duration of the check so two concurrent creations for one hall
	// cannot both pass.
	Create(ctx context.Context, showtime *entity.Showtime) error

	// Update behaves like Create with the showtime itself excluded from
	// the conflict check, and additionally rejects showtimes that already
	// have sold tickets with entity.ErrShowtimeLocked. The showtime row is
	// locked before the lock-state check so an in-flight first purchase,
	// which holds the same row lock, commits or aborts first.
	Update(ctx context.Context, showtime *entity.Showtime) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error)
	FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Showtime, error)

	// FindPlayingOn lists showtimes whose date range covers the given day,
	// sorted by "start_time", "price_min" or "price_max".
	FindPlayingOn(ctx context.Context, day time.Time, sort string, limit, offset int) ([]*entity.Showtime, error)
	CountPlayingOn(ctx context.Context, day time.Time) (int64, error)

	// CountRunningAt counts screenings in progress at the given instant,
	// midnight-crossing showtimes included.
	CountRunningAt(ctx context.Context, at time.Time) (int64, error)
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

func clockParam(c entity.ClockTime) pgtype.Time {
	return pgtype.Time{Microseconds: c.Microseconds(), Valid: true}
}

func scanShowtimeRows(rows pgx.Rows) ([]*entity.Showtime, error) {
	var showtimes []*entity.Showtime
	for rows.Next() {
		var st entity.Showtime
		var startTime, finishTime pgtype.Time
		err := rows.Scan(
			&st.ID,
			&st.MovieTitle,
			&st.TicketPrice,
			&st.StartDate,
			&st.FinishDate,
			&startTime,
			&finishTime,
			&st.HallID,
			&st.CreatedAt,
			&st.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		st.StartTime = entity.ClockFromMicroseconds(startTime.Microseconds)
		st.FinishTime = entity.ClockFromMicroseconds(finishTime.Microseconds)
		showtimes = append(showtimes, &st)
	}
	return showtimes, nil
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin showtime create: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.checkConflictLocked(ctx, tx, showtime, uuid.Nil); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO showtimes (`+showtimeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		showtime.ID,
		showtime.MovieTitle,
		showtime.TicketPrice,
		showtime.StartDate,
		showtime.FinishDate,
		clockParam(showtime.StartTime),
		clockParam(showtime.FinishTime),
		showtime.HallID,
		showtime.CreatedAt,
		showtime.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.String("movie_title", showtime.MovieTitle),
			zap.String("hall_id", showtime.HallID.String()),
		)
		return fmt.Errorf("create showtime %s: %w", showtime.MovieTitle, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit showtime create: %w", err)
	}

	return nil
}

func (r *showtimeRepository) Update(ctx context.Context, showtime *entity.Showtime) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin showtime update: %w", err)
	}
	defer tx.Rollback(ctx)

	// Take the showtime row lock before reading the lock state. A purchase
	// in flight holds this lock until it commits, so the EXISTS below always
	// sees its ticket. Lock order is showtime first, hall second, matching
	// the purchase transaction.
	var lockedID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM showtimes WHERE id = $1 FOR UPDATE`, showtime.ID).Scan(&lockedID)
	if err == pgx.ErrNoRows {
		return entity.ErrShowtimeNotFound
	}
	if err != nil {
		r.log.Error("Failed to lock showtime",
			zap.Error(err),
			zap.String("showtime_id", showtime.ID.String()),
		)
		return fmt.Errorf("lock showtime %s: %w", showtime.ID.String(), err)
	}

	sold, err := ticketsExistForShowtime(ctx, tx, showtime.ID)
	if err != nil {
		r.log.Error("Failed to check showtime lock state",
			zap.Error(err),
			zap.String("showtime_id", showtime.ID.String()),
		)
		return err
	}
	if sold {
		return entity.ErrShowtimeLocked
	}

	if err := r.checkConflictLocked(ctx, tx, showtime, showtime.ID); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE showtimes
		SET movie_title = $2, ticket_price = $3, start_date = $4, finish_date = $5,
		    start_time = $6, finish_time = $7, hall_id = $8, updated_at = $9
		WHERE id = $1
	`,
		showtime.ID,
		showtime.MovieTitle,
		showtime.TicketPrice,
		showtime.StartDate,
		showtime.FinishDate,
		clockParam(showtime.StartTime),
		clockParam(showtime.FinishTime),
		showtime.HallID,
		time.Now(),
	)
	if err != nil {
		r.log.Error("Failed to update showtime",
			zap.Error(err),
			zap.String("showtime_id", showtime.ID.String()),
		)
		return fmt.Errorf("update showtime %s: %w", showtime.ID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit showtime update: %w", err)
	}

	return nil
}

// checkConflictLocked locks the hall row, then evaluates the candidate span
// against every showtime of the hall. Called inside the create and update
// transactions only; the hall lock is what serializes concurrent schedule
// changes for one hall.
func (r *showtimeRepository) checkConflictLocked(ctx context.Context, tx pgx.Tx, candidate *entity.Showtime, exclude uuid.UUID) error {
	var hallID uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM halls WHERE id = $1 FOR UPDATE`, candidate.HallID).Scan(&hallID)
	if err == pgx.ErrNoRows {
		return entity.ErrHallNotFound
	}
	if err != nil {
		r.log.Error("Failed to lock hall",
			zap.Error(err),
			zap.String("hall_id", candidate.HallID.String()),
		)
		return fmt.Errorf("lock hall %s: %w", candidate.HallID.String(), err)
	}

	rows, err := tx.Query(ctx, `
		SELECT `+showtimeColumns+`
		FROM showtimes
		WHERE hall_id = $1
	`, candidate.HallID)
	if err != nil {
		return fmt.Errorf("find showtimes in hall %s: %w", candidate.HallID.String(), err)
	}
	defer rows.Close()

	existing, err := scanShowtimeRows(rows)
	if err != nil {
		return err
	}

	if conflict := entity.FindConflict(existing, candidate, exclude); conflict != nil {
		r.log.Warn("Showtime overlap rejected",
			zap.String("hall_id", candidate.HallID.String()),
			zap.String("movie_title", candidate.MovieTitle),
			zap.String("conflicts_with", conflict.ID.String()),
		)
		return entity.ErrShowtimeOverlap
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE id = $1
	`

	var st entity.Showtime
	var startTime, finishTime pgtype.Time
	err := r.db.QueryRow(ctx, query, id).Scan(
		&st.ID,
		&st.MovieTitle,
		&st.TicketPrice,
		&st.StartDate,
		&st.FinishDate,
		&startTime,
		&finishTime,
		&st.HallID,
		&st.CreatedAt,
		&st.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("find showtime by ID %s: %w", id.String(), err)
	}

	st.StartTime = entity.ClockFromMicroseconds(startTime.Microseconds)
	st.FinishTime = entity.ClockFromMicroseconds(finishTime.Microseconds)
	return &st, nil
}

func (r *showtimeRepository) FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Showtime, error) {
	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE hall_id = $1
		ORDER BY start_date, start_time
	`

	rows, err := r.db.Query(ctx, query, hallID)
	if err != nil {
		r.log.Error("Failed to find showtimes by hall ID",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
		)
		return nil, fmt.Errorf("find showtimes by hall ID %s: %w", hallID.String(), err)
	}
	defer rows.Close()

	return scanShowtimeRows(rows)
}

func (r *showtimeRepository) FindPlayingOn(ctx context.Context, day time.Time, sort string, limit, offset int) ([]*entity.Showtime, error) {
	orderBy := "start_time"
	switch sort {
	case "price_min":
		orderBy = "ticket_price"
	case "price_max":
		orderBy = "ticket_price DESC"
	}

	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE start_date <= $1 AND finish_date > $1
		ORDER BY ` + orderBy + `
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, day, limit, offset)
	if err != nil {
		r.log.Error("Failed to find showtimes playing on day",
			zap.Error(err),
			zap.Time("day", day),
			zap.String("sort", sort),
		)
		return nil, fmt.Errorf("find showtimes playing on %s: %w", day.Format("2006-01-02"), err)
	}
	defer rows.Close()

	return scanShowtimeRows(rows)
}

func (r *showtimeRepository) CountPlayingOn(ctx context.Context, day time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM showtimes WHERE start_date <= $1 AND finish_date > $1`

	var count int64
	err := r.db.QueryRow(ctx, query, day).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count showtimes playing on day",
			zap.Error(err),
			zap.Time("day", day),
		)
		return 0, fmt.Errorf("count showtimes playing on %s: %w", day.Format("2006-01-02"), err)
	}

	return count, nil
}

func (r *showtimeRepository) CountRunningAt(ctx context.Context, at time.Time) (int64, error) {
	// Midnight-crossing screenings (start_time > finish_time) are running
	// both late in the evening and early in the morning.
	query := `
		SELECT COUNT(*)
		FROM showtimes
		WHERE start_date <= $1 AND finish_date >= $1
		  AND (
			(start_time <= finish_time AND start_time <= $2 AND finish_time >= $2)
			OR
			(start_time > finish_time AND (start_time <= $2 OR finish_time >= $2))
		  )
	`

	day := entity.DateOnly(at)
	clock := clockParam(entity.ClockOf(at))

	var count int64
	err := r.db.QueryRow(ctx, query, day, clock).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count running showtimes",
			zap.Error(err),
			zap.Time("at", at),
		)
		return 0, fmt.Errorf("count running showtimes: %w", err)
	}

	return count, nil
}
