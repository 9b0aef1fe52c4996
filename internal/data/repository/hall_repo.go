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

type HallRepository interface {
	Create(ctx context.Context, hall *entity.Hall) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Hall, error)
	Count(ctx context.Context) (int64, error)

	// Update rejects the change with entity.ErrHallLocked when any ticket
	// has been sold for any showtime in the hall. The lock state is derived
	// from the tickets table inside the same transaction, never cached.
	Update(ctx context.Context, hall *entity.Hall) error
}

type hallRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHallRepository(db database.PgxIface, log *zap.Logger) HallRepository {
	return &hallRepository{
		db:  db,
		log: log.With(zap.String("repository", "hall")),
	}
}

func (r *hallRepository) Create(ctx context.Context, hall *entity.Hall) error {
	query := `
		INSERT INTO halls (id, name, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		hall.ID,
		hall.Name,
		hall.Capacity,
		hall.CreatedAt,
		hall.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrHallNameTaken
		}
		r.log.Error("Failed to create hall",
			zap.Error(err),
			zap.String("name", hall.Name),
		)
		return fmt.Errorf("create hall %s: %w", hall.Name, err)
	}

	return nil
}

func (r *hallRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	query := `
		SELECT id, name, capacity, created_at, updated_at
		FROM halls
		WHERE id = $1
	`

	var hall entity.Hall
	err := r.db.QueryRow(ctx, query, id).Scan(
		&hall.ID,
		&hall.Name,
		&hall.Capacity,
		&hall.CreatedAt,
		&hall.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hall by ID",
			zap.Error(err),
			zap.String("hall_id", id.String()),
		)
		return nil, fmt.Errorf("find hall by ID %s: %w", id.String(), err)
	}

	return &hall, nil
}

func (r *hallRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Hall, error) {
	query := `
		SELECT id, name, capacity, created_at, updated_at
		FROM halls
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find halls",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find halls: %w", err)
	}
	defer rows.Close()

	var halls []*entity.Hall
	for rows.Next() {
		var hall entity.Hall
		err := rows.Scan(
			&hall.ID,
			&hall.Name,
			&hall.Capacity,
			&hall.CreatedAt,
			&hall.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan hall row", zap.Error(err))
			return nil, fmt.Errorf("scan hall row: %w", err)
		}
		halls = append(halls, &hall)
	}

	return halls, nil
}

func (r *hallRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM halls`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count halls", zap.Error(err))
		return 0, fmt.Errorf("count halls: %w", err)
	}

	return count, nil
}

func (r *hallRepository) Update(ctx context.Context, hall *entity.Hall) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin hall update: %w", err)
	}
	defer tx.Rollback(ctx)

	// Every purchase holds FOR SHARE on the hall row until it commits, so
	// this FOR UPDATE waits out in-flight sales and the lock-state check
	// below always sees their tickets.
	var lockedID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM halls WHERE id = $1 FOR UPDATE`, hall.ID).Scan(&lockedID)
	if err == pgx.ErrNoRows {
		return entity.ErrHallNotFound
	}
	if err != nil {
		r.log.Error("Failed to lock hall",
			zap.Error(err),
			zap.String("hall_id", hall.ID.String()),
		)
		return fmt.Errorf("lock hall %s: %w", hall.ID.String(), err)
	}

	sold, err := ticketsExistForHall(ctx, tx, hall.ID)
	if err != nil {
		r.log.Error("Failed to check hall lock state",
			zap.Error(err),
			zap.String("hall_id", hall.ID.String()),
		)
		return err
	}
	if sold {
		return entity.ErrHallLocked
	}

	_, err = tx.Exec(ctx, `
		UPDATE halls
		SET name = $2, capacity = $3, updated_at = $4
		WHERE id = $1
	`, hall.ID, hall.Name, hall.Capacity, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrHallNameTaken
		}
		r.log.Error("Failed to update hall",
			zap.Error(err),
			zap.String("hall_id", hall.ID.String()),
		)
		return fmt.Errorf("update hall %s: %w", hall.ID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit hall update: %w", err)
	}

	return nil
}
