package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"box-office/internal/data/entity"
	"box-office/internal/data/repository"

	"github.com/google/uuid"
)

// memStore backs the in-memory repository fakes. One mutex guards all maps
// so the purchase fake can mirror the transactional behavior of the real
// repository, including under concurrent callers.
type memStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*entity.User
	sessions  map[string]*entity.Session
	halls     map[uuid.UUID]*entity.Hall
	showtimes map[uuid.UUID]*entity.Showtime
	tickets   []*entity.Ticket
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[uuid.UUID]*entity.User),
		sessions:  make(map[string]*entity.Session),
		halls:     make(map[uuid.UUID]*entity.Hall),
		showtimes: make(map[uuid.UUID]*entity.Showtime),
	}
}

func newTestRepo() (*repository.Repository, *memStore) {
	store := newMemStore()
	return &repository.Repository{
		User:     &fakeUserRepo{store},
		Session:  &fakeSessionRepo{store},
		Hall:     &fakeHallRepo{store},
		Showtime: &fakeShowtimeRepo{store},
		Ticket:   &fakeTicketRepo{store},
	}, store
}

func (s *memStore) soldFor(showtimeID uuid.UUID, date time.Time) int {
	sold := 0
	for _, t := range s.tickets {
		if t.ShowtimeID == showtimeID && t.ShowDate.Equal(date) {
			sold += t.Quantity
		}
	}
	return sold
}

func (s *memStore) hallShowtimes(hallID uuid.UUID) []*entity.Showtime {
	var out []*entity.Showtime
	for _, st := range s.showtimes {
		if st.HallID == hallID {
			out = append(out, st)
		}
	}
	return out
}

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.users[id], nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct{ s *memStore }

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sessions[session.Token.String()] = session
	return nil
}

func (r *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session, ok := r.s.sessions[token]
	if !ok || session.RevokedAt != nil || !session.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (r *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session, ok := r.s.sessions[token]
	if !ok || session.RevokedAt != nil {
		return fmt.Errorf("session not found or already revoked")
	}
	now := time.Now()
	session.RevokedAt = &now
	return nil
}

type fakeHallRepo struct{ s *memStore }

func (r *fakeHallRepo) Create(ctx context.Context, hall *entity.Hall) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, h := range r.s.halls {
		if h.Name == hall.Name {
			return entity.ErrHallNameTaken
		}
	}
	r.s.halls[hall.ID] = hall
	return nil
}

func (r *fakeHallRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.halls[id], nil
}

func (r *fakeHallRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Hall, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var halls []*entity.Hall
	for _, h := range r.s.halls {
		halls = append(halls, h)
	}
	sort.Slice(halls, func(i, j int) bool { return halls[i].Name < halls[j].Name })
	return paginate(halls, limit, offset), nil
}

func (r *fakeHallRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.halls)), nil
}

func (r *fakeHallRepo) Update(ctx context.Context, hall *entity.Hall) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.halls[hall.ID]; !ok {
		return entity.ErrHallNotFound
	}
	for _, t := range r.s.tickets {
		if st, ok := r.s.showtimes[t.ShowtimeID]; ok && st.HallID == hall.ID {
			return entity.ErrHallLocked
		}
	}
	for _, h := range r.s.halls {
		if h.ID != hall.ID && h.Name == hall.Name {
			return entity.ErrHallNameTaken
		}
	}
	r.s.halls[hall.ID] = hall
	return nil
}

type fakeShowtimeRepo struct{ s *memStore }

func (r *fakeShowtimeRepo) Create(ctx context.Context, showtime *entity.Showtime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.halls[showtime.HallID]; !ok {
		return entity.ErrHallNotFound
	}
	if conflict := entity.FindConflict(r.s.hallShowtimes(showtime.HallID), showtime, uuid.Nil); conflict != nil {
		return entity.ErrShowtimeOverlap
	}
	r.s.showtimes[showtime.ID] = showtime
	return nil
}

func (r *fakeShowtimeRepo) Update(ctx context.Context, showtime *entity.Showtime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.showtimes[showtime.ID]; !ok {
		return entity.ErrShowtimeNotFound
	}
	for _, t := range r.s.tickets {
		if t.ShowtimeID == showtime.ID {
			return entity.ErrShowtimeLocked
		}
	}
	if _, ok := r.s.halls[showtime.HallID]; !ok {
		return entity.ErrHallNotFound
	}
	if conflict := entity.FindConflict(r.s.hallShowtimes(showtime.HallID), showtime, showtime.ID); conflict != nil {
		return entity.ErrShowtimeOverlap
	}
	r.s.showtimes[showtime.ID] = showtime
	return nil
}

func (r *fakeShowtimeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.showtimes[id], nil
}

func (r *fakeShowtimeRepo) FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.hallShowtimes(hallID), nil
}

func (r *fakeShowtimeRepo) FindPlayingOn(ctx context.Context, day time.Time, sortBy string, limit, offset int) ([]*entity.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Showtime
	for _, st := range r.s.showtimes {
		if !st.StartDate.After(day) && st.FinishDate.After(day) {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		switch sortBy {
		case "price_min":
			return out[i].TicketPrice < out[j].TicketPrice
		case "price_max":
			return out[i].TicketPrice > out[j].TicketPrice
		default:
			return out[i].StartTime < out[j].StartTime
		}
	})
	return paginate(out, limit, offset), nil
}

func (r *fakeShowtimeRepo) CountPlayingOn(ctx context.Context, day time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, st := range r.s.showtimes {
		if !st.StartDate.After(day) && st.FinishDate.After(day) {
			count++
		}
	}
	return count, nil
}

func (r *fakeShowtimeRepo) CountRunningAt(ctx context.Context, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	day := entity.DateOnly(at)
	clock := entity.ClockOf(at)
	var count int64
	for _, st := range r.s.showtimes {
		if st.StartDate.After(day) || st.FinishDate.Before(day) {
			continue
		}
		if st.StartTime <= st.FinishTime {
			if st.StartTime <= clock && clock <= st.FinishTime {
				count++
			}
		} else if st.StartTime <= clock || clock <= st.FinishTime {
			count++
		}
	}
	return count, nil
}

type fakeTicketRepo struct{ s *memStore }

func (r *fakeTicketRepo) Purchase(ctx context.Context, ticket *entity.Ticket, showtime *entity.Showtime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.showtimes[showtime.ID]; !ok {
		return entity.ErrShowtimeNotFound
	}
	// Capacity is read at purchase time, like the real transaction re-reads
	// the hall row under lock.
	hall, ok := r.s.halls[showtime.HallID]
	if !ok {
		return entity.ErrHallNotFound
	}
	sold := r.s.soldFor(showtime.ID, ticket.ShowDate)
	if err := entity.ValidatePurchase(showtime, hall.Capacity, sold, ticket.Quantity, ticket.ShowDate, time.Now()); err != nil {
		return err
	}
	user, ok := r.s.users[ticket.UserID]
	if !ok {
		return entity.ErrUserNotFound
	}
	r.s.tickets = append(r.s.tickets, ticket)
	user.MoneySpent += ticket.Amount(showtime.TicketPrice)
	return nil
}

func (r *fakeTicketRepo) SumQuantityForDate(ctx context.Context, showtimeID uuid.UUID, date time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.soldFor(showtimeID, date), nil
}

func (r *fakeTicketRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Ticket
	for _, t := range r.s.tickets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *fakeTicketRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, t := range r.s.tickets {
		if t.UserID == userID {
			count++
		}
	}
	return count, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}
