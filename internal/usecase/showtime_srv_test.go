package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"box-office/internal/data/entity"
	"box-office/internal/dto/request"
	"box-office/pkg/utils"

	"go.uber.org/zap"
)

func showtimeRequest(hallID string, mutate func(*request.CreateShowtimeRequest)) *request.CreateShowtimeRequest {
	req := &request.CreateShowtimeRequest{
		MovieTitle:  "The Long Night",
		TicketPrice: 250,
		StartDate:   futureDate(1).Format("2006-01-02"),
		FinishDate:  futureDate(10).Format("2006-01-02"),
		StartTime:   "18:00",
		FinishTime:  "20:00",
		HallID:      hallID,
	}
	if mutate != nil {
		mutate(req)
	}
	return req
}

func TestCreateShowtime(t *testing.T) {
	repo, store := newTestRepo()
	svc := NewShowtimeService(repo, zap.NewNop())

	hall := seedHall(store, "Hall A", 100)

	resp, err := svc.CreateShowtime(context.Background(), showtimeRequest(hall.ID.String(), nil))
	if err != nil {
		t.Fatalf("CreateShowtime: %v", err)
	}
	if resp.StartTime != "18:00:00" || resp.FinishTime != "20:00:00" {
		t.Errorf("times = %s-%s, want 18:00:00-20:00:00", resp.StartTime, resp.FinishTime)
	}
	if resp.HallName != "Hall A" {
		t.Errorf("hall name = %q, want Hall A", resp.HallName)
	}
}

func TestCreateShowtimeRejectsOverlap(t *testing.T) {
	repo, store := newTestRepo()
	svc := NewShowtimeService(repo, zap.NewNop())

	hall := seedHall(store, "Hall A", 100)
	if _, err := svc.CreateShowtime(context.Background(), showtimeRequest(hall.ID.String(), nil)); err != nil {
		t.Fatalf("CreateShowtime: %v", err)
	}

	_, err := svc.CreateShowtime(context.Background(), showtimeRequest(hall.ID.String(), func(r *request.CreateShowtimeRequest) {
		r.MovieTitle = "Another Feature"
		r.StartTime = "19:00"
		r.FinishTime = "21:00"
	}))
	if !errors.Is(err, entity.ErrShowtimeOverlap) {
		t.Fatalf("err = %v, want ErrShowtimeOverlap", err)
	}

	// Same hours in another hall are fine.
	other := seedHall(store, "Hall B", 50)
	_, err = svc.CreateShowtime(context.Background(), showtimeRequest(other.ID.String(), func(r *request.CreateShowtimeRequest) {
		r.StartTime = "19:00"
		r.FinishTime = "21:00"
	}))
	if err != nil {
		t.Fatalf("CreateShowtime in other hall: %v", err)
	}
}

func TestCreateShowtimeMidnightOverlap(t *testing.T) {
	repo, store := newTestRepo()
	svc := NewShowtimeService(repo, zap.NewNop())

	hall := seedHall(store, "Hall A", 100)
	if _, err := svc.CreateShowtime(context.Background(), showtimeRequest(hall.ID.String(), func(r *request.CreateShowtimeRequest) {
		r.StartTime = "23:00"
		r.FinishTime = "01:00"
	})); err != nil {
		t.Fatalf("CreateShowtime crossing midnight: %v", err)
	}

	// Wraps past midnight, so an early-morning slot collides too.
	_, err := svc.CreateShowtime(context.Background(), showtimeRequest(hall.ID.String(), func(r *request.CreateShowtimeRequest) {
		r.StartTime = "00:30"
		r.FinishTime = "02:00"
	}))
	if !errors.Is(err, entity.ErrShowtimeOverlap) {
		t.Fatalf("err = %v, want ErrShowtimeOverlap", err)
	}
}

func TestCreateShowtimeUnknownHall(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewShowtimeService(repo, zap.NewNop())

	_, err := svc.CreateShowtime(context.Background(), showtimeRequest("0b6b2f5c-86a2-4b91-9c2b-0f1f62f3f001", nil))
	if !errors.Is(err, entity.ErrHallNotFound) {
		t.Fatalf("err = %v, want ErrHallNotFound", err)
	}
}

func TestCreateShowtimeRejectsBadSchedule(t *testing.T) {
	repo, store := newTestRepo()
	svc := NewShowtimeService(repo, zap.NewNop())

	hall := seedHall(store, "Hall A", 100)

	var validationErr *utils.ValidationError

	_, err := svc.CreateShowtime(context.Background(), showtimeRequest(hall.ID.String(), func(r *request.CreateShowtimeRequest) {
		r.StartDate = futureDate(10).Format("2006-01-02")
		r.FinishDate = futureDate(1).Format("2006-01-02")
	}))
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want a validation error", err)
	}
	if _, ok := validationErr.Fields["finish_date"]; !ok {
		t.Errorf("fields = %v, want finish_date", validationErr.Fields)
	}

	_, err = svc.CreateShowtime(context.Background(), showtimeRequest(hall.ID.String(), func(r *request.CreateShowtimeRequest) {
		r.StartDate = "2020-01-01"
		r.FinishDate = "2020-01-05"
	}))
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want a validation error", err)
	}
	if _, ok := validationErr.Fields["start_date"]; !ok {
		t.Errorf("fields = %v, want start_date", validationErr.Fields)
	}
}

func TestUpdateShowtimeLockedAfterSale(t *testing.T) {
	repo, store := newTestRepo()
	svc := NewShowtimeService(repo, zap.NewNop())

	user := seedUser(store, "alice", entity.RoleCustomer)
	hall := seedHall(store, "Hall A", 100)
	st := seedShowtime(store, hall.ID, 250, futureDate(1), futureDate(10), 18*3600, 20*3600)
	seedTicket(store, st.ID, user.ID, futureDate(2), 1)

	update := &request.UpdateShowtimeRequest{
		MovieTitle:  st.MovieTitle,
		TicketPrice: 300,
		StartDate:   futureDate(1).Format("2006-01-02"),
		FinishDate:  futureDate(10).Format("2006-01-02"),
		StartTime:   "18:00",
		FinishTime:  "20:00",
		HallID:      hall.ID.String(),
	}
	_, err := svc.UpdateShowtime(context.Background(), st.ID.String(), update)
	if !errors.Is(err, entity.ErrShowtimeLocked) {
		t.Fatalf("err = %v, want ErrShowtimeLocked", err)
	}
}

func TestGetShowtimesSeatsLeft(t *testing.T) {
	repo, store := newTestRepo()
	svc := NewShowtimeService(repo, zap.NewNop())

	user := seedUser(store, "alice", entity.RoleCustomer)
	hall := seedHall(store, "Hall A", 100)
	today := entity.DateOnly(time.Now())
	st := seedShowtime(store, hall.ID, 250, today, today.AddDate(0, 0, 5), 18*3600, 20*3600)
	seedTicket(store, st.ID, user.ID, today, 30)

	resp, err := svc.GetShowtimes(context.Background(), "today", "", &request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("GetShowtimes: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("showtimes = %d, want 1", len(resp.Data))
	}
	if resp.Data[0].SeatsLeft == nil || *resp.Data[0].SeatsLeft != 70 {
		t.Errorf("seats left = %v, want 70", resp.Data[0].SeatsLeft)
	}

	// Tickets for today do not reduce tomorrow's availability.
	resp, err = svc.GetShowtimes(context.Background(), "tomorrow", "", &request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("GetShowtimes tomorrow: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("showtimes tomorrow = %d, want 1", len(resp.Data))
	}
	if resp.Data[0].SeatsLeft == nil || *resp.Data[0].SeatsLeft != 100 {
		t.Errorf("seats left tomorrow = %v, want 100", resp.Data[0].SeatsLeft)
	}
}

func TestGetShowtimesSortByPrice(t *testing.T) {
	repo, store := newTestRepo()
	svc := NewShowtimeService(repo, zap.NewNop())

	hall := seedHall(store, "Hall A", 100)
	other := seedHall(store, "Hall B", 100)
	today := entity.DateOnly(time.Now())
	seedShowtime(store, hall.ID, 400, today, today.AddDate(0, 0, 5), 18*3600, 20*3600)
	seedShowtime(store, other.ID, 200, today, today.AddDate(0, 0, 5), 18*3600, 20*3600)

	resp, err := svc.GetShowtimes(context.Background(), "today", "price_min", &request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("GetShowtimes: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("showtimes = %d, want 2", len(resp.Data))
	}
	if resp.Data[0].TicketPrice != 200 || resp.Data[1].TicketPrice != 400 {
		t.Errorf("price order = %d, %d, want 200, 400", resp.Data[0].TicketPrice, resp.Data[1].TicketPrice)
	}

	resp, err = svc.GetShowtimes(context.Background(), "today", "price_max", &request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("GetShowtimes: %v", err)
	}
	if resp.Data[0].TicketPrice != 400 {
		t.Errorf("price_max first = %d, want 400", resp.Data[0].TicketPrice)
	}
}

func TestGetShowtimesRejectsBadParams(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewShowtimeService(repo, zap.NewNop())

	if _, err := svc.GetShowtimes(context.Background(), "yesterday", "", &request.PaginatedRequest{Page: 1, PerPage: 10}); !errors.Is(err, entity.ErrInvalidInput) {
		t.Errorf("day filter yesterday: err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.GetShowtimes(context.Background(), "today", "alphabetical", &request.PaginatedRequest{Page: 1, PerPage: 10}); !errors.Is(err, entity.ErrInvalidInput) {
		t.Errorf("unknown sort: err = %v, want ErrInvalidInput", err)
	}
}

func TestRemainingSeats(t *testing.T) {
	repo, store := newTestRepo()
	svc := NewShowtimeService(repo, zap.NewNop())

	user := seedUser(store, "alice", entity.RoleCustomer)
	hall := seedHall(store, "Hall A", 60)
	st := seedShowtime(store, hall.ID, 250, futureDate(1), futureDate(10), 18*3600, 20*3600)
	date := futureDate(2)
	seedTicket(store, st.ID, user.ID, date, 15)

	resp, err := svc.RemainingSeats(context.Background(), st.ID.String(), date.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("RemainingSeats: %v", err)
	}
	if resp.SeatsLeft != 45 {
		t.Errorf("seats left = %d, want 45", resp.SeatsLeft)
	}
}

func TestCountRunning(t *testing.T) {
	repo, store := newTestRepo()
	svc := NewShowtimeService(repo, zap.NewNop())

	hall := seedHall(store, "Hall A", 100)
	today := entity.DateOnly(time.Now())
	// Runs all day every day, so it is always in progress.
	seedShowtime(store, hall.ID, 250, today.AddDate(0, 0, -1), today.AddDate(0, 0, 5), 0, entity.EndOfDay)

	resp, err := svc.CountRunning(context.Background())
	if err != nil {
		t.Fatalf("CountRunning: %v", err)
	}
	if resp.Running != 1 {
		t.Errorf("running = %d, want 1", resp.Running)
	}
}
