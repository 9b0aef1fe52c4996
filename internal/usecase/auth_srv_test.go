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

func TestRegisterAndLogin(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewAuthService(repo, testConfig(), zap.NewNop())

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.User.Role != string(entity.RoleCustomer) {
		t.Errorf("role = %q, want customer", resp.User.Role)
	}
	if resp.Token == "" {
		t.Error("expected session token after register")
	}

	login, err := svc.Login(context.Background(), &request.LoginRequest{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.Token == "" {
		t.Error("expected session token after login")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewAuthService(repo, testConfig(), zap.NewNop())

	if _, err := svc.Register(context.Background(), &request.RegisterRequest{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(context.Background(), &request.RegisterRequest{Username: "alice", Password: "other22"})
	if !errors.Is(err, entity.ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewAuthService(repo, testConfig(), zap.NewNop())

	if _, err := svc.Register(context.Background(), &request.RegisterRequest{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Login(context.Background(), &request.LoginRequest{Username: "alice", Password: "wrongpw"})
	if !errors.Is(err, entity.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	// An unknown username reports the same error as a bad password.
	_, err = svc.Login(context.Background(), &request.LoginRequest{Username: "nobody", Password: "secret1"})
	if !errors.Is(err, entity.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestSessionTTLPerRole(t *testing.T) {
	repo, store := newTestRepo()
	svc := NewAuthService(repo, testConfig(), zap.NewNop())

	hash, err := utils.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	admin := seedUser(store, "boss", entity.RoleAdmin)
	admin.PasswordHash = hash

	adminResp, err := svc.Login(context.Background(), &request.LoginRequest{Username: "boss", Password: "secret1"})
	if err != nil {
		t.Fatalf("admin Login: %v", err)
	}

	customerResp, err := svc.Register(context.Background(), &request.RegisterRequest{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if adminResp.ExpiresAt == nil || customerResp.ExpiresAt == nil {
		t.Fatal("expected expiry on both sessions")
	}
	if !adminResp.ExpiresAt.Before(*customerResp.ExpiresAt) {
		t.Errorf("admin session (%v) should expire before customer session (%v)",
			adminResp.ExpiresAt, customerResp.ExpiresAt)
	}
	if adminResp.ExpiresAt.After(time.Now().Add(61 * time.Minute)) {
		t.Errorf("admin session expiry %v exceeds the one hour lifetime", adminResp.ExpiresAt)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewAuthService(repo, testConfig(), zap.NewNop())

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	session, err := repo.Session.FindValidSession(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("FindValidSession: %v", err)
	}
	if session != nil {
		t.Error("session still valid after logout")
	}

	if err := svc.Logout(context.Background(), resp.Token); err == nil {
		t.Error("expected error for double logout")
	}
}
