package service

import (
	"errors"
	"testing"
	"time"

	"taskloop_backend/internal/config"
	"taskloop_backend/internal/repository"
	"taskloop_backend/internal/util"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret-key-for-auth-tests-only",
			ExpireTime: time.Hour,
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), testAuthConfig())

	user, err := svc.Register(RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Password == "secret123" {
		t.Fatal("password must be stored hashed")
	}

	result, err := svc.Login(LoginRequest{Email: "alice@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}

	claims, err := util.ParseJWT(result.Token, "test-secret-key-for-auth-tests-only")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token user mismatch: %d != %d", claims.UserID, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), testAuthConfig())

	req := RegisterRequest{Name: "A", Email: "dup@example.com", Password: "secret123"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(req)
	if !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), testAuthConfig())

	if _, err := svc.Register(RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// 密码错误和账号不存在返回同一个错误
	if _, err := svc.Login(LoginRequest{Email: "a@example.com", Password: "wrong"}); !errors.Is(err, util.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential for wrong password, got %v", err)
	}
	if _, err := svc.Login(LoginRequest{Email: "nobody@example.com", Password: "secret123"}); !errors.Is(err, util.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential for unknown email, got %v", err)
	}
}

func TestUpdateSettingsPasswordChange(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(repository.NewUserRepository(db), testAuthConfig())
	users := NewUserService(repository.NewUserRepository(db))

	registered, err := auth.Register(RegisterRequest{Name: "A", Email: "a@example.com", Password: "oldpass1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// 当前密码错误
	_, err = users.UpdateSettings(registered.ID, UpdateSettingsRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpass1",
	})
	if !errors.Is(err, util.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}

	// 正确流程
	if _, err := users.UpdateSettings(registered.ID, UpdateSettingsRequest{
		Name:            "Renamed",
		CurrentPassword: "oldpass1",
		NewPassword:     "newpass1",
	}); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	if _, err := auth.Login(LoginRequest{Email: "a@example.com", Password: "newpass1"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := auth.Login(LoginRequest{Email: "a@example.com", Password: "oldpass1"}); !errors.Is(err, util.ErrInvalidCredential) {
		t.Fatalf("old password must stop working, got %v", err)
	}
}
