package service

import (
	"context"
	"testing"

	"github.com/gonexe/coupon-book-service/internal/config"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *memUserRepo) {
	t.Helper()
	users := newMemUserRepo()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
		},
	}
	return NewAuthService(cfg, users), users
}

func TestRegisterIssuesToken(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, token, _, err := svc.Register(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("user id not set")
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("password stored in plaintext")
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != "alice@example.com" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, _, _, err := svc.Register(context.Background(), "alice@example.com", "secret1"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, _, _, err := svc.Register(context.Background(), "alice@example.com", "secret2")
	checkDomainError(t, err, "CONFLICT", "User with this email already exists")
}

func TestLogin(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	registered, _, _, err := svc.Register(context.Background(), "bob@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, _, err := svc.Login(context.Background(), "bob@example.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("login returned wrong user: %+v", user)
	}
	if token == "" {
		t.Fatalf("login returned empty token")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, _, _, err := svc.Register(context.Background(), "bob@example.com", "secret1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, _, err := svc.Login(context.Background(), "bob@example.com", "wrong")
	checkDomainError(t, err, "UNAUTHORIZED", "Invalid email or password")

	_, _, _, err = svc.Login(context.Background(), "nobody@example.com", "secret1")
	checkDomainError(t, err, "UNAUTHORIZED", "Invalid email or password")
}
