package services

import (
	"context"
	"testing"
	"time"

	"github.com/mapleleafu/spritedex/auth"
	"github.com/mapleleafu/spritedex/models"
)

func newTestAuthService(t *testing.T) (*AuthService, *auth.TokenManager) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(newTestUsersService(t), tokens, nil), tokens
}

func TestRegisterOmitsPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	user, err := svc.Register(context.Background(), models.CreateUserDto{Username: "ash", Password: "pikachu123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" || user.Username != "ash" || user.CreatedAt.IsZero() {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestValidateUser(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, models.CreateUserDto{Username: "ash", Password: "pikachu123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.ValidateUser(ctx, "ash", "pikachu123")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if user == nil || user.Username != "ash" {
		t.Fatalf("validate = %+v, want ash", user)
	}

	user, err = svc.ValidateUser(ctx, "  ash ", "pikachu123")
	if err != nil || user == nil || user.Username != "ash" {
		t.Fatalf("padded username = %+v, %v; want ash", user, err)
	}

	user, err = svc.ValidateUser(ctx, "ash", "wrong-password")
	if err != nil || user != nil {
		t.Fatalf("wrong password = %+v, %v; want nil, nil", user, err)
	}

	user, err = svc.ValidateUser(ctx, "gary", "pikachu123")
	if err != nil || user != nil {
		t.Fatalf("unknown user = %+v, %v; want nil, nil", user, err)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, tokens := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, models.CreateUserDto{Username: "ash", Password: "pikachu123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	user, err := svc.ValidateUser(ctx, "ash", "pikachu123")
	if err != nil || user == nil {
		t.Fatalf("validate: %+v, %v", user, err)
	}

	result, err := svc.Login(ctx, *user)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.User.ID != registered.ID || result.User.Username != "ash" {
		t.Fatalf("unexpected login user: %+v", result.User)
	}

	claims, err := tokens.Verify(result.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != registered.ID || claims.Username != "ash" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}
