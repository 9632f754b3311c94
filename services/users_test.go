package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/mapleleafu/spritedex/auth"
	"github.com/mapleleafu/spritedex/models"
	"github.com/mapleleafu/spritedex/repository"
	"github.com/mapleleafu/spritedex/responses"
)

func TestCreateHashesPassword(t *testing.T) {
	users := newTestUsersService(t)
	ctx := context.Background()

	user, err := users.Create(ctx, models.CreateUserDto{Username: "  ash  ", Password: "pikachu123"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected generated id")
	}
	if user.Username != "ash" {
		t.Fatalf("username = %q, want trimmed", user.Username)
	}
	if user.Password == "pikachu123" {
		t.Fatal("password stored in plain text")
	}
	if err := auth.ComparePassword(user.Password, "pikachu123"); err != nil {
		t.Fatalf("stored hash does not match: %v", err)
	}

	found, err := users.FindOne(ctx, user.ID)
	if err != nil {
		t.Fatalf("find one: %v", err)
	}
	if found == nil || found.Username != "ash" {
		t.Fatalf("find one = %+v", found)
	}
}

func TestCreateRejectsInvalidInputAsBadRequest(t *testing.T) {
	users := newTestUsersService(t)

	tests := map[string]models.CreateUserDto{
		"blank username":         {Username: "   ", Password: "pikachu123"},
		"password over 72 bytes": {Username: "ash", Password: strings.Repeat("é", 40)},
	}
	for name, dto := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := users.Create(context.Background(), dto)
			var badRequest responses.BadRequestError
			if !errors.As(err, &badRequest) {
				t.Fatalf("expected BadRequestError, got %v", err)
			}
			if badRequest.StatusCode() != http.StatusBadRequest {
				t.Fatalf("status = %d", badRequest.StatusCode())
			}
		})
	}
}

func TestCreateRejectsTakenUsername(t *testing.T) {
	users := newTestUsersService(t)
	ctx := context.Background()

	if _, err := users.Create(ctx, models.CreateUserDto{Username: "ash", Password: "pikachu123"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := users.Create(ctx, models.CreateUserDto{Username: "ash", Password: "other-pass"})

	var conflict responses.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.StatusCode() != http.StatusConflict || conflict.Error() != "Username already exists" {
		t.Fatalf("unexpected conflict: %v", conflict)
	}
}

// racingStore reports a unique violation on insert even though the lookup
// found nothing, as happens when two registrations race.
type racingStore struct {
	repository.UserStore
}

func (racingStore) GetUserByUsername(context.Context, string) (models.User, error) {
	return models.User{}, repository.ErrNotFound
}

func (racingStore) CreateUser(context.Context, models.User) error {
	return repository.ErrUsernameTaken
}

func TestCreateMapsRacingUniqueViolation(t *testing.T) {
	users := NewUsersService(racingStore{}, 4, nil)

	_, err := users.Create(context.Background(), models.CreateUserDto{Username: "ash", Password: "pikachu123"})
	var conflict responses.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestFindMissingReturnsNil(t *testing.T) {
	users := newTestUsersService(t)
	ctx := context.Background()

	user, err := users.FindOne(ctx, "missing")
	if err != nil || user != nil {
		t.Fatalf("find one = %+v, %v; want nil, nil", user, err)
	}
	user, err = users.FindOneByUsername(ctx, "missing")
	if err != nil || user != nil {
		t.Fatalf("find by username = %+v, %v; want nil, nil", user, err)
	}
}

func TestFindAll(t *testing.T) {
	users := newTestUsersService(t)
	ctx := context.Background()

	for _, name := range []string{"ash", "misty"} {
		if _, err := users.Create(ctx, models.CreateUserDto{Username: name, Password: "pikachu123"}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	all, err := users.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("users = %d, want 2", len(all))
	}
}
