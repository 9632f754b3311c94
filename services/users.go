package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mapleleafu/spritedex/auth"
	"github.com/mapleleafu/spritedex/models"
	"github.com/mapleleafu/spritedex/repository"
	"github.com/mapleleafu/spritedex/responses"
	"github.com/mapleleafu/spritedex/utils"
	"golang.org/x/crypto/bcrypt"
)

const usernameTakenMessage = "Username already exists"

type UsersService struct {
	store      repository.UserStore
	bcryptCost int
	newID      func() string
	now        func() time.Time
	logger     *slog.Logger
}

func NewUsersService(store repository.UserStore, bcryptCost int, logger *slog.Logger) *UsersService {
	return &UsersService{
		store:      store,
		bcryptCost: bcryptCost,
		newID:      uuid.NewString,
		now:        time.Now,
		logger:     utils.Component(logger, "users"),
	}
}

// Create registers a new user with a hashed password. A taken username is a
// ConflictError.
func (s *UsersService) Create(ctx context.Context, dto models.CreateUserDto) (models.User, error) {
	username := strings.TrimSpace(dto.Username)
	if username == "" {
		return models.User{}, responses.BadRequestError{Msg: "username should not be empty"}
	}

	existing, err := s.FindOneByUsername(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, responses.ConflictError{Msg: usernameTakenMessage}
	}

	hashed, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return models.User{}, responses.BadRequestError{Msg: "password must be shorter than or equal to 72 bytes"}
	}
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:        s.newID(),
		Username:  username,
		Password:  hashed,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return models.User{}, responses.ConflictError{Msg: usernameTakenMessage}
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *UsersService) FindAll(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	return users, nil
}

// FindOne returns nil without error when no user has the id.
func (s *UsersService) FindOne(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// FindOneByUsername returns nil without error when the username is unknown.
func (s *UsersService) FindOneByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &user, nil
}
