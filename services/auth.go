package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mapleleafu/spritedex/auth"
	"github.com/mapleleafu/spritedex/models"
	"github.com/mapleleafu/spritedex/utils"
)

type AuthService struct {
	users  *UsersService
	tokens *auth.TokenManager
	logger *slog.Logger
}

// LoginResult carries the signed session token and the identity it names.
type LoginResult struct {
	AccessToken string
	User        models.UserSummary
}

func NewAuthService(users *UsersService, tokens *auth.TokenManager, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: utils.Component(logger, "auth")}
}

// ValidateUser returns the user when the credentials match. Unknown users and
// wrong passwords both yield a nil user and no error.
func (s *AuthService) ValidateUser(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	user, err := s.users.FindOneByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user != nil {
		err := auth.ComparePassword(user.Password, password)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, err
		}
	}
	s.logger.Warn("failed login attempt", "username", username)
	return nil, nil
}

func (s *AuthService) Login(ctx context.Context, user models.User) (LoginResult, error) {
	s.logger.Info("login attempt", "username", user.Username)

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return LoginResult{}, err
	}

	s.logger.Info("successful login", "username", user.Username, "user_id", user.ID)
	return LoginResult{AccessToken: token, User: user.Summary()}, nil
}

// Register creates the user and returns it without credentials. It does not
// sign the user in.
func (s *AuthService) Register(ctx context.Context, dto models.CreateUserDto) (models.PublicUser, error) {
	user, err := s.users.Create(ctx, dto)
	if err != nil {
		return models.PublicUser{}, err
	}
	return user.Public(), nil
}
