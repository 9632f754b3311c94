package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mapleleafu/spritedex/models"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrUsernameTaken indicates a unique violation on users.username.
	ErrUsernameTaken = errors.New("username already exists")
)

// UserStore persists user records.
type UserStore interface {
	CreateUser(ctx context.Context, u models.User) error
	GetUserByID(ctx context.Context, id string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

var _ UserStore = (*DB)(nil)

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func (db *DB) CreateUser(ctx context.Context, u models.User) error {
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if u.Password == "" {
		return fmt.Errorf("password hash is required")
	}

	_, err := db.exec(ctx, "INSERT INTO users (id, username, password, created_at) VALUES ($1, $2, $3, $4)",
		u.ID, u.Username, u.Password, toMillis(u.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (db *DB) GetUserByID(ctx context.Context, id string) (models.User, error) {
	if strings.TrimSpace(id) == "" {
		return models.User{}, fmt.Errorf("user id is required")
	}
	return db.getUser(ctx, "SELECT id, username, password, created_at FROM users WHERE id = $1", id)
}

func (db *DB) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return db.getUser(ctx, "SELECT id, username, password, created_at FROM users WHERE username = $1", username)
}

func (db *DB) getUser(ctx context.Context, query string, arg string) (models.User, error) {
	var (
		u         models.User
		createdAt int64
	)
	err := db.queryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Password, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt = fromMillis(createdAt)
	return u, nil
}

func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := db.query(ctx, "SELECT id, username, password, created_at FROM users ORDER BY created_at, username")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var (
			u         models.User
			createdAt int64
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.Password, &createdAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.CreatedAt = fromMillis(createdAt)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}
