package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mapleleafu/spritedex/repository"
	"golang.org/x/crypto/bcrypt"
)

func openTempStore(t *testing.T) *repository.DB {
	t.Helper()

	db, err := repository.Open(context.Background(), repository.DriverSQLite, filepath.Join(t.TempDir(), "services.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestUsersService(t *testing.T) *UsersService {
	t.Helper()
	return NewUsersService(openTempStore(t), bcrypt.MinCost, nil)
}
