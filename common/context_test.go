package common

import (
	"context"
	"testing"

	"github.com/mapleleafu/spritedex/models"
)

func TestAuthInfoRoundTrip(t *testing.T) {
	ctx := WithAuthInfo(context.Background(), models.AuthInfo{UserID: "u-1", Username: "ash"})

	info, ok := AuthInfoFrom(ctx)
	if !ok {
		t.Fatal("expected auth info in context")
	}
	if info.UserID != "u-1" || info.Username != "ash" {
		t.Fatalf("unexpected auth info: %+v", info)
	}
}

func TestAuthInfoMissing(t *testing.T) {
	if _, ok := AuthInfoFrom(context.Background()); ok {
		t.Fatal("expected no auth info")
	}
}
