package session_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Xunop/aldiaa/internal/model"
	"github.com/Xunop/aldiaa/internal/session"
	"github.com/Xunop/aldiaa/internal/store"
	"github.com/Xunop/aldiaa/internal/store/db"
	"github.com/pkg/errors"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	d, err := db.NewDB(filepath.Join(t.TempDir(), "session_test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := d.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	s := store.NewStore(d.DB)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	h := session.NewHolder(s, 0)

	user, err := h.Current(ctx)
	if err != nil || user != nil {
		t.Fatalf("expected no user, got %+v err=%v", user, err)
	}

	user, err = h.Login(ctx, "reader@example.com", "")
	if err != nil {
		t.Fatalf("Failed to login: %v", err)
	}
	if user.Name != "reader" || !user.IsLoggedIn || user.ID == "" {
		t.Fatalf("unexpected user: %+v", user)
	}

	// A new holder over the same store sees the same user, as after a reload
	reloaded, err := session.NewHolder(s, 0).Current(ctx)
	if err != nil || reloaded == nil || reloaded.ID != user.ID {
		t.Fatalf("session not persisted: %+v err=%v", reloaded, err)
	}

	if err := h.Logout(ctx); err != nil {
		t.Fatalf("Failed to logout: %v", err)
	}
	reloaded, err = session.NewHolder(s, 0).Current(ctx)
	if err != nil || reloaded != nil {
		t.Fatalf("expected no user after logout, got %+v err=%v", reloaded, err)
	}
}

func TestLoginSameEmailSameID(t *testing.T) {
	ctx := context.Background()
	h := session.NewHolder(newTestStore(t), 0)

	first, err := h.Login(ctx, "reader@example.com", "Reader")
	if err != nil {
		t.Fatal(err)
	}
	second, err := h.Login(ctx, "READER@example.com", "Reader")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same id, got %s and %s", first.ID, second.ID)
	}
}

func TestLoginWithProvider(t *testing.T) {
	ctx := context.Background()
	h := session.NewHolder(newTestStore(t), 0)

	user, err := h.LoginWithProvider(ctx, "Google")
	if err != nil {
		t.Fatalf("Failed to login with provider: %v", err)
	}
	if user.Email != "user@gmail.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if _, err := h.LoginWithProvider(ctx, "myspace"); !errors.Is(err, session.ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestLoginDelayHonoursContext(t *testing.T) {
	h := session.NewHolder(newTestStore(t), time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := h.Login(ctx, "a@b.c", ""); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if user, _ := h.Current(context.Background()); user != nil {
		t.Fatalf("cancelled login must not persist a user: %+v", user)
	}
}

func TestCorruptBlobIsAnonymous(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if err := s.SetSessionBlob(ctx, session.UserKey, "{not json"); err != nil {
		t.Fatal(err)
	}
	user, err := session.NewHolder(s, 0).Current(ctx)
	if err != nil || user != nil {
		t.Fatalf("expected anonymous, got %+v err=%v", user, err)
	}
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	h := session.NewHolder(newTestStore(t), 0)

	var seen []*model.User
	h.Subscribe(func(user *model.User) { seen = append(seen, user) })

	if _, err := h.Login(ctx, "a@example.com", ""); err != nil {
		t.Fatal(err)
	}
	if err := h.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 || seen[0] == nil || seen[1] != nil {
		t.Fatalf("unexpected notifications: %+v", seen)
	}
}
