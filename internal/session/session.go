package session // import "github.com/Xunop/aldiaa/internal/session"

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/Xunop/aldiaa/internal/log"
	"github.com/Xunop/aldiaa/internal/model"
	"github.com/Xunop/aldiaa/internal/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// UserKey is the fixed key of the session blob.
const UserKey = "aldiaa_user"

const ProviderGoogle = "google"

var ErrUnknownProvider = errors.New("unknown login provider")

// providerAccounts are the accounts a provider login fabricates.
var providerAccounts = map[string]model.UserLoginRequest{
	ProviderGoogle: {Email: "user@gmail.com", Name: "Google User"},
}

// BlobStore keeps serialized values under fixed keys.
type BlobStore interface {
	GetSessionBlob(ctx context.Context, key string) (string, bool, error)
	SetSessionBlob(ctx context.Context, key, value string) error
	DeleteSessionBlob(ctx context.Context, key string) error
}

// Holder reads and writes the logged in user. There is no token and no
// expiry: whoever can read the blob is logged in.
type Holder struct {
	blobs      BlobStore
	loginDelay time.Duration

	mu        sync.Mutex
	listeners []func(user *model.User)
}

func NewHolder(blobs BlobStore, loginDelay time.Duration) *Holder {
	return &Holder{
		blobs:      blobs,
		loginDelay: loginDelay,
	}
}

// Subscribe registers fn to be called after every login and logout, with
// the new user or nil.
func (h *Holder) Subscribe(fn func(user *model.User)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

func (h *Holder) notify(user *model.User) {
	h.mu.Lock()
	listeners := append([]func(*model.User){}, h.listeners...)
	h.mu.Unlock()
	for _, fn := range listeners {
		fn(user)
	}
}

// Current returns the persisted user, nil when nobody is logged in.
func (h *Holder) Current(ctx context.Context) (*model.User, error) {
	value, ok, err := h.blobs.GetSessionBlob(ctx, UserKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var user model.User
	if err := json.Unmarshal([]byte(value), &user); err != nil {
		log.Warn("Ignoring unreadable session blob", zap.Error(err))
		return nil, nil
	}
	return &user, nil
}

// Login fabricates a user after the mock delay and persists it. Nothing
// leaves the machine.
func (h *Holder) Login(ctx context.Context, email, name string) (*model.User, error) {
	if err := h.wait(ctx); err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if name == "" {
		name = util.EmailLocalPart(email)
	}
	user := &model.User{
		ID:         util.UserIDFromEmail(email),
		Name:       name,
		Email:      email,
		IsLoggedIn: true,
	}

	b, err := json.Marshal(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode user")
	}
	if err := h.blobs.SetSessionBlob(ctx, UserKey, string(b)); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}

	log.Info("User logged in", zap.String("user_id", user.ID), zap.String("email", user.Email))
	h.notify(user)
	return user, nil
}

// LoginWithProvider logs in with the account a provider would have returned.
func (h *Holder) LoginWithProvider(ctx context.Context, provider string) (*model.User, error) {
	account, ok := providerAccounts[strings.ToLower(provider)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownProvider, "provider %q", provider)
	}
	return h.Login(ctx, account.Email, account.Name)
}

// Logout deletes the session blob. Logging out twice is fine.
func (h *Holder) Logout(ctx context.Context) error {
	if err := h.blobs.DeleteSessionBlob(ctx, UserKey); err != nil {
		return errors.Wrap(err, "failed to clear session")
	}
	log.Info("User logged out")
	h.notify(nil)
	return nil
}

func (h *Holder) wait(ctx context.Context) error {
	if h.loginDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(h.loginDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
