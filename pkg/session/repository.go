package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/algoforge/authkit/pkg/oauthclient"
)

// Persisted keys. oauth.state shares the same store but belongs to the
// oauthclient package alone.
const (
	keyUser            = "session.user"
	keyAccessToken     = "session.accessToken"
	keyRefreshToken    = "session.refreshToken"
	keyPendingProvider = "session.pendingProvider"
)

// Record is the persisted session: present user iff a successful
// authentication has completed and not been logged out.
type Record struct {
	User         oauthclient.UserIdentity
	AccessToken  string
	RefreshToken string
}

// Repository layers session semantics over the raw key-value Store. It is
// exclusively owned by the authflow coordinator.
type Repository struct {
	store Store
}

// NewRepository creates a session repository over the given store.
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// Save persists a session record, overwriting any previous one. The refresh
// token key is removed when the provider issued none.
func (r *Repository) Save(rec Record) error {
	userJSON, err := json.Marshal(rec.User)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	if err := r.store.Set(keyUser, string(userJSON)); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}
	if err := r.store.Set(keyAccessToken, rec.AccessToken); err != nil {
		return fmt.Errorf("failed to persist access token: %w", err)
	}
	if rec.RefreshToken != "" {
		if err := r.store.Set(keyRefreshToken, rec.RefreshToken); err != nil {
			return fmt.Errorf("failed to persist refresh token: %w", err)
		}
	} else if err := r.store.Remove(keyRefreshToken); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// Load restores a previously persisted session. A missing session returns
// (nil, nil). Malformed persisted data is discarded and treated as absent,
// never as a failure.
func (r *Repository) Load() (*Record, error) {
	userJSON, err := r.store.Get(keyUser)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var user oauthclient.UserIdentity
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		slog.Warn("Discarding corrupt persisted session", "error", err)
		if clearErr := r.Clear(); clearErr != nil {
			slog.Warn("Failed to clear corrupt session", "error", clearErr)
		}
		return nil, nil
	}

	rec := &Record{User: user}
	if token, err := r.store.Get(keyAccessToken); err == nil {
		rec.AccessToken = token
	}
	if refresh, err := r.store.Get(keyRefreshToken); err == nil {
		rec.RefreshToken = refresh
	}
	return rec, nil
}

// Clear removes the whole session, pending provider included. Clearing an
// already cleared session is a no-op.
func (r *Repository) Clear() error {
	for _, key := range []string{keyUser, keyAccessToken, keyRefreshToken, keyPendingProvider} {
		if err := r.store.Remove(key); err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	return nil
}

// SetPendingProvider records which provider was selected before the redirect
// round-trip loses the call context.
func (r *Repository) SetPendingProvider(provider string) error {
	return r.store.Set(keyPendingProvider, provider)
}

// PendingProvider returns the provider selected before the redirect, or ""
// when none is pending.
func (r *Repository) PendingProvider() string {
	provider, err := r.store.Get(keyPendingProvider)
	if err != nil {
		return ""
	}
	return provider
}

// ClearPendingProvider removes the pending provider marker.
func (r *Repository) ClearPendingProvider() error {
	return r.store.Remove(keyPendingProvider)
}
