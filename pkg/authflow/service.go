package authflow

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/algoforge/authkit/pkg/oauthclient"
	"github.com/algoforge/authkit/pkg/providers"
	"github.com/algoforge/authkit/pkg/session"
)

// Status is the coordinator's lifecycle state.
type Status string

const (
	StatusUninitialized   Status = "uninitialized"
	StatusRestoring       Status = "restoring"
	StatusUnauthenticated Status = "unauthenticated"
	StatusAuthenticating  Status = "authenticating"
	StatusAuthenticated   Status = "authenticated"
	StatusError           Status = "error"
)

// Result is the structured outcome of a coordinator operation. Failures are
// reported here, never raised past the coordinator boundary.
type Result struct {
	Success     bool
	User        *oauthclient.UserIdentity
	RedirectURL string
	Err         error
}

func failure(err error) Result {
	return Result{Success: false, Err: err}
}

// Service orchestrates login initiation, callback handling and session
// lifecycle. It composes the provider registry, the OAuth2 client and the
// session repository, and is the only component that mutates the session.
type Service struct {
	registry  *providers.Registry
	oauth     *oauthclient.Client
	sessions  *session.Repository
	emailAuth *EmailAuthenticator

	mu       sync.Mutex
	user     *oauthclient.UserIdentity
	status   Status
	inFlight bool
}

// Option configures a Service.
type Option func(*Service)

// WithEmailAuthenticator enables the local email/password login.
func WithEmailAuthenticator(auth *EmailAuthenticator) Option {
	return func(s *Service) {
		s.emailAuth = auth
	}
}

// NewService creates an auth coordinator.
func NewService(registry *providers.Registry, oauth *oauthclient.Client, sessions *session.Repository, opts ...Option) *Service {
	service := &Service{
		registry: registry,
		oauth:    oauth,
		sessions: sessions,
		status:   StatusUninitialized,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Initialize restores a previously persisted session at application start.
// Corrupt or missing persisted state leaves the coordinator unauthenticated;
// it never fails the host.
func (s *Service) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusRestoring

	rec, err := s.sessions.Load()
	if err != nil {
		slog.Warn("Session restore failed, starting unauthenticated", "error", err)
		s.user = nil
		s.status = StatusUnauthenticated
		return
	}
	if rec == nil {
		s.user = nil
		s.status = StatusUnauthenticated
		return
	}

	user := rec.User
	s.user = &user
	s.status = StatusAuthenticated
	slog.Info("Session restored", "provider", user.Provider, "user_id", user.ID)
}

// Login starts an OAuth2 flow for the named provider. On success the caller
// must navigate to Result.RedirectURL; the flow resumes at
// HandleOAuthCallback. Configuration problems come back as a structured
// failure, not a panic or a lost rejection. A second Login while a flow is
// pending is rejected.
func (s *Service) Login(ctx context.Context, providerName string) Result {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return failure(ErrLoginInFlight)
	}
	s.mu.Unlock()

	cfg, err := s.registry.Resolve(providerName)
	if err != nil {
		slog.Warn("Login rejected", "provider", providerName, "error", err)
		return failure(err)
	}

	if err := s.sessions.SetPendingProvider(providerName); err != nil {
		return failure(err)
	}

	redirect, err := s.oauth.BeginAuthorization(cfg)
	if err != nil {
		return failure(err)
	}

	s.mu.Lock()
	s.status = StatusAuthenticating
	s.mu.Unlock()

	slog.Info("Login initiated", "provider", providerName, "attempt_id", uuid.New().String())
	return Result{Success: true, RedirectURL: redirect.URL}
}

// HandleOAuthCallback finishes an OAuth2 flow: it delegates verification and
// exchange to the OAuth2 client, persists the session on success and clears
// the pending provider. Errors are terminal for the flow and reported in the
// result; the user must restart from Login.
func (s *Service) HandleOAuthCallback(ctx context.Context, providerName string, params url.Values) Result {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return failure(ErrLoginInFlight)
	}
	s.inFlight = true
	s.status = StatusAuthenticating
	s.mu.Unlock()

	result := s.completeCallback(ctx, providerName, params)

	s.mu.Lock()
	s.inFlight = false
	if result.Success {
		s.user = result.User
		s.status = StatusAuthenticated
	} else {
		s.status = StatusError
	}
	s.mu.Unlock()

	return result
}

func (s *Service) completeCallback(ctx context.Context, providerName string, params url.Values) Result {
	cfg, err := s.registry.Resolve(providerName)
	if err != nil {
		return failure(err)
	}

	outcome, err := s.oauth.HandleCallback(ctx, cfg, params)
	if err != nil {
		slog.Error("OAuth2 callback failed", "provider", providerName, "error", err)
		return failure(err)
	}

	rec := session.Record{
		User:         outcome.User,
		AccessToken:  outcome.Token,
		RefreshToken: outcome.RefreshToken,
	}
	if err := s.sessions.Save(rec); err != nil {
		return failure(err)
	}
	if err := s.sessions.ClearPendingProvider(); err != nil {
		slog.Warn("Failed to clear pending provider", "error", err)
	}

	user := outcome.User
	slog.Info("Authentication successful", "provider", providerName, "user_id", user.ID)
	return Result{Success: true, User: &user}
}

// LoginWithEmail authenticates against the locally configured email
// credential and persists a session with no provider tokens.
func (s *Service) LoginWithEmail(ctx context.Context, email, password string) Result {
	if s.emailAuth == nil {
		return failure(providers.ConfigurationError{
			Provider: providers.Email,
			Reason:   "email login is not configured",
		})
	}

	user, err := s.emailAuth.Authenticate(email, password)
	if err != nil {
		slog.Warn("Email login failed", "email", email)
		return failure(err)
	}

	if err := s.sessions.Save(session.Record{User: user}); err != nil {
		return failure(err)
	}

	s.mu.Lock()
	s.user = &user
	s.status = StatusAuthenticated
	s.mu.Unlock()

	slog.Info("Email login successful", "user_id", user.ID)
	return Result{Success: true, User: &user}
}

// PendingProvider returns the provider selected before the redirect
// round-trip, defaulting to google when none was recorded.
func (s *Service) PendingProvider() string {
	if provider := s.sessions.PendingProvider(); provider != "" {
		return provider
	}
	return providers.Google
}

// Logout clears the session entirely. Synchronous and idempotent; a second
// call is a no-op.
func (s *Service) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.status = StatusUnauthenticated
	if err := s.sessions.Clear(); err != nil {
		slog.Warn("Failed to clear persisted session", "error", err)
	}
}

// CurrentUser returns a copy of the authenticated user, or nil.
func (s *Service) CurrentUser() *oauthclient.UserIdentity {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// IsAuthenticated reports whether a user session is active.
func (s *Service) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// Loading reports whether an operation is in progress, mirroring the flag
// the view layer consumes.
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight || s.status == StatusRestoring
}

// Status returns the coordinator's lifecycle state.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
