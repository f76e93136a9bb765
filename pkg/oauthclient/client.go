package oauthclient

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/algoforge/authkit/pkg/providers"
)

// stateKey is where the one-time CSRF state lives in the backing store. The
// client owns this key completely; nothing else reads or writes it.
const stateKey = "oauth.state"

// StateStore persists the one-time CSRF state token between the login
// redirect and the matching callback. Any key-value store with these three
// operations will do; session.MemoryStore and session.FileStore both qualify.
type StateStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// Client is the OAuth2 authorization code flow engine: it builds
// authorization URLs, verifies CSRF state, exchanges codes for tokens and
// fetches user info. It never touches session data; persisting the outcome
// is the coordinator's job.
type Client struct {
	states     StateStore
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for token and user info requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// NewClient creates an OAuth2 client backed by the given state store. The
// default HTTP client carries a 30 second timeout so a hung provider cannot
// stall a flow forever.
func NewClient(states StateStore, opts ...Option) *Client {
	client := &Client{
		states:     states,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// GenerateState returns a cryptographically random state token.
func GenerateState() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BuildAuthorizationURL constructs the authorization endpoint URL with
// client_id, redirect_uri, scope and response_type=code. The state parameter
// is included only when non-empty. Pure function, no side effects.
func BuildAuthorizationURL(cfg providers.Config, state string) (string, error) {
	authURL, err := url.Parse(cfg.AuthURL)
	if err != nil {
		return "", fmt.Errorf("invalid authorization URL: %w", err)
	}

	params := url.Values{}
	params.Set("client_id", cfg.ClientID)
	params.Set("redirect_uri", cfg.RedirectURI)
	params.Set("scope", cfg.Scope)
	params.Set("response_type", "code")
	if state != "" {
		params.Set("state", state)
	}

	authURL.RawQuery = params.Encode()
	return authURL.String(), nil
}

// BeginAuthorization generates a fresh state token, persists it, and returns
// the authorization URL the hosting shell must navigate to. At most one live
// state exists at a time; starting a new flow replaces any previous one.
func (c *Client) BeginAuthorization(cfg providers.Config) (AuthorizationRedirect, error) {
	state, err := GenerateState()
	if err != nil {
		return AuthorizationRedirect{}, err
	}

	if err := c.states.Set(stateKey, state); err != nil {
		return AuthorizationRedirect{}, fmt.Errorf("failed to store state: %w", err)
	}

	authURL, err := BuildAuthorizationURL(cfg, state)
	if err != nil {
		return AuthorizationRedirect{}, err
	}

	slog.Info("OAuth2 flow initiated", "provider", cfg.Name, "auth_url", cfg.AuthURL)
	return AuthorizationRedirect{URL: authURL, State: state}, nil
}

// ExchangeCode exchanges an authorization code for tokens with a single POST
// to the token endpoint. Any non-success status fails with a
// TokenExchangeError; there is no retry because codes are single-use.
func (c *Client) ExchangeCode(ctx context.Context, cfg providers.Config, code string) (TokenResult, error) {
	data := url.Values{}
	data.Set("client_id", cfg.ClientID)
	data.Set("client_secret", cfg.ClientSecret)
	data.Set("code", code)
	data.Set("redirect_uri", cfg.RedirectURI)
	data.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return TokenResult{}, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return TokenResult{}, fmt.Errorf("failed to make token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return TokenResult{}, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return TokenResult{}, TokenExchangeError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed tokenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return TokenResult{}, fmt.Errorf("failed to parse token response: %w", err)
	}

	// GitHub reports bad codes with a 200 and an error body, so an empty
	// access token is treated as a failed exchange too.
	if parsed.AccessToken == "" {
		return TokenResult{}, TokenExchangeError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	slog.Info("Token exchange successful", "provider", cfg.Name, "token_type", parsed.TokenType)
	return TokenResult{
		AccessToken:  parsed.AccessToken,
		RefreshToken: parsed.RefreshToken,
		Raw:          json.RawMessage(body),
	}, nil
}

// FetchUserInfo retrieves the raw user payload from the provider using
// bearer auth. The payload is provider-specific; Normalize maps it to a
// UserIdentity.
func (c *Client) FetchUserInfo(ctx context.Context, cfg providers.Config, accessToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.UserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create user info request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make user info request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read user info response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, UserInfoFetchError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// HandleCallback runs the full callback sequence: provider error check, CSRF
// state verification, code exchange, user info fetch, normalization. The
// stored state is consumed exactly once, before any network call, regardless
// of outcome. The result is returned, never persisted.
func (c *Client) HandleCallback(ctx context.Context, cfg providers.Config, params url.Values) (CallbackResult, error) {
	// The one-time state is consumed up front so a replayed callback can
	// never succeed, whatever else happens below.
	stored, hasStored := c.consumeState()

	if errCode := params.Get("error"); errCode != "" {
		return CallbackResult{}, ProviderReportedError{
			Code:        errCode,
			Description: params.Get("error_description"),
		}
	}

	state := params.Get("state")
	if !hasStored {
		return CallbackResult{}, CsrfStateMismatchError{Stored: false, Received: state}
	}
	if state != stored {
		return CallbackResult{}, CsrfStateMismatchError{Stored: true, Received: state}
	}

	code := params.Get("code")
	if code == "" {
		return CallbackResult{}, MissingAuthorizationCodeError{}
	}

	token, err := c.ExchangeCode(ctx, cfg, code)
	if err != nil {
		return CallbackResult{}, err
	}

	raw, err := c.FetchUserInfo(ctx, cfg, token.AccessToken)
	if err != nil {
		return CallbackResult{}, err
	}

	user, err := Normalize(cfg.Name, raw)
	if err != nil {
		return CallbackResult{}, err
	}

	slog.Info("OAuth2 callback processed", "provider", cfg.Name, "external_id", user.ID)
	return CallbackResult{
		User:         user,
		Token:        token.AccessToken,
		RefreshToken: token.RefreshToken,
	}, nil
}

// consumeState reads and deletes the stored state in one step.
func (c *Client) consumeState() (string, bool) {
	stored, err := c.states.Get(stateKey)
	if err != nil {
		return "", false
	}
	if err := c.states.Remove(stateKey); err != nil {
		slog.Warn("Failed to delete oauth state", "error", err)
	}
	return stored, true
}
