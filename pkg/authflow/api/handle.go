package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/algoforge/authkit/pkg/authflow"
	"github.com/algoforge/authkit/pkg/oauthclient"
	"github.com/algoforge/authkit/pkg/providers"
)

// Error is the JSON error response shape.
type Error struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// UserResponse wraps the authenticated user for JSON responses.
type UserResponse struct {
	User *oauthclient.UserIdentity `json:"user"`
}

// EmailLoginRequest is the body of the email login endpoint.
type EmailLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Handle exposes the auth coordinator over HTTP for the hosting shell: the
// login redirect, the reserved callback path, session reads and logout.
type Handle struct {
	service     *authflow.Service
	frontendURL string
}

// NewHandle creates the auth HTTP handler.
func NewHandle(service *authflow.Service) *Handle {
	return &Handle{
		service:     service,
		frontendURL: "http://localhost:3000",
	}
}

// WithFrontendURL sets where the callback redirects the user afterwards.
func (h *Handle) WithFrontendURL(url string) *Handle {
	h.frontendURL = url
	return h
}

// Routes mounts the auth endpoints on the given router.
func (h *Handle) Routes(r chi.Router) {
	r.Get("/auth/login/{provider}", h.InitiateLogin)
	r.Post("/auth/login/email", h.EmailLogin)
	r.Get("/auth/callback", h.Callback)
	r.Get("/auth/me", h.Me)
	r.Post("/auth/logout", h.Logout)
}

// InitiateLogin starts an OAuth2 flow and redirects the browser to the
// identity provider.
func (h *Handle) InitiateLogin(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	result := h.service.Login(r.Context(), provider)
	if !result.Success {
		slog.Warn("Login initiation failed", "provider", provider, "error", result.Err)

		status := http.StatusInternalServerError
		code := "internal_error"
		var confErr providers.ConfigurationError
		if errors.As(result.Err, &confErr) {
			status = http.StatusBadRequest
			code = "configuration_error"
		} else if errors.Is(result.Err, authflow.ErrLoginInFlight) {
			status = http.StatusConflict
			code = "login_in_flight"
		}

		render.Status(r, status)
		render.JSON(w, r, Error{Error: code, ErrorDescription: result.Err.Error()})
		return
	}

	http.Redirect(w, r, result.RedirectURL, http.StatusFound)
}

// Callback handles the provider's redirect back to the reserved callback
// path. Success and failure both redirect to the frontend, never leaving the
// user stranded on the callback URL.
func (h *Handle) Callback(w http.ResponseWriter, r *http.Request) {
	provider := r.URL.Query().Get("provider")
	if provider == "" {
		provider = h.service.PendingProvider()
	}

	result := h.service.HandleOAuthCallback(r.Context(), provider, r.URL.Query())
	if !result.Success {
		slog.Error("OAuth2 callback failed", "provider", provider, "error", result.Err)
		http.Redirect(w, r, h.errorRedirect(result.Err), http.StatusFound)
		return
	}

	http.Redirect(w, r, h.frontendURL+"/?auth=success", http.StatusFound)
}

// EmailLogin authenticates the locally configured email credential.
func (h *Handle) EmailLogin(w http.ResponseWriter, r *http.Request) {
	var body EmailLoginRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error{Error: "invalid_request", ErrorDescription: "malformed request body"})
		return
	}

	result := h.service.LoginWithEmail(r.Context(), body.Email, body.Password)
	if !result.Success {
		status := http.StatusUnauthorized
		code := "invalid_credentials"
		var confErr providers.ConfigurationError
		if errors.As(result.Err, &confErr) {
			status = http.StatusBadRequest
			code = "configuration_error"
		}
		render.Status(r, status)
		render.JSON(w, r, Error{Error: code, ErrorDescription: result.Err.Error()})
		return
	}

	render.JSON(w, r, UserResponse{User: result.User})
}

// Me returns the current session user.
func (h *Handle) Me(w http.ResponseWriter, r *http.Request) {
	user := h.service.CurrentUser()
	if user == nil {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, Error{Error: "unauthenticated"})
		return
	}
	render.JSON(w, r, UserResponse{User: user})
}

// Logout clears the session.
func (h *Handle) Logout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// errorRedirect maps a callback failure onto the frontend error redirect.
func (h *Handle) errorRedirect(err error) string {
	code := "authentication_failed"

	var (
		providerErr oauthclient.ProviderReportedError
		stateErr    oauthclient.CsrfStateMismatchError
		codeErr     oauthclient.MissingAuthorizationCodeError
		exchangeErr oauthclient.TokenExchangeError
		userInfoErr oauthclient.UserInfoFetchError
		confErr     providers.ConfigurationError
	)
	switch {
	case errors.As(err, &providerErr):
		code = providerErr.Code
	case errors.As(err, &stateErr):
		code = "state_mismatch"
	case errors.As(err, &codeErr):
		code = "missing_code"
	case errors.As(err, &exchangeErr):
		code = "token_exchange_failed"
	case errors.As(err, &userInfoErr):
		code = "user_info_failed"
	case errors.As(err, &confErr):
		code = "configuration_error"
	}

	params := url.Values{}
	params.Set("error", code)
	params.Set("error_description", err.Error())
	return fmt.Sprintf("%s/login?%s", h.frontendURL, params.Encode())
}
