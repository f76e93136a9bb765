package oauthclient

import "encoding/json"

// UserIdentity is the normalized, provider-agnostic user record. The shape is
// identical regardless of the source provider; the ID is stable but only
// unique within a provider.
type UserIdentity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Provider  string `json:"provider"`
}

// TokenResult is the outcome of the authorization-code-for-token exchange.
// Raw holds the provider's response body untouched; it is not part of the
// contract and callers must not depend on its shape.
type TokenResult struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	Raw          json.RawMessage `json:"-"`
}

// tokenResponse is the wire shape of the token endpoint response.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
}

// AuthorizationRedirect is what BeginAuthorization hands back to the hosting
// shell: the URL to navigate to and the CSRF state bound to this attempt.
// The shell performs the actual navigation.
type AuthorizationRedirect struct {
	URL   string
	State string
}

// CallbackResult is the composed outcome of a successful callback: the
// normalized user plus the tokens to persist. HandleCallback never persists
// any of this itself.
type CallbackResult struct {
	User         UserIdentity
	Token        string
	RefreshToken string
}
