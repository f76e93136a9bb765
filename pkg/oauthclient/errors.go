package oauthclient

import "fmt"

// CsrfStateMismatchError is returned when the state on the incoming callback
// does not match the stored one, or no state was stored at all. It always
// fails the flow.
type CsrfStateMismatchError struct {
	Stored   bool
	Received string
}

func (e CsrfStateMismatchError) Error() string {
	if !e.Stored {
		return "oauth state verification failed: no state stored for this session"
	}
	return "oauth state verification failed: state parameter does not match"
}

// MissingAuthorizationCodeError is returned when the callback carries no
// authorization code.
type MissingAuthorizationCodeError struct{}

func (e MissingAuthorizationCodeError) Error() string {
	return "authorization code not found in callback parameters"
}

// ProviderReportedError is returned when the identity provider sent an error
// query parameter instead of an authorization code.
type ProviderReportedError struct {
	Code        string
	Description string
}

func (e ProviderReportedError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("provider reported error %q: %s", e.Code, e.Description)
	}
	return fmt.Sprintf("provider reported error %q", e.Code)
}

// TokenExchangeError is returned when the token endpoint responds with a
// non-success status or an unusable body. Authorization codes are single-use,
// so the exchange is never retried.
type TokenExchangeError struct {
	StatusCode int
	Body       string
}

func (e TokenExchangeError) Error() string {
	return fmt.Sprintf("token exchange failed with status %d: %s", e.StatusCode, e.Body)
}

// UserInfoFetchError is returned when the user info endpoint responds with a
// non-success status.
type UserInfoFetchError struct {
	StatusCode int
	Body       string
}

func (e UserInfoFetchError) Error() string {
	return fmt.Sprintf("user info request failed with status %d: %s", e.StatusCode, e.Body)
}

// UnsupportedProviderError is returned when a user payload arrives tagged
// with a provider the normalizer does not know. Unknown providers fail hard;
// raw payloads are never passed through.
type UnsupportedProviderError struct {
	Provider string
}

func (e UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported provider: %s", e.Provider)
}
