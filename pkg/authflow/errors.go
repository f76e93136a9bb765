package authflow

import "errors"

// ErrLoginInFlight is returned when an authentication flow is already being
// processed and a second one arrives before it finishes.
var ErrLoginInFlight = errors.New("an authentication attempt is already in progress")

// ErrInvalidCredentials is returned for a failed email login. It is
// deliberately unspecific about which part of the credential was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")
