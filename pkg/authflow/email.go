package authflow

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/algoforge/authkit/pkg/oauthclient"
	"github.com/algoforge/authkit/pkg/providers"
)

// EmailAuthenticator verifies the single locally configured email credential.
// It backs the email/password form; there is no account database behind it.
type EmailAuthenticator struct {
	email        string
	passwordHash string
}

// NewEmailAuthenticator creates an authenticator for one email address and
// its bcrypt password hash.
func NewEmailAuthenticator(email, passwordHash string) *EmailAuthenticator {
	return &EmailAuthenticator{
		email:        email,
		passwordHash: passwordHash,
	}
}

// Authenticate checks the credentials and returns the derived identity. The
// identity uses the email address as its provider-scoped ID and the local
// part as the display name.
func (a *EmailAuthenticator) Authenticate(email, password string) (oauthclient.UserIdentity, error) {
	if email == "" || email != a.email {
		return oauthclient.UserIdentity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)); err != nil {
		return oauthclient.UserIdentity{}, ErrInvalidCredentials
	}

	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}

	return oauthclient.UserIdentity{
		ID:       email,
		Name:     name,
		Email:    email,
		Provider: providers.Email,
	}, nil
}
