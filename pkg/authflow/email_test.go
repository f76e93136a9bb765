package authflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/algoforge/authkit/pkg/oauthclient"
	"github.com/algoforge/authkit/pkg/providers"
	"github.com/algoforge/authkit/pkg/session"
)

func testHash(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestEmailAuthenticator_Authenticate(t *testing.T) {
	auth := NewEmailAuthenticator("ada@x.com", testHash(t, "correct horse"))

	t.Run("Success", func(t *testing.T) {
		user, err := auth.Authenticate("ada@x.com", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, "ada@x.com", user.ID)
		assert.Equal(t, "ada", user.Name)
		assert.Equal(t, providers.Email, user.Provider)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := auth.Authenticate("ada@x.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("WrongEmail", func(t *testing.T) {
		_, err := auth.Authenticate("bob@x.com", "correct horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("EmptyEmail", func(t *testing.T) {
		_, err := auth.Authenticate("", "correct horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_LoginWithEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("NotConfigured", func(t *testing.T) {
		service, _ := setupService(t, nil)

		result := service.LoginWithEmail(ctx, "ada@x.com", "pw")
		assert.False(t, result.Success)
		var confErr providers.ConfigurationError
		require.ErrorAs(t, result.Err, &confErr)
	})

	t.Run("Success", func(t *testing.T) {
		store := session.NewMemoryStore()
		service := NewService(
			testRegistry(nil),
			oauthclient.NewClient(store),
			session.NewRepository(store),
			WithEmailAuthenticator(NewEmailAuthenticator("ada@x.com", testHash(t, "correct horse"))),
		)
		service.Initialize()

		result := service.LoginWithEmail(ctx, "ada@x.com", "correct horse")
		require.True(t, result.Success)
		assert.True(t, service.IsAuthenticated())
		assert.Equal(t, providers.Email, service.CurrentUser().Provider)

		// The session survives a restart.
		restarted := NewService(testRegistry(nil), oauthclient.NewClient(store), session.NewRepository(store))
		restarted.Initialize()
		assert.True(t, restarted.IsAuthenticated())
	})

	t.Run("BadCredentials", func(t *testing.T) {
		store := session.NewMemoryStore()
		service := NewService(
			testRegistry(nil),
			oauthclient.NewClient(store),
			session.NewRepository(store),
			WithEmailAuthenticator(NewEmailAuthenticator("ada@x.com", testHash(t, "correct horse"))),
		)
		service.Initialize()

		result := service.LoginWithEmail(ctx, "ada@x.com", "wrong")
		assert.False(t, result.Success)
		assert.ErrorIs(t, result.Err, ErrInvalidCredentials)
		assert.False(t, service.IsAuthenticated())
	})
}
