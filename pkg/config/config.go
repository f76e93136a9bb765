package config

import (
	"github.com/algoforge/authkit/pkg/providers"
)

// App contains the hosting shell settings.
type App struct {
	BaseURL            string `env:"BASE_URL" env-default:"http://localhost:3000"`
	FrontendURL        string `env:"FRONTEND_URL" env-default:"http://localhost:3000"`
	DataDir            string `env:"DATA_DIR" env-default:".authkit"`
	HTTPTimeoutSeconds int    `env:"HTTP_TIMEOUT_SECONDS" env-default:"30"`
}

// Providers contains OAuth2 credentials for the supported identity providers
// plus the optional local email credential. A provider with no client ID is
// disabled.
type Providers struct {
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI  string `env:"GOOGLE_REDIRECT_URI"`

	GitHubClientID     string `env:"GITHUB_CLIENT_ID"`
	GitHubClientSecret string `env:"GITHUB_CLIENT_SECRET"`
	GitHubRedirectURI  string `env:"GITHUB_REDIRECT_URI"`

	EmailDemoUser         string `env:"EMAIL_DEMO_USER"`
	EmailDemoPasswordHash string `env:"EMAIL_DEMO_PASSWORD_HASH"`
}

// IsGoogleConfigured returns true if Google OAuth2 credentials are set.
func (c *Providers) IsGoogleConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// IsGitHubConfigured returns true if GitHub OAuth2 credentials are set.
func (c *Providers) IsGitHubConfigured() bool {
	return c.GitHubClientID != "" && c.GitHubClientSecret != ""
}

// IsEmailConfigured returns true if the local email credential is set.
func (c *Providers) IsEmailConfigured() bool {
	return c.EmailDemoUser != "" && c.EmailDemoPasswordHash != ""
}

// HasAnyProviderConfigured returns true if at least one login method is
// usable.
func (c *Providers) HasAnyProviderConfigured() bool {
	return c.IsGoogleConfigured() || c.IsGitHubConfigured() || c.IsEmailConfigured()
}

// BuildConfigs merges the credentials into the built-in provider defaults
// for the given base URL.
func (c *Providers) BuildConfigs(baseURL string) map[string]providers.Config {
	configs := providers.DefaultConfigs(baseURL)

	google := configs[providers.Google]
	google.ClientID = c.GoogleClientID
	google.ClientSecret = c.GoogleClientSecret
	if c.GoogleRedirectURI != "" {
		google.RedirectURI = c.GoogleRedirectURI
	}
	configs[providers.Google] = google

	github := configs[providers.GitHub]
	github.ClientID = c.GitHubClientID
	github.ClientSecret = c.GitHubClientSecret
	if c.GitHubRedirectURI != "" {
		github.RedirectURI = c.GitHubRedirectURI
	}
	configs[providers.GitHub] = github

	return configs
}
