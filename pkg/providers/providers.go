package providers

import (
	"net/url"

	"golang.org/x/oauth2/endpoints"
)

// Known provider names. The set is closed: adding a provider means adding a
// constant here, a default config in DefaultConfigs, and a normalization case
// in the oauthclient package.
const (
	Google = "google"
	GitHub = "github"
	Email  = "email"
)

// Config holds the static OAuth2 settings for one identity provider.
type Config struct {
	Name         string `json:"name"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri"`
	Scope        string `json:"scope"`
	AuthURL      string `json:"auth_url"`
	TokenURL     string `json:"token_url"`
	UserInfoURL  string `json:"user_info_url"`
}

// Validate checks that the config is complete enough to run an
// authorization code flow.
func (c *Config) Validate() error {
	if c.Name == "" {
		return ConfigurationError{Provider: c.Name, Reason: "provider name is required"}
	}
	if c.ClientID == "" {
		return ConfigurationError{Provider: c.Name, Reason: "client ID is required"}
	}
	if c.AuthURL == "" {
		return ConfigurationError{Provider: c.Name, Reason: "authorization URL is required"}
	}
	if c.TokenURL == "" {
		return ConfigurationError{Provider: c.Name, Reason: "token URL is required"}
	}
	if c.UserInfoURL == "" {
		return ConfigurationError{Provider: c.Name, Reason: "user info URL is required"}
	}
	if _, err := url.Parse(c.AuthURL); err != nil {
		return ConfigurationError{Provider: c.Name, Reason: "invalid authorization URL: " + err.Error()}
	}
	if _, err := url.Parse(c.TokenURL); err != nil {
		return ConfigurationError{Provider: c.Name, Reason: "invalid token URL: " + err.Error()}
	}
	if _, err := url.Parse(c.UserInfoURL); err != nil {
		return ConfigurationError{Provider: c.Name, Reason: "invalid user info URL: " + err.Error()}
	}
	return nil
}

// DefaultConfigs returns the built-in provider configurations with endpoint
// URLs filled in and credentials left empty. Auth and token endpoints come
// from the canonical golang.org/x/oauth2 endpoint registry.
func DefaultConfigs(baseURL string) map[string]Config {
	redirectURI := baseURL + "/auth/callback"
	return map[string]Config{
		Google: {
			Name:        Google,
			RedirectURI: redirectURI,
			Scope:       "openid email profile",
			AuthURL:     endpoints.Google.AuthURL,
			TokenURL:    endpoints.Google.TokenURL,
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
		GitHub: {
			Name:        GitHub,
			RedirectURI: redirectURI,
			Scope:       "user:email",
			AuthURL:     endpoints.GitHub.AuthURL,
			TokenURL:    endpoints.GitHub.TokenURL,
			UserInfoURL: "https://api.github.com/user",
		},
	}
}

// Registry is an immutable lookup table from provider name to Config.
type Registry struct {
	configs map[string]Config
}

// NewRegistry builds a registry from the given configs. Configs without a
// client ID are still stored so that Resolve can report them as not
// configured rather than unknown.
func NewRegistry(configs map[string]Config) *Registry {
	copied := make(map[string]Config, len(configs))
	for name, cfg := range configs {
		copied[name] = cfg
	}
	return &Registry{configs: copied}
}

// Resolve returns the configuration for the named provider. It fails with a
// ConfigurationError when the provider is unknown or has no client ID set;
// a missing client ID disables the provider.
func (r *Registry) Resolve(name string) (Config, error) {
	cfg, ok := r.configs[name]
	if !ok {
		return Config{}, ConfigurationError{Provider: name, Reason: "unknown provider"}
	}
	if cfg.ClientID == "" {
		return Config{}, ConfigurationError{Provider: name, Reason: "client ID is not configured"}
	}
	return cfg, nil
}

// Names returns the names of all providers with a client ID configured.
func (r *Registry) Names() []string {
	var names []string
	for name, cfg := range r.configs {
		if cfg.ClientID != "" {
			names = append(names, name)
		}
	}
	return names
}
