// Package providers holds the static OAuth2 identity provider registry.
//
// The registry is pure data: endpoint URLs, scopes, client credentials and
// the redirect URI for each supported provider. Resolving a provider that is
// unknown or has no client ID configured fails with a ConfigurationError;
// there is no I/O and no fallback.
//
// # Basic Usage
//
//	configs := providers.DefaultConfigs("http://localhost:3000")
//	g := configs[providers.Google]
//	g.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
//	g.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
//	configs[providers.Google] = g
//
//	registry := providers.NewRegistry(configs)
//	cfg, err := registry.Resolve(providers.Google)
package providers
