// Package config defines the environment configuration consumed at startup.
//
// Structs carry cleanenv tags; read them with cleanenv.ReadEnv in main. The
// Providers struct holds per-provider OAuth2 credentials (a provider without
// a client ID is disabled) and merges them into the built-in endpoint
// defaults with BuildConfigs.
package config
