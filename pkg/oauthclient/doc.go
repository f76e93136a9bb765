// Package oauthclient implements the OAuth2 authorization code flow against
// external identity providers.
//
// This is the protocol engine of the module: CSRF state generation and
// one-time verification, authorization URL construction, the
// code-for-token exchange, user info retrieval and normalization into a
// provider-agnostic identity record.
//
// The client owns exactly one piece of persisted state, the one-time CSRF
// token, written through an injectable StateStore. Everything else it
// computes is handed back to the caller; session persistence belongs to the
// authflow coordinator.
//
// # Basic Usage
//
//	client := oauthclient.NewClient(store)
//
//	// Begin a flow: the caller navigates to redirect.URL.
//	redirect, err := client.BeginAuthorization(cfg)
//
//	// On callback, verify, exchange and normalize in one step.
//	result, err := client.HandleCallback(ctx, cfg, r.URL.Query())
//
// Errors are typed per failure mode (CsrfStateMismatchError,
// TokenExchangeError, ...); discriminate with errors.As.
package oauthclient
