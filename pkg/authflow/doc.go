// Package authflow coordinates authentication for a hosting application.
//
// The Service composes the provider registry, the OAuth2 client and the
// session repository into the surface a UI layer consumes: Login, the
// callback handler, Logout, CurrentUser, IsAuthenticated and Loading. All
// network and protocol errors are caught at this boundary and reported as a
// structured Result; nothing escapes as an unhandled failure.
//
// The Service is the sole owner of the persisted session. The OAuth2 client
// only ever touches the one-time state token it owns.
package authflow
