package oauthclient

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/algoforge/authkit/pkg/providers"
)

// Normalize maps a raw provider user payload to the canonical UserIdentity.
// Provider-specific fields are mapped or dropped; unknown provider names fail
// with UnsupportedProviderError.
func Normalize(providerName string, raw []byte) (UserIdentity, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var payload map[string]interface{}
	if err := decoder.Decode(&payload); err != nil {
		return UserIdentity{}, fmt.Errorf("failed to unmarshal user info: %w", err)
	}

	switch providerName {
	case providers.Google:
		return UserIdentity{
			ID:        stringValue(payload, "id"),
			Name:      stringValue(payload, "name"),
			Email:     stringValue(payload, "email"),
			AvatarURL: stringValue(payload, "picture"),
			Provider:  providers.Google,
		}, nil

	case providers.GitHub:
		name := stringValue(payload, "name")
		if name == "" {
			name = stringValue(payload, "login")
		}
		return UserIdentity{
			ID:        stringValue(payload, "id"),
			Name:      name,
			Email:     stringValue(payload, "email"),
			AvatarURL: stringValue(payload, "avatar_url"),
			Provider:  providers.GitHub,
		}, nil

	default:
		return UserIdentity{}, UnsupportedProviderError{Provider: providerName}
	}
}

// stringValue extracts a string field, stringifying numeric IDs without a
// float round-trip (GitHub sends its user ID as a number).
func stringValue(payload map[string]interface{}, key string) string {
	val, ok := payload[key]
	if !ok {
		return ""
	}
	switch v := val.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
