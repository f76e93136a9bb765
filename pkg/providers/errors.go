package providers

import "fmt"

// ConfigurationError is returned when a provider is unknown or its static
// configuration is incomplete. It is user-actionable and never fatal.
type ConfigurationError struct {
	Provider string
	Reason   string
}

func (e ConfigurationError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("provider configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("provider %q configuration error: %s", e.Provider, e.Reason)
}
