package auth

import "fmt"

// ProviderError is a non-success response from the auth provider. The
// status code and raw body are preserved so callers can propagate them
// verbatim (the provider's error payloads are part of the app contract).
type ProviderError struct {
	StatusCode int
	Body       []byte
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}
