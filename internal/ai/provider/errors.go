package provider

import "errors"

// Sentinel errors for provider operations.
var (
	// ErrNotConfigured indicates no API credentials were supplied. The
	// AI subsystem treats this as a normal degraded mode, never a failure.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrRateLimit indicates the provider returned a rate limit response.
	ErrRateLimit = errors.New("provider rate limited")

	// ErrProviderDown indicates the provider is temporarily unavailable.
	ErrProviderDown = errors.New("provider unavailable")
)
