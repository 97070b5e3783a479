package gamenote

import (
	"errors"
	"fmt"
)

// Common sentinel errors for the library.
var (
	// ErrNoQuery indicates that the user did not enter a search query.
	ErrNoQuery = errors.New("no query entered")

	// ErrNoResults indicates that the provider returned zero games.
	ErrNoResults = errors.New("no results found")

	// ErrNoSelection indicates that the user dismissed the result list.
	ErrNoSelection = errors.New("no choice selected")

	// ErrUnauthorized indicates that the provider rejected the bearer token.
	ErrUnauthorized = errors.New("provider rejected access token")

	// ErrTokenRequest indicates that a fresh access token could not be obtained.
	ErrTokenRequest = errors.New("access token request failed")

	// ErrProviderConnection indicates that connection to a provider failed.
	ErrProviderConnection = errors.New("provider connection failed")

	// ErrProviderResponse indicates that a provider answered with an error or an unreadable body.
	ErrProviderResponse = errors.New("provider returned an invalid response")

	// ErrInvalidConfig indicates that the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrCacheOperation indicates that a token cache operation failed.
	ErrCacheOperation = errors.New("cache operation failed")
)

// ProviderError wraps an error with provider context.
type ProviderError struct {
	// Provider is the name of the provider that caused the error
	Provider string
	// Op is the operation that failed
	Op string
	// Status is the HTTP status code, if the provider answered
	Status int
	// Err is the underlying error
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	msg := e.Provider
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d", e.Status)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AuthError represents a failure to obtain an access token.
type AuthError struct {
	// Provider is the name of the identity provider
	Provider string
	// Details provides additional context
	Details string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	msg := fmt.Sprintf("authentication failed for provider '%s'", e.Provider)
	if e.Details != "" {
		msg += fmt.Sprintf(": %s", e.Details)
	}
	return msg
}

// Unwrap returns the underlying sentinel error.
func (e *AuthError) Unwrap() error {
	return ErrTokenRequest
}

// ConnectionError represents a transport level failure.
type ConnectionError struct {
	// Provider is the name of the provider
	Provider string
	// Details provides additional context
	Details string
	// Err is the transport error
	Err error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	msg := fmt.Sprintf("connection failed for provider '%s'", e.Provider)
	if e.Details != "" {
		msg += fmt.Sprintf(": %s", e.Details)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying sentinel error.
func (e *ConnectionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrProviderConnection}
	}
	return []error{ErrProviderConnection, e.Err}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	// Field is the configuration field with the error
	Field string
	// Details provides additional context
	Details string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration for '%s': %s", e.Field, e.Details)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Details)
}

// Unwrap returns the underlying sentinel error.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// CacheError represents a token cache operation error.
type CacheError struct {
	// Op is the operation that failed
	Op string
	// Path is the cache document location
	Path string
	// Err is the underlying error
	Err error
}

// Error implements the error interface.
func (e *CacheError) Error() string {
	msg := fmt.Sprintf("cache %s failed", e.Op)
	if e.Path != "" {
		msg += fmt.Sprintf(" for %s", e.Path)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying sentinel error.
func (e *CacheError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCacheOperation}
	}
	return []error{ErrCacheOperation, e.Err}
}
