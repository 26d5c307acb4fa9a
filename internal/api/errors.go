package api

import (
	"errors"
	"fmt"
)

// The error taxonomy controllers react to. Exactly three kinds leave this
// package: AuthError (credential rejected), RequestError (any other non-2xx)
// and NetworkError (no response at all).

// AuthError means the server rejected the bearer credential. The client's
// expiry hook has already fired by the time a caller sees one, so the session
// is gone; callers redirect to login instead of showing an error banner.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("authentication rejected (status %d)", e.Status)
	}
	return fmt.Sprintf("authentication rejected (status %d): %s", e.Status, e.Message)
}

// RequestError is a business failure: any non-2xx response that is not an
// auth rejection. It never affects the session.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed (status %d)", e.Status)
	}
	return fmt.Sprintf("request failed (status %d): %s", e.Status, e.Message)
}

// NetworkError means the request got no response: connection refused, DNS
// failure, context cancellation.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network unavailable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsAuthExpired reports whether err is a credential rejection.
func IsAuthExpired(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsNetworkUnavailable reports whether err is a no-response failure.
func IsNetworkUnavailable(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
