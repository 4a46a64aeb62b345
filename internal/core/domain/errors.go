package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indicates the caller may not access the entity.
	ErrForbidden = errors.New("forbidden")

	// ErrUnsupportedSource indicates an unknown import source.
	ErrUnsupportedSource = errors.New("unsupported import source")

	// Authentication Errors.

	// ErrUnauthenticated indicates the request carries no verifiable caller identity.
	ErrUnauthenticated = errors.New("unauthorized")

	// ErrNotConnected indicates the user has no Google tokens on file.
	ErrNotConnected = errors.New("google account not connected")

	// ErrReauthRequired indicates stored tokens can no longer be used or refreshed.
	// The user must repeat the consent flow.
	ErrReauthRequired = errors.New("google authentication expired, please reconnect")

	// Consent Errors.

	// ErrStateMismatch indicates the consent state does not verify or belongs to another user.
	ErrStateMismatch = errors.New("oauth state mismatch")

	// ErrInvalidGrant indicates the authorization code was rejected (expired or reused).
	ErrInvalidGrant = errors.New("invalid or expired authorization code")

	// ErrNoAccessToken indicates the provider answered without an access token.
	ErrNoAccessToken = errors.New("no access token received")

	// ErrTokenSaveFailed indicates tokens were issued but could not be stored.
	ErrTokenSaveFailed = errors.New("failed to save tokens")

	// Upstream Errors.

	// ErrUpstream indicates a Google API call failed for a reason other than authentication.
	ErrUpstream = errors.New("upstream service error")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
