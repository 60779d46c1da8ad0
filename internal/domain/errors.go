package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrFetchFailed is the single user-facing failure kind for playlist loading.
	// Network errors, bad identifiers, quota and decode failures all wrap into it.
	ErrFetchFailed = errors.New("playlist fetch failed")

	// ErrMissingAPIKey indicates no YouTube Data API key was configured
	ErrMissingAPIKey = errors.New("youtube api key is not configured")

	// ErrNoPlayer indicates no external player could be launched
	ErrNoPlayer = errors.New("no media player available")

	// ErrHistoryNotFound indicates the playlist was never opened before
	ErrHistoryNotFound = errors.New("playlist not found in history")
)
