package ai

import "errors"

// ErrMissingAPIKey indicates no provider credential is configured. Checked
// before any network call is attempted.
var ErrMissingAPIKey = errors.New("ai api key is not configured")

// ErrEmptyResponse indicates the completion finished without message content.
var ErrEmptyResponse = errors.New("ai returned an empty response")

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrUpstream wraps any other transport or protocol failure from the provider.
// The underlying message is surfaced to the caller verbatim, no classification.
var ErrUpstream = errors.New("ai upstream failure")
