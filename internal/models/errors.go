package models

import "errors"

// Error kinds surfaced by the pipeline. Callers match with errors.Is; the
// HTTP layer maps them to status codes.
var (
	ErrIdentityResolution       = errors.New("identity resolution failed")
	ErrIdentityNotFound         = errors.New("identity not bound on this platform")
	ErrTokenNotFound            = errors.New("link token not found")
	ErrTokenExpired             = errors.New("link token expired")
	ErrTokenAlreadyUsed         = errors.New("link token already used")
	ErrTokenGenerationExhausted = errors.New("link token generation exhausted")
	ErrExtractionFailed         = errors.New("feature extraction failed")
	ErrCompositionFailed        = errors.New("response composition failed")
	ErrLockTimeout              = errors.New("identity lock acquire timed out")
	ErrAlertDispatchFailed      = errors.New("alert dispatch failed")
)
