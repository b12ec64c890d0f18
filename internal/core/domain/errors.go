package domain

import "errors"

var (
	// ErrInvalidCount is returned when a sample size is zero or negative
	ErrInvalidCount = errors.New("sample count must be a positive integer")

	// ErrNoRandomSource is returned when generation is attempted without a random source
	ErrNoRandomSource = errors.New("no random source provided")

	// ErrEntropyUnavailable is returned when a fresh seed cannot be read from the OS
	ErrEntropyUnavailable = errors.New("entropy unavailable")

	ErrAssetNotFound    = errors.New("asset not found")
	ErrUnknownRiskLevel = errors.New("unknown risk level")
	ErrSessionNotFound  = errors.New("session not found")
)
