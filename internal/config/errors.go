package config

import (
	"errors"
)

// Sentinel error kinds for this package.
var (
	ErrInvalidValue = errors.New("invalid config value")
	ErrPrompt       = errors.New("failed to read answer")
)
