package domain

import "errors"

// Domain errors represent business-level errors that can occur in the system.
// These errors are used across layers to communicate specific failure conditions.
var (
	// Environment errors
	ErrEngineUnavailable  = errors.New("container engine is not reachable")
	ErrComposeUnavailable = errors.New("no compose implementation found")
	ErrComposeTooOld      = errors.New("compose version is not supported")

	// Service errors
	ErrInvalidCatalog = errors.New("invalid service catalog")

	// Health errors
	ErrNothingRunning = errors.New("no running containers to evaluate")

	// Network errors
	ErrNetworkNotFound = errors.New("network not found")
	ErrNetworkExists   = errors.New("network already exists")
	ErrNetworkInUse    = errors.New("network has attached containers")

	// Volume errors
	ErrVolumeProtected = errors.New("volume is protected")

	// Config errors
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")

	// CLI errors
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage requested")
)
