package in

import "context"

// ConfigService defines the contract for the stack configuration resource.
type ConfigService interface {
	// EnsureConfig creates the resource when missing and generates its secrets.
	EnsureConfig(ctx context.Context) (created bool, err error)

	// RegenerateSecrets ensures the resource exists and fills credential keys.
	RegenerateSecrets(ctx context.Context, force bool) ([]string, error)

	// Values returns the resource content.
	Values(ctx context.Context) (map[string]string, error)

	// MaskedValues returns the resource content with credentials masked.
	MaskedValues(ctx context.Context) (map[string]string, error)

	// Directories returns the host paths the stack expects to exist.
	Directories(ctx context.Context) ([]string, error)

	// Path returns the resource location.
	Path() string
}
