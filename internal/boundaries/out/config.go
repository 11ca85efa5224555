package out

import "context"

// ConfigStore defines the contract for the stack configuration resource (.env).
// Values are opaque to the controller except for the directory keys.
type ConfigStore interface {
	// Ensure creates the resource with defaults when absent.
	// It reports whether the resource was created.
	Ensure(ctx context.Context) (bool, error)

	// Load returns every key/value pair, with variable references expanded.
	Load(ctx context.Context) (map[string]string, error)

	// GenerateSecrets fills credential keys and returns the keys it wrote.
	// Keys already holding a real value are kept unless force is set.
	GenerateSecrets(ctx context.Context, force bool) ([]string, error)

	// Path returns the location of the resource.
	Path() string
}

// DirectoryMaker defines the contract for provisioning host directories.
type DirectoryMaker interface {
	// EnsureDir creates path and its parents when missing.
	EnsureDir(ctx context.Context, path string) error
}
