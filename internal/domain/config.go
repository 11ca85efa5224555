package domain

// ConfigKeys names the keys of the stack configuration resource that the
// controller interprets. Every other key is opaque passthrough.
type ConfigKeys struct {
	// Directories hold host paths provisioned by start.
	Directories []string
	// Secrets hold credentials masked on display.
	Secrets []string
}

// IsSecret reports whether key holds a credential.
func (k ConfigKeys) IsSecret(key string) bool {
	for _, s := range k.Secrets {
		if s == key {
			return true
		}
	}
	return false
}

// MaskSecret hides a credential value, keeping a hint of its length.
func MaskSecret(value string) string {
	switch {
	case value == "":
		return ""
	case len(value) <= 4:
		return "****"
	default:
		return value[:2] + "****" + value[len(value)-2:]
	}
}
