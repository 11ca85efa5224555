package styles

// Status icons. Plain unicode so that no patched font is needed.
const (
	IconSuccess = "✔"
	IconError   = "✘"
	IconWarning = "!"
	IconInfo    = "i"
	IconPending = "…"
	IconBullet  = "▸"
	IconDot     = "●"
)

// ASCII fallback alternatives for terminals without unicode support.
const (
	AsciiSuccess = "[OK]"
	AsciiError   = "[X]"
	AsciiWarning = "[!]"
	AsciiInfo    = "[i]"
	AsciiBullet  = ">"
)
