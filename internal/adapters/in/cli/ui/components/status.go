package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/mediastack/internal/adapters/in/cli/ui/styles"
)

// Status represents a status type for rendering.
type Status int

const (
	StatusSuccess Status = iota
	StatusError
	StatusWarning
	StatusInfo
	StatusPending
)

type statusConfig struct {
	Icon  string
	Style lipgloss.Style
}

var statusConfigs = map[Status]statusConfig{
	StatusSuccess: {Icon: styles.IconSuccess, Style: styles.Theme.Success},
	StatusError:   {Icon: styles.IconError, Style: styles.Theme.Error},
	StatusWarning: {Icon: styles.IconWarning, Style: styles.Theme.Warning},
	StatusInfo:    {Icon: styles.IconInfo, Style: styles.Theme.Info},
	StatusPending: {Icon: styles.IconPending, Style: styles.Theme.Muted},
}

// RenderStatus renders a status with icon and optional label.
func RenderStatus(status Status, label string) string {
	config := statusConfigs[status]
	if label == "" {
		return config.Style.Render(config.Icon)
	}
	return config.Style.Render(config.Icon + " " + label)
}

// RenderStatusBadge renders a status as a badge with background.
func RenderStatusBadge(status Status, label string) string {
	var badgeStyle lipgloss.Style
	switch status {
	case StatusSuccess:
		badgeStyle = styles.Theme.BadgeSuccess
	case StatusError:
		badgeStyle = styles.Theme.BadgeError
	case StatusWarning:
		badgeStyle = styles.Theme.BadgeWarning
	case StatusPending:
		badgeStyle = styles.Theme.BadgePending
	default:
		badgeStyle = styles.Theme.BadgeInfo
	}
	return badgeStyle.Render(label)
}

// ParseStatus maps container states and health classes to a Status.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "healthy", "running", "ok":
		return StatusSuccess
	case "unhealthy", "dead", "exited", "error", "soft-failure":
		return StatusError
	case "restarting", "paused", "unknown":
		return StatusWarning
	case "starting", "pending", "created":
		return StatusPending
	default:
		return StatusInfo
	}
}

// StateIndicator renders a container state or health value with its icon.
func StateIndicator(state string) string {
	if state == "" {
		return ""
	}
	return RenderStatus(ParseStatus(state), state)
}
