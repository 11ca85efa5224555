package domain

import (
	"strings"
	"time"
)

// ExecutionContext holds the settings every component is built with.
// It is created once per invocation and passed by value.
type ExecutionContext struct {
	ProjectName string
	ProjectDir  string
	ComposeFile string
	EnvFile     string
	// ComposeCommand is the compose invocation form, e.g. ["docker", "compose"].
	ComposeCommand []string
	StartSettle    time.Duration
	RestartSettle  time.Duration
}

// ComposeCommandString returns the compose invocation form as typed in a shell.
func (c ExecutionContext) ComposeCommandString() string {
	return strings.Join(c.ComposeCommand, " ")
}

// Compose label keys set by every compose implementation.
const (
	LabelComposeProject = "com.docker.compose.project"
	LabelComposeService = "com.docker.compose.service"
	LabelComposeOneOff  = "com.docker.compose.oneoff"
	LabelManaged        = "mediastack.managed"
)
