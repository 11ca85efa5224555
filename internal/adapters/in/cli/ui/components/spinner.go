// Package components provides reusable TUI components for the mediastack CLI.
package components

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/mediastack/internal/adapters/in/cli/ui/styles"
)

// SpinnerModel wraps the bubbles spinner with the CLI styling.
type SpinnerModel struct {
	spinner spinner.Model
	message string
	style   lipgloss.Style
}

// SpinnerOption configures a SpinnerModel.
type SpinnerOption func(*SpinnerModel)

// NewSpinner creates a new spinner.
func NewSpinner(opts ...SpinnerOption) SpinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.ColorPrimary)

	m := SpinnerModel{
		spinner: s,
		message: "Loading...",
		style:   styles.Theme.Body,
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// WithMessage sets the spinner message.
func WithMessage(msg string) SpinnerOption {
	return func(m *SpinnerModel) {
		m.message = msg
	}
}

// Init implements tea.Model.
func (m SpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m SpinnerModel) View() string {
	return m.spinner.View() + " " + m.style.Render(m.message)
}

// SetMessage updates the spinner message.
func (m *SpinnerModel) SetMessage(msg string) {
	m.message = msg
}

type countdownDoneMsg struct{}

// countdownModel shows a spinner with the remaining time until a deadline.
type countdownModel struct {
	spinner  SpinnerModel
	message  string
	deadline time.Time
	done     bool
}

func (m countdownModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Init(),
		tea.Tick(time.Until(m.deadline), func(time.Time) tea.Msg { return countdownDoneMsg{} }),
	)
}

func (m countdownModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case countdownDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		remaining := time.Until(m.deadline).Round(time.Second)
		if remaining < 0 {
			remaining = 0
		}
		m.spinner.SetMessage(fmt.Sprintf("%s (%s)", m.message, remaining))
		updated, cmd := m.spinner.Update(msg)
		m.spinner = updated.(SpinnerModel)
		return m, cmd
	}
	return m, nil
}

func (m countdownModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + "\n"
}

// Countdown renders a spinner on w for d, or until ctx is done.
func Countdown(ctx context.Context, w io.Writer, message string, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	model := countdownModel{
		spinner:  NewSpinner(WithMessage(message)),
		message:  message,
		deadline: time.Now().Add(d),
	}

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("spinner failed: %w", err)
	}
	return nil
}
