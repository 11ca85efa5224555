package components

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdown_NonPositiveDurationReturnsImmediately(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, Countdown(context.Background(), &out, "Waiting", 0))
	assert.Empty(t, out.String())
}

func TestCountdownModel_TickShowsRemainingTime(t *testing.T) {
	model := countdownModel{
		spinner:  NewSpinner(WithMessage("Waiting")),
		message:  "Waiting",
		deadline: time.Now().Add(-time.Second),
	}

	updated, _ := model.Update(spinner.TickMsg{})
	view := stripANSI(updated.View())

	assert.Contains(t, view, "Waiting (0s)")
}

func TestCountdownModel_DoneClearsView(t *testing.T) {
	model := countdownModel{
		spinner:  NewSpinner(WithMessage("Waiting")),
		message:  "Waiting",
		deadline: time.Now(),
	}

	updated, cmd := model.Update(countdownDoneMsg{})

	assert.NotNil(t, cmd)
	assert.Empty(t, updated.View())
}
