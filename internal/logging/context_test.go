package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestCtxWithFields_CarriesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	ctx := WithLogger(context.Background(), logger)
	ctx = CtxWithFields(ctx, FieldLayer, "usecase", FieldUseCase, "Start")

	FromCtx(ctx).Info("plan resolved")

	out := buf.String()
	assert.Contains(t, out, "plan resolved")
	assert.Contains(t, out, "layer=usecase")
	assert.Contains(t, out, "usecase=Start")
}

func TestWrapErr(t *testing.T) {
	sentinel := errors.New("boom")

	err := WrapErr(Discard(), sentinel, "failed to create network")

	assert.ErrorIs(t, err, sentinel)
	assert.EqualError(t, err, "failed to create network: boom")
}
