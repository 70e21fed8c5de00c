package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arturbaldoramos/habitta-cli/internal/errors"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatText, Output: &buf})

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Info("session restored", "user_id", 42)

	out := buf.String()
	assert.Contains(t, out, `"msg":"session restored"`)
	assert.Contains(t, out, `"user_id":42`)
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Format: FormatJSON, Output: &buf})

	err := errors.FromStatus(401, "session expired")
	logger.WithError(err).Warn("forced logout")

	out := buf.String()
	assert.Contains(t, out, `"error_code":"API-001"`)
}

func TestEnabled(t *testing.T) {
	logger := New(Config{Level: LevelWarn, Format: FormatText, Output: &bytes.Buffer{}})

	assert.False(t, logger.Enabled(context.Background(), LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), LevelError))
}
