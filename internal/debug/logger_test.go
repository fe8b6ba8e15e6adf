package debug_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"routeview/internal/debug"
)

func TestSetup(t *testing.T) {
	debug.Log("dropped %d", 1)

	var buf bytes.Buffer
	debug.Setup(&buf, slog.LevelInfo)
	assert.True(t, debug.Enabled())

	debug.Log("below level")
	debug.Logger().Info("fit", "zoom", 13)

	assert.NotContains(t, buf.String(), "below level")
	assert.Contains(t, buf.String(), "msg=fit zoom=13")
}
