package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLoggerLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewLogger(&out, &errOut, "session", false)

	logger.Debugf("hidden %d", 1)
	logger.Infof("mode %s", "line")
	logger.Warnf("careful")
	logger.Errorf("broken: %v", "yes")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[session] INFO: mode line")
	assert.Contains(t, errOut.String(), "[session] WARN: careful")
	assert.Contains(t, errOut.String(), "[session] ERROR: broken: yes")

	logger.SetDebug(true)
	assert.True(t, logger.DebugEnabled())
	logger.Debugf("visible %d", 2)
	assert.Contains(t, out.String(), "[session] DEBUG: visible 2")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	assert.False(t, OrNop(nil).DebugEnabled())

	logger := NewLogger(&bytes.Buffer{}, &bytes.Buffer{}, "", true)
	assert.Same(t, logger, OrNop(logger))
}
