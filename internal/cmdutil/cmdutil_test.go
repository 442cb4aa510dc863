package cmdutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitOK, ExitCode(fmt.Errorf("write: %w", syscall.EPIPE)))
	assert.Equal(t, ExitInterrupt, ExitCode(fmt.Errorf("reading: %w", context.Canceled)))
	assert.Equal(t, ExitConfig, ExitCode(Configf("bad k %d", 0)))
	assert.Equal(t, ExitConfig, ExitCode(fmt.Errorf("outer: %w", AsConfig(errors.New("x")))))
	assert.Equal(t, ExitRuntime, ExitCode(errors.New("parse failure")))
	assert.NoError(t, AsConfig(nil))
}

func TestConfigErrorUnwraps(t *testing.T) {
	base := errors.New("missing filter")
	err := AsConfig(base)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "missing filter", err.Error())
}

func TestNewLoggerJSONWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, false)
	log.Debug("hidden")
	log.Info("assembled", "contigs", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "assembled", rec["msg"])
	assert.EqualValues(t, 3, rec["contigs"])
}

func TestNewLoggerVerbose(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, true).Debug("shown")
	assert.Contains(t, buf.String(), `"shown"`)
}

func TestWarnf(t *testing.T) {
	var buf bytes.Buffer
	Warnf(&buf, false, "read %s skipped", "r1")
	Warnf(&buf, true, "quiet")
	assert.Equal(t, "WARN: read r1 skipped\n", buf.String())
}
