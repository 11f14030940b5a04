package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init()
	assert.NotNil(t, InfoLogger)
	assert.NotNil(t, ErrorLogger)
	assert.NotNil(t, DebugLogger)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "plain message", format("plain message"))
	assert.Equal(t, "booking created shop_id=3", format("booking created", "shop_id", 3))
	assert.Equal(t, "request done method=GET status=200", format("request done", "method", "GET", "status", 200))
	// dangling key is appended as-is rather than dropped
	assert.Equal(t, "odd pair key", format("odd pair", "key"))
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	InfoLogger = log.New(&buf, "INFO: ", 0)

	Info("test message", "key", "value")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "key=value")
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	ErrorLogger = log.New(&buf, "ERROR: ", 0)

	Errorf("failed after %d attempts", 3)

	output := buf.String()
	assert.Contains(t, output, "failed after 3 attempts")
}

func TestDebug(t *testing.T) {
	var buf bytes.Buffer
	DebugLogger = log.New(&buf, "DEBUG: ", 0)

	Debug("test debug")

	output := buf.String()
	assert.Contains(t, output, "test debug")
}
