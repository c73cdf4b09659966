package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialdb/internal/config"
	"socialdb/internal/logger"
)

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.NewWithOutput(&config.Config{ServiceName: "svc", LogLevel: "info", LogFormat: "json"}, &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.WithField("userId", "u1").Info("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "svc", line["service"])
	assert.Equal(t, "u1", line["userId"])
	assert.Equal(t, "hello", line["msg"])
}

func TestNewWithOutput_BadLevel(t *testing.T) {
	_, err := logger.NewWithOutput(&config.Config{LogLevel: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}
