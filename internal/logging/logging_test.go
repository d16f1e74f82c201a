package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/run-trainer/internal/config"
)

func TestNewWithOutput(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantLevel logrus.Level
	}{
		{name: "debug level", cfg: config.LogConfig{Level: "debug"}, wantLevel: logrus.DebugLevel},
		{name: "unknown level falls back to info", cfg: config.LogConfig{Level: "chatty"}, wantLevel: logrus.InfoLevel},
		{name: "empty level falls back to info", cfg: config.LogConfig{}, wantLevel: logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := NewWithOutput(tt.cfg, &bytes.Buffer{})
			assert.Equal(t, tt.wantLevel, log.GetLevel())
		})
	}
}

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(config.LogConfig{Level: "info", Format: "json"}, &buf)
	log.WithField("plan_id", "p-1").Info("imported")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "p-1", entry["plan_id"])
	assert.Equal(t, "imported", entry["msg"])
}
