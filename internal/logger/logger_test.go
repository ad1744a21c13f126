// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/neo4j/graphsemantics/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynamicLogLevelChange(t *testing.T) {
	t.Run("changing log level from info to debug shows debug logs", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New("info", "text", buf)

		log.Debug("debug message")
		log.Info("info message")

		output := buf.String()
		assert.NotContains(t, output, "debug message")
		assert.Contains(t, output, "info message")

		buf.Reset()
		log.SetLevel("debug")
		log.Debug("debug message after change")

		assert.Contains(t, buf.String(), "debug message after change")
	})

	t.Run("changing log level to error filters info logs", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New("debug", "text", buf)

		log.SetLevel("error")
		log.Info("info after error level")
		log.Error("error after error level")

		output := buf.String()
		assert.NotContains(t, output, "info after error level")
		assert.Contains(t, output, "error after error level")
	})

	t.Run("component loggers follow the parent level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New("info", "text", buf)
		child := log.Component("resolver")

		child.Debug("hidden")
		log.SetLevel("debug")
		child.Debug("visible")

		output := buf.String()
		assert.NotContains(t, output, "hidden")
		assert.Contains(t, output, "visible")
		assert.Contains(t, output, "component=resolver")
	})
}

func TestLevelNames(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New("debug", "json", buf)

	log.Log(context.Background(), logger.LevelNotice, "notice message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "NOTICE", entry["level"])
}

func TestRedaction(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New("debug", "json", buf)

	log.Info("connecting to Neo4j",
		"uri", "neo4j+s://example.databases.neo4j.io",
		"password", "secret",
		"api_key", "sk-123",
		"database", "neo4j")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "[REDACTED]", entry["uri"])
	assert.Equal(t, "[REDACTED]", entry["password"])
	assert.Equal(t, "[REDACTED]", entry["api_key"])
	assert.Equal(t, "neo4j", entry["database"])
	assert.False(t, strings.Contains(buf.String(), "secret"))
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New("verbose", "text", buf)

	log.Debug("debug message")
	log.Info("info message")

	assert.NotContains(t, buf.String(), "debug message")
	assert.Contains(t, buf.String(), "info message")
}
