// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package server

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/neo4j/graphsemantics/internal/config"
	"github.com/neo4j/graphsemantics/internal/logger"
)

func TestOnAfterSetLevelHook(t *testing.T) {
	log := logger.New("info", "text", io.Discard)
	s := NewGraphSemanticsServer("test-version", &config.Config{}, nil, nil, log)

	request := &mcp.SetLevelRequest{}
	request.Params.Level = mcp.LoggingLevelDebug
	s.onAfterSetLevelHook(context.Background(), 1, request, &mcp.EmptyResult{})

	if got := log.Level(); got != slog.LevelDebug {
		t.Errorf("Expected level %v, got %v", slog.LevelDebug, got)
	}
}
