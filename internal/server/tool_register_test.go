// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package server_test

import (
	"testing"

	"github.com/neo4j/graphsemantics/internal/config"
	"github.com/neo4j/graphsemantics/internal/database/mocks"
	"github.com/neo4j/graphsemantics/internal/logger"
	"github.com/neo4j/graphsemantics/internal/server"
	"github.com/neo4j/graphsemantics/internal/tools"
	"go.uber.org/mock/gomock"
)

func registeredToolNames(s *server.GraphSemanticsServer) map[string]bool {
	names := make(map[string]bool)
	for name := range s.MCPServer.ListTools() {
		names[name] = true
	}
	return names
}

func TestToolRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mocks.NewMockService(ctrl)
	dummyLogger := logger.Discard()

	t.Run("verifies expected tools are registered", func(t *testing.T) {
		cfg := &config.Config{
			URI:      "bolt://test-host:7687",
			Username: "neo4j",
			Password: "password",
			Database: "neo4j",
		}
		s := server.NewGraphSemanticsServer("test-version", cfg, mockDB, &tools.ToolDependencies{}, dummyLogger)

		// update this number when a tool is added or removed.
		expectedTotalToolsCount := 2

		if err := s.RegisterTools(); err != nil {
			t.Fatalf("RegisterTools() failed: %v", err)
		}
		names := registeredToolNames(s)
		if len(names) != expectedTotalToolsCount {
			t.Errorf("Expected %d tools, got %d", expectedTotalToolsCount, len(names))
		}
		for _, want := range []string{"Information", "import-movie-data"} {
			if !names[want] {
				t.Errorf("Expected tool %q to be registered", want)
			}
		}
	})

	t.Run("should register only readonly tools when readonly", func(t *testing.T) {
		cfg := &config.Config{
			URI:      "bolt://test-host:7687",
			Username: "neo4j",
			Password: "password",
			Database: "neo4j",
			ReadOnly: true,
		}
		s := server.NewGraphSemanticsServer("test-version", cfg, mockDB, nil, dummyLogger)

		if err := s.RegisterTools(); err != nil {
			t.Fatalf("RegisterTools() failed: %v", err)
		}
		names := registeredToolNames(s)
		if len(names) != 1 || !names["Information"] {
			t.Errorf("Expected only the Information tool, got %v", names)
		}
	})
}

func TestAgentTools(t *testing.T) {
	agentTools := server.AgentTools(&tools.ToolDependencies{})

	if len(agentTools) != 1 {
		t.Fatalf("Expected 1 agent tool, got %d", len(agentTools))
	}
	if agentTools[0].Name() != "Information" {
		t.Errorf("Expected Information, got %s", agentTools[0].Name())
	}
}
