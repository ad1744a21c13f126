// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package server

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/neo4j/graphsemantics/internal/tools"
	"github.com/neo4j/graphsemantics/internal/tools/dataset"
	"github.com/neo4j/graphsemantics/internal/tools/information"
)

// RegisterTools checks every tool declaration and adds the enabled tools to the MCP server.
// In read-only mode only tools annotated as read-only (ReadOnlyHint) are registered; a tool without the annotation
// counts as writing.
func (s *GraphSemanticsServer) RegisterTools() error {
	all := getAllTools(s.deps)

	enabled := make([]server.ServerTool, 0, len(all))
	for _, t := range all {
		if err := tools.CheckInputSchema(t.Tool); err != nil {
			return err
		}
		if s.config != nil && s.config.ReadOnly && !isReadOnly(t) {
			s.log.Debug("Skipping write tool in read-only mode", "tool", t.Name())
			continue
		}
		enabled = append(enabled, t.ServerTool(s.log))
	}

	s.MCPServer.AddTools(enabled...)
	return nil
}

func isReadOnly(t tools.Invokable) bool {
	hint := t.Tool.Annotations.ReadOnlyHint
	return hint != nil && *hint
}

// getAllTools returns all available tools
func getAllTools(deps *tools.ToolDependencies) []tools.Invokable {
	return []tools.Invokable{
		information.Tool(deps),
		dataset.Tool(deps),
	}
}

// AgentTools returns the tools offered to the chat model. Only read-only tools are included.
func AgentTools(deps *tools.ToolDependencies) []tools.Invokable {
	var out []tools.Invokable
	for _, t := range getAllTools(deps) {
		if isReadOnly(t) {
			out = append(out, t)
		}
	}
	return out
}
