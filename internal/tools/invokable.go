// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/neo4j/graphsemantics/internal/logger"
	"github.com/neo4j/graphsemantics/internal/metrics"
)

// CallFunc runs a tool with its decoded JSON arguments and returns plain text.
type CallFunc func(ctx context.Context, args map[string]any) (string, error)

// Invokable is a tool declaration together with its implementation. The same value is served over MCP and offered
// to the agent loop.
type Invokable struct {
	Tool mcp.Tool
	Call CallFunc
}

// Name returns the declared tool name.
func (i Invokable) Name() string {
	return i.Tool.Name
}

// Invoke calls the tool and records the outcome.
func (i Invokable) Invoke(ctx context.Context, args map[string]any) (string, error) {
	text, err := i.Call(ctx, args)
	metrics.ToolCallsTotal.WithLabelValues(i.Tool.Name, metrics.Status(err)).Inc()
	return text, err
}

// NewHandler adapts an Invokable to an MCP tool handler. Failures become tool-execution errors in the result, not
// protocol errors.
func NewHandler(inv Invokable, log *logger.Service) server.ToolHandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := inv.Invoke(ctx, request.GetArguments())
		if err != nil {
			log.Warn("Tool call failed", "tool", inv.Name(), "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

// ServerTool returns the MCP registration for the tool.
func (i Invokable) ServerTool(log *logger.Service) server.ServerTool {
	return server.ServerTool{Tool: i.Tool, Handler: NewHandler(i, log)}
}

type declaredSchema struct {
	Type       string `json:"type"`
	Properties map[string]struct {
		Type string `json:"type"`
	} `json:"properties"`
	Required []string `json:"required"`
}

// InputSchemaJSON returns the tool's input schema as it is advertised to clients.
func InputSchemaJSON(tool mcp.Tool) (json.RawMessage, error) {
	raw, err := json.Marshal(tool)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool %s: %w", tool.Name, err)
	}
	var decl struct {
		InputSchema json.RawMessage `json:"inputSchema"`
	}
	if err := json.Unmarshal(raw, &decl); err != nil {
		return nil, fmt.Errorf("failed to read input schema of tool %s: %w", tool.Name, err)
	}
	return decl.InputSchema, nil
}

// CheckInputSchema verifies a tool declaration at registration time: an object schema whose properties are typed
// and whose required parameters are all declared.
func CheckInputSchema(tool mcp.Tool) error {
	if tool.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	raw, err := InputSchemaJSON(tool)
	if err != nil {
		return err
	}
	var schema declaredSchema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return fmt.Errorf("tool %s: invalid input schema: %w", tool.Name, err)
	}
	if schema.Type != "object" {
		return fmt.Errorf("tool %s: input schema must be an object, got %q", tool.Name, schema.Type)
	}
	for name, prop := range schema.Properties {
		if prop.Type == "" {
			return fmt.Errorf("tool %s: parameter %q has no type", tool.Name, name)
		}
	}
	for _, name := range schema.Required {
		if _, ok := schema.Properties[name]; !ok {
			return fmt.Errorf("tool %s: required parameter %q is not declared", tool.Name, name)
		}
	}
	return nil
}

// StringArgument reads a string argument and trims it. A missing or blank required argument and a non-string value
// are reported as ErrInvalidArguments.
func StringArgument(args map[string]any, name string, required bool) (string, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		if required {
			return "", fmt.Errorf("%w: %s is required", ErrInvalidArguments, name)
		}
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidArguments, name, raw)
	}
	s = strings.TrimSpace(s)
	if s == "" && required {
		return "", fmt.Errorf("%w: %s cannot be empty", ErrInvalidArguments, name)
	}
	return s, nil
}
