// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package tools_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/neo4j/graphsemantics/internal/metrics"
	"github.com/neo4j/graphsemantics/internal/tools"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInputSchema(t *testing.T) {
	tests := []struct {
		name    string
		tool    mcp.Tool
		wantErr string
	}{
		{
			name: "declared parameters",
			tool: mcp.NewTool("echo",
				mcp.WithString("text", mcp.Required(), mcp.Description("Text to echo")),
				mcp.WithString("prefix"),
			),
		},
		{
			name: "no parameters",
			tool: mcp.NewTool("ping"),
		},
		{
			name:    "empty name",
			tool:    mcp.NewTool(""),
			wantErr: "tool name cannot be empty",
		},
		{
			name:    "required parameter not declared",
			tool:    mcp.NewToolWithRawSchema("broken", "", json.RawMessage(`{"type":"object","properties":{},"required":["entity"]}`)),
			wantErr: `required parameter "entity" is not declared`,
		},
		{
			name:    "untyped parameter",
			tool:    mcp.NewToolWithRawSchema("loose", "", json.RawMessage(`{"type":"object","properties":{"entity":{}}}`)),
			wantErr: `parameter "entity" has no type`,
		},
		{
			name:    "not an object",
			tool:    mcp.NewToolWithRawSchema("scalar", "", json.RawMessage(`{"type":"string"}`)),
			wantErr: "input schema must be an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tools.CheckInputSchema(tt.tool)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInputSchemaJSON(t *testing.T) {
	tool := mcp.NewTool("echo", mcp.WithString("text", mcp.Required()))

	raw, err := tools.InputSchemaJSON(tool)
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []any{"text"}, schema["required"])
}

func TestStringArgument(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		required bool
		want     string
		wantErr  bool
	}{
		{name: "present", args: map[string]any{"entity": "Heat"}, required: true, want: "Heat"},
		{name: "trimmed", args: map[string]any{"entity": "  Heat  "}, required: true, want: "Heat"},
		{name: "missing optional", args: map[string]any{}, want: ""},
		{name: "null optional", args: map[string]any{"entity": nil}, want: ""},
		{name: "missing required", args: map[string]any{}, required: true, wantErr: true},
		{name: "blank required", args: map[string]any{"entity": " "}, required: true, wantErr: true},
		{name: "wrong type", args: map[string]any{"entity": []any{"Heat"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tools.StringArgument(tt.args, "entity", tt.required)
			if tt.wantErr {
				assert.ErrorIs(t, err, tools.ErrInvalidArguments)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHandler(t *testing.T) {
	echo := tools.Invokable{
		Tool: mcp.NewTool("echo-test", mcp.WithString("text", mcp.Required())),
		Call: func(_ context.Context, args map[string]any) (string, error) {
			text, err := tools.StringArgument(args, "text", true)
			if err != nil {
				return "", err
			}
			if text == "fail" {
				return "", errors.New("echo failed")
			}
			return text, nil
		},
	}
	handler := tools.NewHandler(echo, nil)

	t.Run("success", func(t *testing.T) {
		before := testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("echo-test", "ok"))

		result, err := handler(context.Background(), mcp.CallToolRequest{
			Params: mcp.CallToolParams{Arguments: map[string]any{"text": "hello"}},
		})
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("echo-test", "ok")))
	})

	t.Run("failure becomes tool error", func(t *testing.T) {
		before := testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("echo-test", "error"))

		result, err := handler(context.Background(), mcp.CallToolRequest{
			Params: mcp.CallToolParams{Arguments: map[string]any{"text": "fail"}},
		})
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("echo-test", "error")))
	})

	t.Run("server tool keeps the declaration", func(t *testing.T) {
		st := echo.ServerTool(nil)
		assert.Equal(t, "echo-test", st.Tool.Name)
		assert.NotNil(t, st.Handler)
	})
}
