// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

//go:build integration

package integration

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/neo4j/graphsemantics/internal/config"
	"github.com/neo4j/graphsemantics/internal/server"
	"github.com/neo4j/graphsemantics/test/integration/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	return strconv.Itoa(listener.Addr().(*net.TCPAddr).Port)
}

func TestInformationOverHTTP(t *testing.T) {
	cfg := dbs.GetDriverConf()
	cfg.TransportMode = config.TransportModeHTTP
	cfg.HTTPHost = "127.0.0.1"
	cfg.HTTPPort = freePort(t)
	cfg.ReadOnly = true
	require.NoError(t, cfg.Validate())

	tc := helpers.NewTestContext(t, dbs.GetDriver(), cfg, config.MatchExact)
	seedMatrix(tc)

	s := server.NewGraphSemanticsServer("test-version", cfg, tc.Service, tc.Deps, nil)
	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(context.Background()); err != nil {
			errChan <- err
		}
	}()
	select {
	case <-s.HTTPServerReady():
	case err := <-errChan:
		t.Fatalf("Start() failed: %v", err)
	case <-time.After(10 * time.Second):
		t.Fatal("HTTP server did not become ready")
	}
	// HTTPServerReady closes before ListenAndServe binds the port
	time.Sleep(100 * time.Millisecond)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, s.Stop(ctx))
	})

	httpTransport, err := transport.NewStreamableHTTP(
		fmt.Sprintf("http://%s:%s/mcp", cfg.HTTPHost, cfg.HTTPPort),
		transport.WithHTTPTimeout(30*time.Second),
		transport.WithHTTPBasicClient(&http.Client{}),
	)
	require.NoError(t, err)
	mcpClient := client.NewClient(httpTransport)
	_, err = mcpClient.Initialize(tc.Ctx, mcp.InitializeRequest{})
	require.NoError(t, err)

	tools, err := mcpClient.ListTools(tc.Ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)
	require.Len(t, tools.Tools, 1, "read-only mode exposes only Information")
	assert.Equal(t, "Information", tools.Tools[0].Name)

	call := func(entity string) *mcp.CallToolResult {
		request := mcp.CallToolRequest{}
		request.Params.Name = "Information"
		request.Params.Arguments = map[string]any{"entity": entity}
		result, err := mcpClient.CallTool(tc.Ctx, request)
		require.NoError(t, err)
		require.NotEmpty(t, result.Content)
		return result
	}

	result := call(tc.Name("Keanu Reeves"))
	assert.False(t, result.IsError)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Contains(t, text.Text, "Person: "+tc.Name("Keanu Reeves")+" (born 1964)")

	result = call(tc.Name("NonExistent"))
	assert.True(t, result.IsError)
	text, ok = mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Equal(t, fmt.Sprintf("No information found for '%s'", tc.Name("NonExistent")), text.Text)
}
