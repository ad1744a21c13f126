// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// go run ./client/... bin/graphsemantics [entity]
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	if len(os.Args) < 2 {
		log.Fatal("Usage: go run ./client <path_to_graphsemantics> [entity]")
	}
	program := os.Args[1]
	entity := strings.Join(os.Args[2:], " ")

	log.Printf("Starting %s over stdio", program)
	c, err := client.NewStdioMCPClient(
		program,
		os.Environ(), // passthrough environments
		"serve", "--transport", "stdio",
	)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer c.Close()
	captureServerLog(c)

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    "graphsemantics-smoke-client",
		Version: "1.0.0",
	}

	serverInfo, err := c.Initialize(ctx, initRequest)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	fmt.Printf("Initialized with server: %s %s\n\n", serverInfo.ServerInfo.Name, serverInfo.ServerInfo.Version)

	if err := c.Ping(ctx); err != nil {
		log.Fatalf("Health check failed: %v", err)
	}

	toolsResult, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		log.Fatalf("Failed to list tools: %v", err)
	}
	fmt.Printf("Server has %d tools available\n", len(toolsResult.Tools))
	for i, tool := range toolsResult.Tools {
		fmt.Printf("  %d. %s - %s\n", i+1, tool.Name, tool.Description)
	}

	if entity == "" {
		return
	}

	request := mcp.CallToolRequest{}
	request.Params.Name = "Information"
	request.Params.Arguments = map[string]any{"entity": entity}
	result, err := c.CallTool(ctx, request)
	if err != nil {
		log.Fatalf("Information call failed: %v", err)
	}

	fmt.Println()
	if result.IsError {
		fmt.Print("Tool error: ")
	}
	for _, content := range result.Content {
		if text, ok := mcp.AsTextContent(content); ok {
			fmt.Println(text.Text)
		}
	}
}

func captureServerLog(c *client.Client) {
	stderr, ok := client.GetStderr(c)
	if !ok {
		return
	}
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := stderr.Read(buf)
			if n > 0 {
				fmt.Fprintf(os.Stderr, "[Server] %s", buf[:n])
			}
			if err != nil {
				if err != io.EOF {
					log.Printf("Error reading stderr: %v", err)
				}
				return
			}
		}
	}()
}
