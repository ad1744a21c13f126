// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

//go:build e2e

package helpers

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/neo4j/graphsemantics/internal/config"
	"github.com/neo4j/neo4j-go-driver/v6/neo4j"
)

// E2ETestContext runs the built binary against a database and removes what the test created.
type E2ETestContext struct {
	Ctx    context.Context
	T      *testing.T
	TestID string
	Binary string
	Config *config.Config
	driver neo4j.Driver
}

// NewE2ETestContext creates a new E2E test context with automatic cleanup
func NewE2ETestContext(t *testing.T, binary string, driver neo4j.Driver, cfg *config.Config) *E2ETestContext {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	tc := &E2ETestContext{
		Ctx:    ctx,
		T:      t,
		TestID: strings.ReplaceAll("test-"+uuid.NewString(), "-", "_"),
		Binary: binary,
		Config: cfg,
		driver: driver,
	}

	t.Cleanup(func() {
		tc.Cleanup()
		cancel()
	})

	return tc
}

// Name tags base with the test ID.
func (tc *E2ETestContext) Name(base string) string {
	return base + " " + tc.TestID
}

// ConnectionArgs returns the flags pointing the binary at the test database.
func (tc *E2ETestContext) ConnectionArgs() []string {
	return []string{
		"--neo4j-uri", tc.Config.URI,
		"--neo4j-username", tc.Config.Username,
		"--neo4j-password", tc.Config.Password,
		"--neo4j-database", tc.Config.Database,
	}
}

// Run executes the binary with the connection flags and returns stdout.
func (tc *E2ETestContext) Run(args ...string) (string, error) {
	tc.T.Helper()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(tc.Ctx, tc.Binary, append(tc.ConnectionArgs(), args...)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// an empty env keeps a developer's .env and NEO4J_* variables out of the test
	cmd.Env = []string{}
	cmd.Dir = tc.T.TempDir()

	err := cmd.Run()
	if err != nil {
		tc.T.Logf("stderr: %s", stderr.String())
	}
	return stdout.String(), err
}

// WriteMoviesCSV writes the given data rows below the dataset header and returns the file path.
func (tc *E2ETestContext) WriteMoviesCSV(rows ...string) string {
	tc.T.Helper()

	path := filepath.Join(tc.T.TempDir(), "movies.csv")
	content := "movieId,title,released,imdbRating,director,actors,genres\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		tc.T.Fatalf("failed to write CSV: %v", err)
	}
	return path
}

// Cleanup removes every node tagged with the test ID.
func (tc *E2ETestContext) Cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := neo4j.ExecuteQuery(ctx, tc.driver, `
MATCH (n)
WHERE n.title ENDS WITH $suffix OR n.name ENDS WITH $suffix OR n.id STARTS WITH $suffix
DETACH DELETE n`,
		map[string]any{"suffix": tc.TestID}, neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(tc.Config.Database))
	if err != nil {
		log.Printf("Warning: cleanup failed for test=%s: %v", tc.TestID, err)
	}
}

// BuildInitializeRequest returns the initialize request sent by the test client.
func BuildInitializeRequest() mcp.InitializeRequest {
	request := mcp.InitializeRequest{}
	request.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	request.Params.ClientInfo = mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}
	return request
}

// TextOf returns the first text content of a tool result.
func TextOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return text.Text
}

// CSVRow formats one dataset row.
func CSVRow(id, title, released string, directors, actors, genres []string) string {
	return fmt.Sprintf("%s,%s,%s,,%s,%s,%s", id, title, released,
		strings.Join(directors, "|"), strings.Join(actors, "|"), strings.Join(genres, "|"))
}
