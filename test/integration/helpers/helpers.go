// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

//go:build integration

package helpers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/graphsemantics/internal/config"
	"github.com/neo4j/graphsemantics/internal/database"
	"github.com/neo4j/graphsemantics/internal/logger"
	"github.com/neo4j/graphsemantics/internal/movies"
	"github.com/neo4j/graphsemantics/internal/resolver"
	"github.com/neo4j/graphsemantics/internal/tools"
	"github.com/neo4j/neo4j-go-driver/v6/neo4j"
)

// TestContext holds common test dependencies. Every title and name a test seeds carries TestID as a suffix so
// tests sharing one database never see each other's data.
type TestContext struct {
	Ctx      context.Context
	T        *testing.T
	TestID   string
	Config   *config.Config
	Service  *database.Neo4jService
	Importer *movies.Importer
	Resolver *resolver.Resolver
	Deps     *tools.ToolDependencies
}

// NewTestContext creates a new test context with automatic cleanup
func NewTestContext(t *testing.T, driver neo4j.Driver, cfg *config.Config, policy config.MatchPolicy) *TestContext {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	log := logger.New("debug", "text", testWriter{t})

	svc, err := database.NewNeo4jService(driver, cfg.Database, log)
	if err != nil {
		cancel()
		t.Fatalf("failed to create Neo4j service: %v", err)
	}
	gateway, err := movies.NewGateway(svc, movies.GatewayOptions{Policy: policy, Timeout: 30 * time.Second}, log)
	if err != nil {
		cancel()
		t.Fatalf("failed to create gateway: %v", err)
	}
	res, err := resolver.New(gateway, log)
	if err != nil {
		cancel()
		t.Fatalf("failed to create resolver: %v", err)
	}
	importer, err := movies.NewImporter(svc, 2, log)
	if err != nil {
		cancel()
		t.Fatalf("failed to create importer: %v", err)
	}

	tc := &TestContext{
		Ctx:      ctx,
		T:        t,
		TestID:   makeTestID(),
		Config:   cfg,
		Service:  svc,
		Importer: importer,
		Resolver: res,
		Deps:     &tools.ToolDependencies{Resolver: res, Importer: importer, Config: cfg, Log: log},
	}

	t.Cleanup(func() {
		tc.Cleanup()
		cancel()
	})

	return tc
}

// Name tags base with the test ID.
func (tc *TestContext) Name(base string) string {
	return base + " " + tc.TestID
}

// SeedMovie imports one movie whose title, people and genres are tagged with the test ID.
func (tc *TestContext) SeedMovie(title string, released time.Time, directors, actors, genres []string) {
	tc.T.Helper()

	m := movies.Movie{
		ID:        tc.TestID + "-" + title,
		Title:     tc.Name(title),
		Released:  released,
		Directors: tc.names(directors),
		Actors:    tc.names(actors),
		Genres:    tc.names(genres),
	}
	if _, err := tc.Importer.ImportMovies(tc.Ctx, []movies.Movie{m}); err != nil {
		tc.T.Fatalf("failed to seed movie %q: %v", title, err)
	}
}

// SeedBirthYear sets the birth year of a seeded person.
func (tc *TestContext) SeedBirthYear(name string, born int) {
	tc.T.Helper()

	if err := tc.Importer.UpsertPeople(tc.Ctx, []movies.Person{{Name: tc.Name(name), Born: &born}}); err != nil {
		tc.T.Fatalf("failed to seed birth year of %q: %v", name, err)
	}
}

func (tc *TestContext) names(bases []string) []string {
	out := make([]string, 0, len(bases))
	for _, b := range bases {
		out = append(out, tc.Name(b))
	}
	return out
}

// Cleanup removes every node tagged with the test ID.
func (tc *TestContext) Cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	query := `
MATCH (n)
WHERE n.title ENDS WITH $suffix OR n.name ENDS WITH $suffix
DETACH DELETE n`
	if _, err := tc.Service.ExecuteWriteQuery(ctx, query, map[string]any{"suffix": tc.TestID}); err != nil {
		log.Printf("Warning: cleanup failed for test=%s: %v", tc.TestID, err)
	}
}

// makeTestID returns a unique test id suitable for tagging resources created by tests.
func makeTestID() string {
	id := fmt.Sprintf("test-%s", uuid.NewString())
	return strings.ReplaceAll(id, "-", "_")
}

// testWriter routes log output to the test log.
type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
