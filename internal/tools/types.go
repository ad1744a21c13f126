// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package tools

//go:generate mockgen -destination=mocks/mock_tools.go -package=mocks github.com/neo4j/graphsemantics/internal/tools EntityResolver,DatasetImporter

import (
	"context"
	"errors"

	"github.com/neo4j/graphsemantics/internal/config"
	"github.com/neo4j/graphsemantics/internal/logger"
	"github.com/neo4j/graphsemantics/internal/movies"
)

// ErrInvalidArguments is returned when a tool is called with missing or mistyped arguments.
var ErrInvalidArguments = errors.New("invalid arguments")

// EntityResolver resolves a movie title or person name into a text summary.
type EntityResolver interface {
	Resolve(ctx context.Context, candidate string) (string, error)
}

// DatasetImporter loads the movie dataset into the graph.
type DatasetImporter interface {
	ImportFromURL(ctx context.Context, url string) (movies.ImportSummary, error)
}

// ToolDependencies contains all dependencies needed by tools
type ToolDependencies struct {
	Resolver EntityResolver
	Importer DatasetImporter
	Config   *config.Config
	Log      *logger.Service
}
