// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

// Package dataset exposes the movie dataset import as a tool.
package dataset

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/neo4j/graphsemantics/internal/config"
	"github.com/neo4j/graphsemantics/internal/tools"
)

// Tool returns the import tool bound to deps.
func Tool(deps *tools.ToolDependencies) tools.Invokable {
	return tools.Invokable{
		Tool: ImportMovieDataSpec(),
		Call: func(ctx context.Context, args map[string]any) (string, error) {
			return handleImport(ctx, args, deps)
		},
	}
}

func ImportMovieDataHandler(deps *tools.ToolDependencies) server.ToolHandlerFunc {
	return tools.NewHandler(Tool(deps), deps.Log)
}

func handleImport(ctx context.Context, args map[string]any, deps *tools.ToolDependencies) (string, error) {
	if deps.Importer == nil {
		return "", fmt.Errorf("dataset importer is not initialized")
	}

	url, err := tools.StringArgument(args, URLParam, false)
	if err != nil {
		return "", err
	}
	if url == "" {
		url = config.DefaultDatasetURL
		if deps.Config != nil && deps.Config.DatasetURL != "" {
			url = deps.Config.DatasetURL
		}
	}

	summary, err := deps.Importer.ImportFromURL(ctx, url)
	if err != nil {
		return "", err
	}

	return tools.CreateLLMResponse(tools.SummaryDatasetImported, summary, tools.NextStepsAfterImport...).ToJSON()
}
