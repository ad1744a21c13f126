// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package dataset

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolName is the name of the import tool.
const ToolName = "import-movie-data"

// URLParam is the optional dataset location parameter.
const URLParam = "url"

func ImportMovieDataSpec() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("import-movie-data loads the movie dataset CSV into the Neo4j database with LOAD CSV, "+
			"merging movies, people, genres and their DIRECTED, ACTED_IN and IN_GENRE relationships. "+
			"Re-running the import is safe."),
		mcp.WithString(URLParam,
			mcp.Description("URL of the dataset CSV. Defaults to the configured dataset URL."),
		),
		mcp.WithTitleAnnotation("Import Movie Data"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
