// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package information

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolName is the name the agent calls the tool by.
const ToolName = "Information"

// EntityParam is the single tool parameter.
const EntityParam = "entity"

func InformationSpec() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Use this tool to get information about movies or people in the movie database. "+
			"Pass a movie title or a person name; movies are matched before people."),
		mcp.WithString(EntityParam,
			mcp.Required(),
			mcp.Description("The name of the movie or person to search for"),
		),
		mcp.WithTitleAnnotation("Movie and Person Information"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}
