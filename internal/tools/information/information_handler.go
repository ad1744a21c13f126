// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

// Package information exposes the entity resolver as the Information tool.
package information

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/neo4j/graphsemantics/internal/tools"
)

// Invoke resolves entity. Resolver errors are returned unchanged so callers can tell a miss from a store failure.
func Invoke(ctx context.Context, resolver tools.EntityResolver, entity string) (string, error) {
	if resolver == nil {
		return "", fmt.Errorf("entity resolver is not initialized")
	}
	entity = strings.TrimSpace(entity)
	if entity == "" {
		return "", fmt.Errorf("%w: %s cannot be empty", tools.ErrInvalidArguments, EntityParam)
	}
	return resolver.Resolve(ctx, entity)
}

// Tool returns the Information tool bound to deps.
func Tool(deps *tools.ToolDependencies) tools.Invokable {
	return tools.Invokable{
		Tool: InformationSpec(),
		Call: func(ctx context.Context, args map[string]any) (string, error) {
			entity, err := tools.StringArgument(args, EntityParam, true)
			if err != nil {
				return "", err
			}
			if deps.Log != nil {
				deps.Log.Debug("Information tool called", "entity", entity)
			}
			return Invoke(ctx, deps.Resolver, entity)
		},
	}
}

func InformationHandler(deps *tools.ToolDependencies) server.ToolHandlerFunc {
	return tools.NewHandler(Tool(deps), deps.Log)
}
