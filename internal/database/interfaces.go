// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package database

//go:generate mockgen -destination=mocks/mock_database.go -package=mocks github.com/neo4j/graphsemantics/internal/database Service

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v6/neo4j"
)

// QueryExecutor defines the interface for executing Neo4j queries
type QueryExecutor interface {
	// ExecuteReadQuery executes a read-only Cypher query and returns raw records
	ExecuteReadQuery(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
	// ExecuteWriteQuery executes a write Cypher query and returns raw records
	ExecuteWriteQuery(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
}

// Service is the store handle the rest of the application depends on.
type Service interface {
	QueryExecutor
	// VerifyConnectivity checks the store is reachable with the configured credentials
	VerifyConnectivity(ctx context.Context) error
	// Close releases the underlying driver
	Close(ctx context.Context) error
}
