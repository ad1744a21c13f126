// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package database

import (
	"context"
	"fmt"

	"github.com/neo4j/graphsemantics/internal/config"
	"github.com/neo4j/graphsemantics/internal/logger"
	"github.com/neo4j/neo4j-go-driver/v6/neo4j"
)

// Neo4jService is the concrete implementation of Service
type Neo4jService struct {
	driver   neo4j.Driver
	database string
	log      *logger.Service
}

// NewDriver creates a driver from the connection settings in cfg.
// Creating a driver does not open a connection; use VerifyConnectivity for that.
func NewDriver(cfg *config.Config) (neo4j.Driver, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required but was nil")
	}
	driver, err := neo4j.NewDriver(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}
	return driver, nil
}

// NewNeo4jService creates a new Neo4jService instance
func NewNeo4jService(driver neo4j.Driver, database string, log *logger.Service) (*Neo4jService, error) {
	if driver == nil {
		return nil, fmt.Errorf("driver cannot be nil")
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Neo4jService{
		driver:   driver,
		database: database,
		log:      log.Component("database"),
	}, nil
}

// VerifyConnectivity checks the driver can establish a valid connection with a Neo4j instance
func (s *Neo4jService) VerifyConnectivity(ctx context.Context) error {
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		s.log.Error("Failed to verify database connectivity", "error", err)
		return fmt.Errorf("failed to connect to Neo4j: %w", err)
	}
	return nil
}

// ExecuteReadQuery executes a read-only Cypher query and returns raw records
func (s *Neo4jService) ExecuteReadQuery(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	res, err := neo4j.ExecuteQuery(ctx, s.driver, cypher, params, neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database), neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		wrappedErr := fmt.Errorf("failed to execute read query: %w", err)
		s.log.Error("Error in ExecuteReadQuery", "error", wrappedErr)
		return nil, wrappedErr
	}
	return res.Records, nil
}

// ExecuteWriteQuery executes a write Cypher query and returns raw records
func (s *Neo4jService) ExecuteWriteQuery(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	res, err := neo4j.ExecuteQuery(ctx, s.driver, cypher, params, neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database), neo4j.ExecuteQueryWithWritersRouting())
	if err != nil {
		wrappedErr := fmt.Errorf("failed to execute write query: %w", err)
		s.log.Error("Error in ExecuteWriteQuery", "error", wrappedErr)
		return nil, wrappedErr
	}
	return res.Records, nil
}

// Close closes the driver and all its pooled connections
func (s *Neo4jService) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}
