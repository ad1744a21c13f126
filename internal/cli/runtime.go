// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package cli

import (
	"context"
	"fmt"

	"github.com/neo4j/graphsemantics/internal/agent"
	"github.com/neo4j/graphsemantics/internal/config"
	"github.com/neo4j/graphsemantics/internal/database"
	"github.com/neo4j/graphsemantics/internal/logger"
	"github.com/neo4j/graphsemantics/internal/movies"
	"github.com/neo4j/graphsemantics/internal/resolver"
	"github.com/neo4j/graphsemantics/internal/tools"
)

// runtime is the wired object graph behind every command.
type runtime struct {
	cfg      *config.Config
	log      *logger.Service
	db       database.Service
	importer *movies.Importer
	deps     *tools.ToolDependencies
}

// openStore connects to Neo4j. It is replaced in tests.
func openStore(cfg *config.Config, log *logger.Service) (database.Service, error) {
	driver, err := database.NewDriver(cfg)
	if err != nil {
		return nil, err
	}
	return database.NewNeo4jService(driver, cfg.Database, log)
}

// newChatClient creates the OpenAI client. It is replaced in tests.
func newChatClient(cfg *config.Config) agent.ChatCompleter {
	return agent.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
}

// newRuntime opens the store, checks it is reachable and wires the gateway, resolver and importer on top.
func (a *App) newRuntime(ctx context.Context, cfg *config.Config, log *logger.Service) (*runtime, error) {
	db, err := a.OpenStore(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := db.VerifyConnectivity(ctx); err != nil {
		_ = db.Close(ctx)
		return nil, err
	}

	gateway, err := movies.NewGateway(db, movies.GatewayOptions{Policy: cfg.MatchPolicy, Timeout: cfg.QueryTimeout}, log)
	if err != nil {
		_ = db.Close(ctx)
		return nil, err
	}
	res, err := resolver.New(gateway, log)
	if err != nil {
		_ = db.Close(ctx)
		return nil, err
	}
	importer, err := movies.NewImporter(db, movies.DefaultBatchSize, log)
	if err != nil {
		_ = db.Close(ctx)
		return nil, err
	}

	return &runtime{
		cfg:      cfg,
		log:      log,
		db:       db,
		importer: importer,
		deps: &tools.ToolDependencies{
			Resolver: res,
			Importer: importer,
			Config:   cfg,
			Log:      log,
		},
	}, nil
}

func (r *runtime) close(ctx context.Context) {
	if err := r.db.Close(ctx); err != nil {
		r.log.Warn("Failed to close database service", "error", err)
	}
}

func (r *runtime) newAgent(a *App) (*agent.SemanticAgent, error) {
	if err := r.cfg.ValidateAgent(); err != nil {
		return nil, err
	}
	sa, err := agent.New(
		a.NewChatClient(r.cfg),
		agent.Options{Model: r.cfg.Model, Temperature: r.cfg.Temperature, MaxSteps: r.cfg.AgentMaxSteps},
		r.log,
		agentTools(r.deps)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	return sa, nil
}
