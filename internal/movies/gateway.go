// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package movies

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/graphsemantics/internal/config"
	"github.com/neo4j/graphsemantics/internal/database"
	"github.com/neo4j/graphsemantics/internal/logger"
	"github.com/neo4j/graphsemantics/internal/metrics"
	"github.com/neo4j/neo4j-go-driver/v6/neo4j"
)

// Lookup operation names, used in errors and metric labels.
const (
	OpMovieLookup  = "movie lookup"
	OpPersonLookup = "person lookup"
	OpImport       = "import"
)

// DataAccessError wraps a store failure with the operation that hit it. It is never retried.
type DataAccessError struct {
	Op        string
	Candidate string
	Err       error
}

func (e *DataAccessError) Error() string {
	if e.Candidate == "" {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed for '%s': %v", e.Op, e.Candidate, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// GatewayOptions configures a Gateway.
type GatewayOptions struct {
	// Policy selects exact or substring matching. Empty means exact.
	Policy config.MatchPolicy
	// Timeout bounds each lookup query. Zero means the caller's context alone applies.
	Timeout time.Duration
}

// Gateway issues the movie and person lookup queries against the graph store.
type Gateway struct {
	db          database.QueryExecutor
	movieQuery  string
	personQuery string
	timeout     time.Duration
	log         *logger.Service
}

// NewGateway creates a Gateway over a ready-made store handle.
func NewGateway(db database.QueryExecutor, opts GatewayOptions, log *logger.Service) (*Gateway, error) {
	if db == nil {
		return nil, fmt.Errorf("database service cannot be nil")
	}
	switch opts.Policy {
	case "", config.MatchExact, config.MatchContains:
	default:
		return nil, fmt.Errorf("invalid match policy '%s', must be one of %v", opts.Policy, config.ValidMatchPolicies)
	}
	if log == nil {
		log = logger.Discard()
	}
	movieQuery, personQuery := lookupQueries(opts.Policy)
	return &Gateway{
		db:          db,
		movieQuery:  movieQuery,
		personQuery: personQuery,
		timeout:     opts.Timeout,
		log:         log.Component("gateway"),
	}, nil
}

// RunMovieQuery looks up a movie by title. It returns zero or one row.
func (g *Gateway) RunMovieQuery(ctx context.Context, candidate string) ([]MovieRow, error) {
	records, err := g.run(ctx, OpMovieLookup, g.movieQuery, candidate)
	if err != nil {
		return nil, err
	}
	rows := make([]MovieRow, 0, len(records))
	for _, record := range records {
		row, err := movieRowFromRecord(record)
		if err != nil {
			return nil, &DataAccessError{Op: OpMovieLookup, Candidate: candidate, Err: err}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// RunPersonQuery looks up a person by name. It returns zero or one row.
func (g *Gateway) RunPersonQuery(ctx context.Context, candidate string) ([]PersonRow, error) {
	records, err := g.run(ctx, OpPersonLookup, g.personQuery, candidate)
	if err != nil {
		return nil, err
	}
	rows := make([]PersonRow, 0, len(records))
	for _, record := range records {
		row, err := personRowFromRecord(record)
		if err != nil {
			return nil, &DataAccessError{Op: OpPersonLookup, Candidate: candidate, Err: err}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (g *Gateway) run(ctx context.Context, op, cypher, candidate string) ([]*neo4j.Record, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	records, err := g.db.ExecuteReadQuery(ctx, cypher, map[string]any{"candidate": candidate})
	metrics.GatewayQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GatewayQueryErrors.WithLabelValues(op).Inc()
		g.log.Error("Lookup query failed", "op", op, "candidate", candidate, "error", err)
		return nil, &DataAccessError{Op: op, Candidate: candidate, Err: err}
	}

	g.log.Debug("Lookup query completed", "op", op, "candidate", candidate, "rows", len(records))
	return records, nil
}
