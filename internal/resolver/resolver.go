// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

// Package resolver turns a free-text candidate into a movie or person summary.
package resolver

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/neo4j/graphsemantics/internal/resolver Gateway

import (
	"context"
	"fmt"

	"github.com/neo4j/graphsemantics/internal/logger"
	"github.com/neo4j/graphsemantics/internal/metrics"
	"github.com/neo4j/graphsemantics/internal/movies"
)

// Gateway is the pair of lookups the resolver is built on.
type Gateway interface {
	RunMovieQuery(ctx context.Context, candidate string) ([]movies.MovieRow, error)
	RunPersonQuery(ctx context.Context, candidate string) ([]movies.PersonRow, error)
}

// EntityNotFoundError reports that neither a movie nor a person matched.
type EntityNotFoundError struct {
	Candidate string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("No information found for '%s'", e.Candidate)
}

// Resolver resolves candidates movie-first, then person. It holds no state between calls.
type Resolver struct {
	gateway Gateway
	log     *logger.Service
}

// New creates a Resolver.
func New(gateway Gateway, log *logger.Service) (*Resolver, error) {
	if gateway == nil {
		return nil, fmt.Errorf("gateway cannot be nil")
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Resolver{gateway: gateway, log: log.Component("resolver")}, nil
}

// Resolve looks the candidate up as a movie title and, failing that, as a person name.
// A movie match always wins over a person of the same name.
func (r *Resolver) Resolve(ctx context.Context, candidate string) (string, error) {
	movieRows, err := r.gateway.RunMovieQuery(ctx, candidate)
	if err != nil {
		metrics.ResolutionsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return "", err
	}
	if len(movieRows) > 0 && movieRows[0].Title != "" {
		metrics.ResolutionsTotal.WithLabelValues(metrics.OutcomeMovie).Inc()
		r.log.Debug("Resolved candidate", "candidate", candidate, "as", "movie")
		return ComposeMovie(movieRows[0]), nil
	}

	personRows, err := r.gateway.RunPersonQuery(ctx, candidate)
	if err != nil {
		metrics.ResolutionsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return "", err
	}
	if len(personRows) > 0 && personRows[0].Name != "" {
		metrics.ResolutionsTotal.WithLabelValues(metrics.OutcomePerson).Inc()
		r.log.Debug("Resolved candidate", "candidate", candidate, "as", "person")
		return ComposePerson(personRows[0]), nil
	}

	metrics.ResolutionsTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
	r.log.Debug("Candidate not found", "candidate", candidate)
	return "", &EntityNotFoundError{Candidate: candidate}
}
