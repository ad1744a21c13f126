// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

//go:build integration

package integration

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/neo4j/graphsemantics/internal/config"
	"github.com/neo4j/graphsemantics/internal/resolver"
	"github.com/neo4j/graphsemantics/test/integration/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMatrix(tc *helpers.TestContext) {
	tc.SeedMovie("The Matrix", time.Date(1999, time.March, 31, 0, 0, 0, 0, time.UTC),
		[]string{"Lana Wachowski", "Lilly Wachowski"},
		[]string{"Keanu Reeves", "Carrie-Anne Moss"},
		[]string{"Action"},
	)
	tc.SeedMovie("John Wick", time.Date(2014, time.October, 24, 0, 0, 0, 0, time.UTC),
		[]string{"Chad Stahelski"},
		[]string{"Keanu Reeves"},
		[]string{"Action"},
	)
	tc.SeedBirthYear("Keanu Reeves", 1964)
}

func TestResolveMovie(t *testing.T) {
	tc := helpers.NewTestContext(t, dbs.GetDriver(), dbs.GetDriverConf(), config.MatchExact)
	seedMatrix(tc)

	got, err := tc.Resolver.Resolve(tc.Ctx, tc.Name("The Matrix"))
	require.NoError(t, err)

	want := fmt.Sprintf("Movie: %s (1999)\nPeople involved:\n- %s (ACTED_IN)\n- %s (ACTED_IN)\n- %s (DIRECTED)\n- %s (DIRECTED)",
		tc.Name("The Matrix"),
		tc.Name("Carrie-Anne Moss"),
		tc.Name("Keanu Reeves"),
		tc.Name("Lana Wachowski"),
		tc.Name("Lilly Wachowski"),
	)
	assert.Equal(t, want, got)
}

func TestResolvePerson(t *testing.T) {
	tc := helpers.NewTestContext(t, dbs.GetDriver(), dbs.GetDriverConf(), config.MatchExact)
	seedMatrix(tc)

	got, err := tc.Resolver.Resolve(tc.Ctx, tc.Name("Keanu Reeves"))
	require.NoError(t, err)

	want := fmt.Sprintf("Person: %s (born 1964)\nFilmography:\n- %s (ACTED_IN)\n- %s (ACTED_IN)",
		tc.Name("Keanu Reeves"),
		tc.Name("John Wick"),
		tc.Name("The Matrix"),
	)
	assert.Equal(t, want, got)

	// no birth year seeded
	got, err = tc.Resolver.Resolve(tc.Ctx, tc.Name("Chad Stahelski"))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("Person: %s\nFilmography:\n- %s (DIRECTED)", tc.Name("Chad Stahelski"), tc.Name("John Wick")), got)
}

func TestResolveNotFound(t *testing.T) {
	tc := helpers.NewTestContext(t, dbs.GetDriver(), dbs.GetDriverConf(), config.MatchExact)
	seedMatrix(tc)

	candidate := tc.Name("NonExistent")
	_, err := tc.Resolver.Resolve(tc.Ctx, candidate)

	var notFound *resolver.EntityNotFoundError
	require.True(t, errors.As(err, &notFound), "expected EntityNotFoundError, got %v", err)
	assert.Equal(t, fmt.Sprintf("No information found for '%s'", candidate), err.Error())

	// exact matching does not accept a fragment
	_, err = tc.Resolver.Resolve(tc.Ctx, "Matrix "+tc.TestID)
	assert.True(t, errors.As(err, &notFound))
}

func TestResolveContainsPolicy(t *testing.T) {
	tc := helpers.NewTestContext(t, dbs.GetDriver(), dbs.GetDriverConf(), config.MatchContains)
	seedMatrix(tc)

	got, err := tc.Resolver.Resolve(tc.Ctx, "Matrix "+tc.TestID)
	require.NoError(t, err)
	assert.Contains(t, got, "Movie: "+tc.Name("The Matrix")+" (1999)")
}

func TestResolveIsRepeatable(t *testing.T) {
	tc := helpers.NewTestContext(t, dbs.GetDriver(), dbs.GetDriverConf(), config.MatchExact)
	seedMatrix(tc)

	first, err := tc.Resolver.Resolve(tc.Ctx, tc.Name("The Matrix"))
	require.NoError(t, err)
	second, err := tc.Resolver.Resolve(tc.Ctx, tc.Name("The Matrix"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
