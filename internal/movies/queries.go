// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package movies

import "github.com/neo4j/graphsemantics/internal/config"

// Lookup queries take a single $candidate parameter and return at most one row.
// With the exact policy duplicate titles are broken by release date; with the contains policy the shortest
// matching title/name wins.
const (
	movieExactQuery = `
MATCH (m:Movie {title: $candidate})
OPTIONAL MATCH (p:Person)-[r]->(m)
WITH m, collect(DISTINCT {name: p.name, role: type(r)}) AS people
RETURN m.title AS title, m.released AS released, people
ORDER BY released
LIMIT 1`

	movieContainsQuery = `
MATCH (m:Movie)
WHERE m.title CONTAINS $candidate
OPTIONAL MATCH (p:Person)-[r]->(m)
WITH m, collect(DISTINCT {name: p.name, role: type(r)}) AS people
RETURN m.title AS title, m.released AS released, people
ORDER BY size(title), title, released
LIMIT 1`

	personExactQuery = `
MATCH (p:Person {name: $candidate})
OPTIONAL MATCH (p)-[r]->(m:Movie)
WITH p, collect(DISTINCT {title: m.title, role: type(r)}) AS movies
RETURN p.name AS name, p.born AS born, movies
LIMIT 1`

	personContainsQuery = `
MATCH (p:Person)
WHERE p.name CONTAINS $candidate
OPTIONAL MATCH (p)-[r]->(m:Movie)
WITH p, collect(DISTINCT {title: m.title, role: type(r)}) AS movies
RETURN p.name AS name, p.born AS born, movies
ORDER BY size(name), name
LIMIT 1`
)

// Import queries.
const (
	importFromURLQuery = `
LOAD CSV WITH HEADERS FROM $url AS row
MERGE (m:Movie {id: row.movieId})
SET m.released = date(row.released),
    m.title = row.title,
    m.imdbRating = toFloat(row.imdbRating)
FOREACH (director IN split(row.director, '|') |
    MERGE (p:Person {name: trim(director)})
    MERGE (p)-[:DIRECTED]->(m))
FOREACH (actor IN split(row.actors, '|') |
    MERGE (p:Person {name: trim(actor)})
    MERGE (p)-[:ACTED_IN]->(m))
FOREACH (genre IN split(row.genres, '|') |
    MERGE (g:Genre {name: trim(genre)})
    MERGE (m)-[:IN_GENRE]->(g))`

	importMoviesQuery = `
UNWIND $movies AS row
MERGE (m:Movie {id: row.id})
SET m.released = date(row.released),
    m.title = row.title,
    m.imdbRating = row.imdbRating
FOREACH (director IN row.directors |
    MERGE (p:Person {name: director})
    MERGE (p)-[:DIRECTED]->(m))
FOREACH (actor IN row.actors |
    MERGE (p:Person {name: actor})
    MERGE (p)-[:ACTED_IN]->(m))
FOREACH (genre IN row.genres |
    MERGE (g:Genre {name: genre})
    MERGE (m)-[:IN_GENRE]->(g))`

	upsertPeopleQuery = `
UNWIND $people AS row
MERGE (p:Person {name: row.name})
SET p.born = row.born`

	summaryQuery = `
OPTIONAL MATCH (m:Movie)
WITH count(m) AS movies
OPTIONAL MATCH (p:Person)
WITH movies, count(p) AS people
OPTIONAL MATCH (g:Genre)
RETURN movies, people, count(g) AS genres`
)

// constraintQueries back the MERGE keys used by the import.
var constraintQueries = []string{
	"CREATE CONSTRAINT movie_id IF NOT EXISTS FOR (m:Movie) REQUIRE m.id IS UNIQUE",
	"CREATE CONSTRAINT person_name IF NOT EXISTS FOR (p:Person) REQUIRE p.name IS UNIQUE",
	"CREATE CONSTRAINT genre_name IF NOT EXISTS FOR (g:Genre) REQUIRE g.name IS UNIQUE",
}

// lookupQueries returns the movie and person queries for a matching policy.
func lookupQueries(policy config.MatchPolicy) (movie, person string) {
	if policy == config.MatchContains {
		return movieContainsQuery, personContainsQuery
	}
	return movieExactQuery, personExactQuery
}
