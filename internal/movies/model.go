// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

// Package movies holds the movie graph model, the two lookup queries the resolver is built on, and the dataset
// import that populates the graph.
package movies

import "time"

// Relationship types present in the movie graph.
const (
	RoleDirected = "DIRECTED"
	RoleActedIn  = "ACTED_IN"
	RelInGenre   = "IN_GENRE"
)

// Movie is a movie node as written by the import. Titles are not unique; ID is.
type Movie struct {
	ID         string
	Title      string
	Released   time.Time
	IMDbRating float64
	Directors  []string
	Actors     []string
	Genres     []string
}

// Person is a person node. Born is nil when the birth year is unknown.
type Person struct {
	Name string
	Born *int
}

// Genre is a genre node.
type Genre struct {
	Name string
}

// Participant is one incoming DIRECTED/ACTED_IN edge of a movie.
type Participant struct {
	Name string
	Role string
}

// Appearance is one outgoing DIRECTED/ACTED_IN edge of a person.
type Appearance struct {
	Title string
	Role  string
}

// MovieRow is the projection returned by the movie lookup.
// An empty Title means the row carries no movie.
type MovieRow struct {
	Title    string
	Released time.Time // zero when unknown
	People   []Participant
}

// ReleaseYear returns the release year and whether it is known.
func (r MovieRow) ReleaseYear() (int, bool) {
	if r.Released.IsZero() {
		return 0, false
	}
	return r.Released.Year(), true
}

// PersonRow is the projection returned by the person lookup.
// An empty Name means the row carries no person.
type PersonRow struct {
	Name   string
	Born   *int
	Movies []Appearance
}
