// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package resolver

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/neo4j/graphsemantics/internal/movies"
)

// ComposeMovie renders a movie row:
//
//	Movie: The Matrix (1999)
//	People involved:
//	- Keanu Reeves (ACTED_IN)
//
// The year is left out when the release date is unknown.
func ComposeMovie(row movies.MovieRow) string {
	var b strings.Builder
	b.WriteString("Movie: ")
	b.WriteString(row.Title)
	if year, ok := row.ReleaseYear(); ok {
		fmt.Fprintf(&b, " (%d)", year)
	}
	b.WriteString("\nPeople involved:")

	entries := make([]entry, 0, len(row.People))
	for _, p := range row.People {
		entries = append(entries, entry{label: p.Name, role: p.Role})
	}
	writeEntries(&b, entries)
	return b.String()
}

// ComposePerson renders a person row:
//
//	Person: Keanu Reeves (born 1964)
//	Filmography:
//	- The Matrix (ACTED_IN)
func ComposePerson(row movies.PersonRow) string {
	var b strings.Builder
	b.WriteString("Person: ")
	b.WriteString(row.Name)
	if row.Born != nil {
		fmt.Fprintf(&b, " (born %d)", *row.Born)
	}
	b.WriteString("\nFilmography:")

	entries := make([]entry, 0, len(row.Movies))
	for _, m := range row.Movies {
		entries = append(entries, entry{label: m.Title, role: m.Role})
	}
	writeEntries(&b, entries)
	return b.String()
}

type entry struct {
	label string
	role  string
}

// writeEntries writes one "- label (role)" line per distinct entry, sorted by label then role.
func writeEntries(b *strings.Builder, entries []entry) {
	slices.SortFunc(entries, func(x, y entry) int {
		return cmp.Or(cmp.Compare(x.label, y.label), cmp.Compare(x.role, y.role))
	})
	for _, e := range slices.Compact(entries) {
		fmt.Fprintf(b, "\n- %s (%s)", e.label, e.role)
	}
}
