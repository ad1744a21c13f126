// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package movies

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// listSeparator splits multi-valued CSV columns.
const listSeparator = "|"

var requiredColumns = []string{"movieId", "title", "released", "imdbRating", "director", "actors", "genres"}

// ReadMoviesCSV parses the movie dataset CSV (movieId, title, released, imdbRating, director, actors, genres).
// Column order is taken from the header.
func ReadMoviesCSV(r io.Reader) ([]Movie, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("movie CSV is empty")
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("movie CSV is missing column %q", col)
		}
	}

	var movies []Movie
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		field := func(col string) string { return strings.TrimSpace(record[index[col]]) }

		m := Movie{
			ID:        field("movieId"),
			Title:     field("title"),
			Directors: splitList(field("director")),
			Actors:    splitList(field("actors")),
			Genres:    splitList(field("genres")),
		}
		if m.ID == "" {
			return nil, fmt.Errorf("line %d: movieId is empty", line)
		}
		if v := field("released"); v != "" {
			t, err := time.Parse(time.DateOnly, v)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid released date %q: %w", line, v, err)
			}
			m.Released = t
		}
		if v := field("imdbRating"); v != "" {
			rating, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid imdbRating %q: %w", line, v, err)
			}
			m.IMDbRating = rating
		}
		movies = append(movies, m)
	}
	return movies, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, listSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
