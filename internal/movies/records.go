// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package movies

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/neo4j/neo4j-go-driver/v6/neo4j"
	"github.com/neo4j/neo4j-go-driver/v6/neo4j/dbtype"
)

// movieRowFromRecord decodes a record of the movie lookup (title, released, people).
func movieRowFromRecord(record *neo4j.Record) (MovieRow, error) {
	var row MovieRow

	title, err := optionalString(record, "title")
	if err != nil {
		return row, err
	}
	row.Title = title

	if released, ok := record.Get("released"); ok && released != nil {
		t, err := toDate(released)
		if err != nil {
			return row, fmt.Errorf("column released: %w", err)
		}
		row.Released = t
	}

	entries, err := optionalList(record, "people")
	if err != nil {
		return row, err
	}
	for _, entry := range entries {
		name, role, ok := pairFromMap(entry, "name", "role")
		if !ok {
			continue
		}
		row.People = append(row.People, Participant{Name: name, Role: role})
	}
	return row, nil
}

// personRowFromRecord decodes a record of the person lookup (name, born, movies).
func personRowFromRecord(record *neo4j.Record) (PersonRow, error) {
	var row PersonRow

	name, err := optionalString(record, "name")
	if err != nil {
		return row, err
	}
	row.Name = name

	if born, ok := record.Get("born"); ok && born != nil {
		year, err := toYear(born)
		if err != nil {
			return row, fmt.Errorf("column born: %w", err)
		}
		row.Born = &year
	}

	entries, err := optionalList(record, "movies")
	if err != nil {
		return row, err
	}
	for _, entry := range entries {
		title, role, ok := pairFromMap(entry, "title", "role")
		if !ok {
			continue
		}
		row.Movies = append(row.Movies, Appearance{Title: title, Role: role})
	}
	return row, nil
}

func optionalString(record *neo4j.Record, key string) (string, error) {
	raw, ok := record.Get(key)
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("column %s: expected string, got %T", key, raw)
	}
	return s, nil
}

func optionalList(record *neo4j.Record, key string) ([]any, error) {
	raw, ok := record.Get(key)
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("column %s: expected list, got %T", key, raw)
	}
	return list, nil
}

// pairFromMap reads two string keys of a collected map. Maps built from an empty OPTIONAL MATCH carry nulls and
// are reported as not ok.
func pairFromMap(entry any, first, second string) (string, string, bool) {
	m, ok := entry.(map[string]any)
	if !ok {
		return "", "", false
	}
	a, _ := m[first].(string)
	b, _ := m[second].(string)
	if a == "" {
		return "", "", false
	}
	return a, b, true
}

// toDate accepts the shapes a release date takes across imports: a Neo4j date, a time, a bare year, or an
// ISO date string.
func toDate(v any) (time.Time, error) {
	switch val := v.(type) {
	case dbtype.Date:
		return val.Time(), nil
	case dbtype.LocalDateTime:
		return val.Time(), nil
	case time.Time:
		return val, nil
	case int64:
		return yearStart(int(val)), nil
	case int:
		return yearStart(val), nil
	case float64:
		return yearStart(int(math.Trunc(val))), nil
	case string:
		if t, err := time.Parse(time.DateOnly, val); err == nil {
			return t, nil
		}
		year, err := strconv.Atoi(val)
		if err != nil {
			return time.Time{}, fmt.Errorf("unrecognised date %q", val)
		}
		return yearStart(year), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported date type %T", v)
	}
}

func toYear(v any) (int, error) {
	switch val := v.(type) {
	case int64:
		return int(val), nil
	case int:
		return val, nil
	case float64:
		return int(math.Trunc(val)), nil
	default:
		t, err := toDate(v)
		if err != nil {
			return 0, err
		}
		return t.Year(), nil
	}
}

func yearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}
