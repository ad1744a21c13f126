// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package movies

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/graphsemantics/internal/database"
	"github.com/neo4j/graphsemantics/internal/logger"
	"github.com/neo4j/graphsemantics/internal/metrics"
)

// DefaultBatchSize is the number of movies written per UNWIND statement.
const DefaultBatchSize = 500

// Import sources, used as metric labels.
const (
	SourceURL   = "url"
	SourceLocal = "local"
)

// ImportSummary reports the node counts of the graph after an import.
type ImportSummary struct {
	Movies int64 `json:"movies"`
	People int64 `json:"people"`
	Genres int64 `json:"genres"`
}

func (s ImportSummary) String() string {
	return fmt.Sprintf("%d movies, %d people, %d genres", s.Movies, s.People, s.Genres)
}

// Importer writes the movie dataset into the graph store.
type Importer struct {
	db        database.QueryExecutor
	batchSize int
	log       *logger.Service
}

// NewImporter creates an Importer. A batchSize below one selects DefaultBatchSize.
func NewImporter(db database.QueryExecutor, batchSize int, log *logger.Service) (*Importer, error) {
	if db == nil {
		return nil, fmt.Errorf("database service cannot be nil")
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Importer{db: db, batchSize: batchSize, log: log.Component("import")}, nil
}

// EnsureConstraints creates the uniqueness constraints backing the import MERGE keys.
func (im *Importer) EnsureConstraints(ctx context.Context) error {
	for _, cypher := range constraintQueries {
		if _, err := im.db.ExecuteWriteQuery(ctx, cypher, nil); err != nil {
			return &DataAccessError{Op: OpImport, Err: fmt.Errorf("failed to create constraint: %w", err)}
		}
	}
	return nil
}

// ImportFromURL loads the CSV dataset at url server-side with LOAD CSV.
func (im *Importer) ImportFromURL(ctx context.Context, url string) (summary ImportSummary, err error) {
	defer func() { metrics.ImportsTotal.WithLabelValues(SourceURL, metrics.Status(err)).Inc() }()

	if url == "" {
		return ImportSummary{}, fmt.Errorf("dataset URL cannot be empty")
	}
	if err := im.EnsureConstraints(ctx); err != nil {
		return ImportSummary{}, err
	}

	start := time.Now()
	im.log.Info("Importing movie dataset", "source", url)
	if _, err := im.db.ExecuteWriteQuery(ctx, importFromURLQuery, map[string]any{"url": url}); err != nil {
		return ImportSummary{}, &DataAccessError{Op: OpImport, Err: err}
	}

	summary, err = im.Summary(ctx)
	if err != nil {
		return ImportSummary{}, err
	}
	im.log.Info("Movie dataset imported", "summary", summary.String(), "duration", time.Since(start))
	return summary, nil
}

// ImportMovies writes movies in batches with the same graph shape as ImportFromURL.
func (im *Importer) ImportMovies(ctx context.Context, movies []Movie) (summary ImportSummary, err error) {
	defer func() { metrics.ImportsTotal.WithLabelValues(SourceLocal, metrics.Status(err)).Inc() }()

	if err := im.EnsureConstraints(ctx); err != nil {
		return ImportSummary{}, err
	}

	for start := 0; start < len(movies); start += im.batchSize {
		end := min(start+im.batchSize, len(movies))
		batch := make([]map[string]any, 0, end-start)
		for _, m := range movies[start:end] {
			batch = append(batch, movieParams(m))
		}
		if _, err := im.db.ExecuteWriteQuery(ctx, importMoviesQuery, map[string]any{"movies": batch}); err != nil {
			return ImportSummary{}, &DataAccessError{Op: OpImport, Err: fmt.Errorf("batch %d-%d: %w", start, end, err)}
		}
		im.log.Debug("Imported movie batch", "from", start, "to", end)
	}

	return im.Summary(ctx)
}

// UpsertPeople sets birth years. People without one are still merged.
func (im *Importer) UpsertPeople(ctx context.Context, people []Person) error {
	if len(people) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(people))
	for _, p := range people {
		row := map[string]any{"name": p.Name, "born": nil}
		if p.Born != nil {
			row["born"] = int64(*p.Born)
		}
		rows = append(rows, row)
	}
	if _, err := im.db.ExecuteWriteQuery(ctx, upsertPeopleQuery, map[string]any{"people": rows}); err != nil {
		return &DataAccessError{Op: OpImport, Err: err}
	}
	return nil
}

// Summary counts the Movie, Person and Genre nodes.
func (im *Importer) Summary(ctx context.Context) (ImportSummary, error) {
	records, err := im.db.ExecuteReadQuery(ctx, summaryQuery, nil)
	if err != nil {
		return ImportSummary{}, &DataAccessError{Op: OpImport, Err: err}
	}
	if len(records) == 0 {
		return ImportSummary{}, nil
	}
	record := records[0]
	var summary ImportSummary
	for key, dst := range map[string]*int64{"movies": &summary.Movies, "people": &summary.People, "genres": &summary.Genres} {
		raw, _ := record.Get(key)
		n, ok := raw.(int64)
		if !ok && raw != nil {
			return ImportSummary{}, &DataAccessError{Op: OpImport, Err: fmt.Errorf("column %s: expected integer, got %T", key, raw)}
		}
		*dst = n
	}
	return summary, nil
}

func movieParams(m Movie) map[string]any {
	var released any
	if !m.Released.IsZero() {
		released = m.Released.Format(time.DateOnly)
	}
	return map[string]any{
		"id":         m.ID,
		"title":      m.Title,
		"released":   released,
		"imdbRating": m.IMDbRating,
		"directors":  nonNil(m.Directors),
		"actors":     nonNil(m.Actors),
		"genres":     nonNil(m.Genres),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
