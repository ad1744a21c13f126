// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package tools

import (
	"encoding/json"
	"fmt"
)

// LLMResponseWrapper is the response format of tools that return data rather than prose.
type LLMResponseWrapper[T any] struct {
	Summary   string   `json:"summary"`
	Data      T        `json:"data"`
	NextSteps []string `json:"next_steps,omitempty"`
}

// CreateLLMResponse creates a standardized LLM response with the given data
func CreateLLMResponse[T any](summary string, data T, nextSteps ...string) LLMResponseWrapper[T] {
	return LLMResponseWrapper[T]{
		Summary:   summary,
		Data:      data,
		NextSteps: nextSteps,
	}
}

// ToJSON converts the LLMResponseWrapper to indented JSON for LLM consumption
func (r LLMResponseWrapper[T]) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal LLM response to JSON: %w", err)
	}
	return string(bytes), nil
}

// SummaryDatasetImported is reported after a successful import.
const SummaryDatasetImported = "The movie dataset has been imported into the graph database."

// NextStepsAfterImport guides the caller after an import.
var NextStepsAfterImport = []string{
	"Use Information to look up a movie by title or a person by name",
}
