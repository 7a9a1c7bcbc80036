package search

import (
	"github.com/healthquery/healthquery/internal/catalog"
	"github.com/healthquery/healthquery/internal/platform/fhir"
	"github.com/healthquery/healthquery/internal/query"
	"github.com/healthquery/healthquery/internal/stats"
	"github.com/healthquery/healthquery/internal/synth"
)

// QueryRequest is the body of POST /api/query.
type QueryRequest struct {
	Text string `json:"text"`
}

// QueryResult is the full response to a processed query: the parse, the
// FHIR bundle, the flat patient table, and the population statistics.
type QueryResult struct {
	Query               string                `json:"query"`
	Explanation         string                `json:"explanation"`
	ExtractedParameters query.FilterSpec      `json:"extracted_parameters"`
	FHIRResponse        *fhir.Bundle          `json:"fhir_response"`
	Patients            []synth.DisplayRecord `json:"patients"`
	Statistics          stats.Statistics      `json:"statistics"`
	TotalResults        int                   `json:"total_results"`
}

// ExampleQuery documents one canned query together with its actual
// parse, so API consumers can see what the interpreter produces.
type ExampleQuery struct {
	Input       string           `json:"input"`
	Params      query.FilterSpec `json:"params"`
	Explanation string           `json:"explanation"`
}

// ExamplesResult is the response to GET /api/examples.
type ExamplesResult struct {
	Description string         `json:"description"`
	Examples    []ExampleQuery `json:"examples"`
}

// ConditionsResult is the response to GET /api/conditions.
type ConditionsResult struct {
	SupportedConditions []string                     `json:"supported_conditions"`
	ConditionDetails    map[string]catalog.Condition `json:"condition_details"`
}
