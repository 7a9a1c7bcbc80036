package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/healthquery/healthquery/internal/catalog"
	"github.com/healthquery/healthquery/internal/platform/metrics"
	"github.com/healthquery/healthquery/internal/query"
	"github.com/healthquery/healthquery/internal/stats"
	"github.com/healthquery/healthquery/internal/suggest"
	"github.com/healthquery/healthquery/internal/synth"
)

// canned example inputs, processed live so the documented output always
// matches what the interpreter actually produces.
var exampleInputs = []string{
	"Show me all diabetic patients over 50",
	"Find female patients with hypertension",
	"List male cancer patients between 40 and 60",
	"Show patients with asthma under 30",
	"Find heart disease patients",
}

// Service runs the query pipeline: extract, interpret, synthesize,
// aggregate.
type Service struct {
	seed        int64
	baseURL     string
	suggestions *suggest.Index
	log         zerolog.Logger
}

// NewService wires the pipeline. A zero seed gives non-reproducible
// populations; any other value makes every query deterministic given
// the same text.
func NewService(seed int64, baseURL string, log zerolog.Logger) *Service {
	return &Service{
		seed:        seed,
		baseURL:     baseURL,
		suggestions: suggest.NewIndex(),
		log:         log,
	}
}

// ProcessQuery turns free text into a synthesized result set. The only
// error is an empty query; unrecognized text still succeeds as a
// general search.
func (s *Service) ProcessQuery(ctx context.Context, text string) (*QueryResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("query text is required")
	}

	spec, explanation := query.Process(text)

	g := synth.NewGenerator(s.seed)
	records := g.Synthesize(spec)
	bundle := synth.BuildBundle(records, s.baseURL)
	summary := stats.Aggregate(records)

	patients := make([]synth.DisplayRecord, len(records))
	for i, r := range records {
		patients[i] = r.Display()
	}

	metrics.RecordQuery(string(spec.QueryType), len(records))
	s.log.Info().
		Str("query_type", string(spec.QueryType)).
		Int("results", len(records)).
		Str("explanation", explanation).
		Msg("query processed")

	return &QueryResult{
		Query:               text,
		Explanation:         explanation,
		ExtractedParameters: spec,
		FHIRResponse:        bundle,
		Patients:            patients,
		Statistics:          summary,
		TotalResults:        len(records),
	}, nil
}

// Suggestions returns typeahead completions for the given prefix.
func (s *Service) Suggestions(ctx context.Context, prefix string) []suggest.Suggestion {
	metrics.RecordSuggestionLookup()
	return s.suggestions.Lookup(prefix)
}

// Examples returns the canned queries with their live parses.
func (s *Service) Examples(ctx context.Context) ExamplesResult {
	examples := make([]ExampleQuery, len(exampleInputs))
	for i, input := range exampleInputs {
		spec, explanation := query.Process(input)
		examples[i] = ExampleQuery{Input: input, Params: spec, Explanation: explanation}
	}
	return ExamplesResult{
		Description: "Example natural language queries and their processed outputs",
		Examples:    examples,
	}
}

// Conditions returns the supported condition vocabulary.
func (s *Service) Conditions(ctx context.Context) ConditionsResult {
	details := make(map[string]catalog.Condition, catalog.Len())
	for _, c := range catalog.All() {
		details[string(c.Key)] = c
	}
	keys := make([]string, 0, catalog.Len())
	for _, k := range catalog.Keys() {
		keys = append(keys, string(k))
	}
	return ConditionsResult{
		SupportedConditions: keys,
		ConditionDetails:    details,
	}
}
