package query

import (
	"fmt"
	"strings"

	"github.com/healthquery/healthquery/internal/catalog"
)

// Interpret resolves a bag of raw pattern matches into a single validated
// FilterSpec plus a human-readable explanation of what will be searched.
//
// Rules:
//   - query_type is patient_search when any condition/age/gender filter is
//     present, condition_search when the text asks about conditions rather
//     than patients, and general otherwise.
//   - limit defaults to DefaultLimit; an explicit "all" on an otherwise
//     unfiltered query ("show all patients") raises it to MaxLimit, the
//     hard ceiling on synthesis. "all" alongside real filters keeps the
//     default, since the filters already bound what the caller wants.
//   - if both age bounds are present and inverted they are swapped, so the
//     age_min <= age_max invariant always holds.
//
// An empty FilterSpec is valid and means "all patients, default limit".
func Interpret(m RawMatches) (FilterSpec, string) {
	spec := FilterSpec{
		Conditions: m.Conditions,
		AgeMin:     m.AgeMin,
		AgeMax:     m.AgeMax,
		Gender:     m.Gender,
		Limit:      DefaultLimit,
		QueryType:  TypeGeneral,
	}

	if spec.AgeMin != nil && spec.AgeMax != nil && *spec.AgeMin > *spec.AgeMax {
		spec.AgeMin, spec.AgeMax = spec.AgeMax, spec.AgeMin
	}

	if m.WantsAll && !spec.HasFilters() {
		spec.Limit = MaxLimit
	}

	switch {
	case m.AsksConditions && len(spec.Conditions) > 0:
		spec.QueryType = TypeConditionSearch
	case spec.HasFilters():
		spec.QueryType = TypePatientSearch
	}

	return spec, Explain(spec)
}

// Explain builds the explanation string for a FilterSpec. Clauses appear
// in a fixed order (conditions, gender, age) joined by "; ", so the same
// spec always yields the same string.
func Explain(spec FilterSpec) string {
	var parts []string

	if len(spec.Conditions) > 0 {
		names := make([]string, len(spec.Conditions))
		for i, k := range spec.Conditions {
			names[i] = string(k)
		}
		parts = append(parts, "Searching for patients with: "+strings.Join(names, ", "))
	}

	if spec.Gender != "" {
		parts = append(parts, "Gender: "+spec.Gender)
	}

	switch {
	case spec.AgeMin != nil && spec.AgeMax != nil:
		parts = append(parts, fmt.Sprintf("Age between %d and %d", *spec.AgeMin, *spec.AgeMax))
	case spec.AgeMin != nil:
		parts = append(parts, fmt.Sprintf("Age over %d", *spec.AgeMin))
	case spec.AgeMax != nil:
		parts = append(parts, fmt.Sprintf("Age under %d", *spec.AgeMax))
	}

	if len(parts) == 0 {
		return "General patient search"
	}
	return strings.Join(parts, "; ")
}

// Process runs extraction and interpretation in one step.
func Process(text string) (FilterSpec, string) {
	return Interpret(Extract(text))
}

// ConditionsOf resolves the spec's keys to full catalog entries, skipping
// any key that is not in the catalog (cannot happen for extractor output).
func ConditionsOf(spec FilterSpec) []catalog.Condition {
	out := make([]catalog.Condition, 0, len(spec.Conditions))
	for _, k := range spec.Conditions {
		if c, ok := catalog.Get(k); ok {
			out = append(out, c)
		}
	}
	return out
}
