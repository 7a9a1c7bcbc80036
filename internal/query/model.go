// Package query turns free-text healthcare questions into a structured
// FilterSpec. Extraction is pattern-based: an ordered list of rules over
// the lowercased text, no model inference and no state between calls.
package query

import "github.com/healthquery/healthquery/internal/catalog"

// QueryType classifies what kind of answer the caller is after.
type QueryType string

const (
	TypePatientSearch   QueryType = "patient_search"
	TypeConditionSearch QueryType = "condition_search"
	TypeGeneral         QueryType = "general"
)

// DefaultLimit is the result count used when the query does not ask for
// more.
const DefaultLimit = 10

// MaxLimit is the hard ceiling on synthesized results. "all" queries get
// this many; anything larger is clamped silently.
const MaxLimit = 50

// RawMatches is the flat bag of pattern hits produced by Extract. Fields
// left at their zero value mean the pattern did not appear.
type RawMatches struct {
	Conditions     []catalog.Key
	AgeMin         *int
	AgeMax         *int
	Gender         string
	WantsAll       bool
	Verbs          []string
	AsksConditions bool
}

// FilterSpec is the validated, structured representation of a parsed
// query. Age bounds are inclusive on both ends: "over 50" means age >= 50
// and "under 30" means age <= 30, matching the explanation strings the
// interpreter produces.
type FilterSpec struct {
	Conditions []catalog.Key `json:"conditions"`
	AgeMin     *int          `json:"age_min,omitempty"`
	AgeMax     *int          `json:"age_max,omitempty"`
	Gender     string        `json:"gender,omitempty"`
	Limit      int           `json:"limit"`
	QueryType  QueryType     `json:"query_type"`
}

// HasFilters reports whether any condition, age, or gender constraint is
// active.
func (s FilterSpec) HasFilters() bool {
	return len(s.Conditions) > 0 || s.AgeMin != nil || s.AgeMax != nil || s.Gender != ""
}

// RequiresCondition reports whether key is among the required conditions.
func (s FilterSpec) RequiresCondition(key catalog.Key) bool {
	for _, k := range s.Conditions {
		if k == key {
			return true
		}
	}
	return false
}
