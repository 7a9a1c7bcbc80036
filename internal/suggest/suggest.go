// Package suggest serves typeahead completions for the query box. The
// index is a small curated list, not derived from past queries.
package suggest

import "strings"

// maxResults caps a single lookup.
const maxResults = 5

// minPrefixLen is the shortest prefix worth matching; anything shorter
// returns nothing so the UI does not flash the whole catalog on the
// first keystroke.
const minPrefixLen = 2

// Suggestion is one completion candidate.
type Suggestion struct {
	Text        string `json:"text"`
	Description string `json:"description"`
}

// defaultCatalog covers the supported filter vocabulary: every condition,
// both genders, and each age phrasing appears in at least one entry.
var defaultCatalog = []Suggestion{
	{Text: "Show me all diabetic patients over 50", Description: "Find diabetic patients aged 50 or older"},
	{Text: "Find female patients with hypertension", Description: "Search for women diagnosed with hypertension"},
	{Text: "List male cancer patients between 40 and 60", Description: "Display male cancer patients in middle age"},
	{Text: "Show patients with asthma under 30", Description: "Find young asthma patients"},
	{Text: "Find heart disease patients", Description: "Search for patients with cardiovascular conditions"},
	{Text: "Show diabetic female patients", Description: "Find women with diabetes"},
	{Text: "List patients over 65 with hypertension", Description: "Find elderly patients with high blood pressure"},
	{Text: "Find male patients under 40", Description: "Search for young male patients"},
}

// Index answers prefix lookups against a fixed suggestion list.
type Index struct {
	entries []Suggestion
}

// NewIndex builds an index over the default suggestion catalog.
func NewIndex() *Index {
	return &Index{entries: defaultCatalog}
}

// NewIndexWith builds an index over a caller-supplied list, preserving
// its order.
func NewIndexWith(entries []Suggestion) *Index {
	return &Index{entries: append([]Suggestion(nil), entries...)}
}

// Lookup returns up to maxResults suggestions whose text contains the
// prefix, case-insensitively, in catalog order. Prefixes shorter than
// minPrefixLen after trimming match nothing. The result is never nil.
func (ix *Index) Lookup(prefix string) []Suggestion {
	needle := strings.ToLower(strings.TrimSpace(prefix))
	matches := []Suggestion{}
	if len(needle) < minPrefixLen {
		return matches
	}
	for _, s := range ix.entries {
		if strings.Contains(strings.ToLower(s.Text), needle) {
			matches = append(matches, s)
			if len(matches) == maxResults {
				break
			}
		}
	}
	return matches
}

// Len reports the number of indexed suggestions.
func (ix *Index) Len() int {
	return len(ix.entries)
}
