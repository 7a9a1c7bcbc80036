package fhir

import (
	"encoding/json"
	"time"
)

// Bundle represents a FHIR Bundle resource.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Type         string        `json:"type"`
	Total        *int          `json:"total,omitempty"`
	Timestamp    *time.Time    `json:"timestamp,omitempty"`
	Link         []BundleLink  `json:"link,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty"`
}

type BundleLink struct {
	Relation string `json:"relation"`
	URL      string `json:"url"`
}

type BundleEntry struct {
	FullURL  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
	Search   *BundleSearch   `json:"search,omitempty"`
}

type BundleSearch struct {
	Mode string `json:"mode,omitempty"`
}

// Search entry modes.
const (
	SearchModeMatch   = "match"
	SearchModeInclude = "include"
)

// NewSearchBundle creates an empty searchset Bundle. Entries are appended
// with AddEntry; total counts only the match-mode entries, per the FHIR
// searchset contract.
func NewSearchBundle(id, selfURL string) *Bundle {
	now := time.Now().UTC()
	total := 0
	b := &Bundle{
		ResourceType: "Bundle",
		ID:           id,
		Type:         "searchset",
		Total:        &total,
		Timestamp:    &now,
	}
	if selfURL != "" {
		b.Link = []BundleLink{{Relation: "self", URL: selfURL}}
	}
	return b
}

// AddEntry marshals the resource and appends it with the given search
// mode. Match-mode entries increment the bundle total.
func (b *Bundle) AddEntry(fullURL string, resource interface{}, mode string) error {
	raw, err := json.Marshal(resource)
	if err != nil {
		return err
	}
	b.Entry = append(b.Entry, BundleEntry{
		FullURL:  fullURL,
		Resource: raw,
		Search:   &BundleSearch{Mode: mode},
	})
	if mode == SearchModeMatch && b.Total != nil {
		*b.Total++
	}
	return nil
}
