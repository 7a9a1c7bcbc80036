package synth

import (
	"strings"

	"github.com/google/uuid"

	"github.com/healthquery/healthquery/internal/platform/fhir"
)

// BuildBundle wraps a synthesized population in a FHIR searchset Bundle.
// Patients go in as match entries (counted in total), their conditions as
// include entries, mirroring how a real server answers
// Patient?_revinclude=Condition:subject.
func BuildBundle(records []PatientRecord, baseURL string) *fhir.Bundle {
	id := "bundle-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	b := fhir.NewSearchBundle(id, baseURL)

	for _, r := range records {
		// Marshal of these projection maps cannot fail.
		_ = b.AddEntry(fullURL(baseURL, "Patient", r.Patient.ID), r.Patient.ToFHIR(), fhir.SearchModeMatch)
	}
	for _, r := range records {
		for _, c := range r.Conditions {
			_ = b.AddEntry(fullURL(baseURL, "Condition", c.ID), c.ToFHIR(), fhir.SearchModeInclude)
		}
	}
	return b
}

func fullURL(baseURL, resourceType, id string) string {
	ref := fhir.FormatReference(resourceType, id)
	if baseURL == "" {
		return ref
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + ref
}
