package fhir

import (
	"encoding/json"
	"testing"
)

func TestNewSearchBundle_Empty(t *testing.T) {
	b := NewSearchBundle("bundle-1", "/fhir/Patient")
	if b.ResourceType != "Bundle" || b.Type != "searchset" {
		t.Errorf("unexpected bundle shape: %s/%s", b.ResourceType, b.Type)
	}
	if b.Total == nil || *b.Total != 0 {
		t.Error("expected total 0 on empty bundle")
	}
	if len(b.Link) != 1 || b.Link[0].Relation != "self" {
		t.Error("expected a self link")
	}
}

func TestAddEntry_OnlyMatchCountsTowardTotal(t *testing.T) {
	b := NewSearchBundle("bundle-2", "")
	patient := map[string]interface{}{"resourceType": "Patient", "id": "p1"}
	condition := map[string]interface{}{"resourceType": "Condition", "id": "c1"}

	if err := b.AddEntry("Patient/p1", patient, SearchModeMatch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.AddEntry("Condition/c1", condition, SearchModeInclude); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *b.Total != 1 {
		t.Errorf("expected total 1, got %d", *b.Total)
	}
	if len(b.Entry) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(b.Entry))
	}
	var res map[string]interface{}
	if err := json.Unmarshal(b.Entry[0].Resource, &res); err != nil {
		t.Fatalf("entry resource is not valid JSON: %v", err)
	}
	if res["resourceType"] != "Patient" {
		t.Errorf("expected Patient resource, got %v", res["resourceType"])
	}
	if b.Entry[1].Search.Mode != SearchModeInclude {
		t.Errorf("expected include mode, got %s", b.Entry[1].Search.Mode)
	}
}

func TestErrorOutcome(t *testing.T) {
	oo := ErrorOutcome("boom")
	if oo.ResourceType != "OperationOutcome" {
		t.Errorf("expected OperationOutcome, got %s", oo.ResourceType)
	}
	if len(oo.Issue) != 1 || oo.Issue[0].Severity != "error" {
		t.Error("expected a single error issue")
	}
	if oo.Issue[0].Diagnostics != "boom" {
		t.Errorf("expected diagnostics 'boom', got %q", oo.Issue[0].Diagnostics)
	}
}

func TestFormatReference(t *testing.T) {
	if got := FormatReference("Patient", "abc"); got != "Patient/abc" {
		t.Errorf("expected Patient/abc, got %s", got)
	}
}
