package suggest

import "testing"

func TestLookup_ShortPrefixMatchesNothing(t *testing.T) {
	ix := NewIndex()
	for _, prefix := range []string{"", "d", " f ", "\t"} {
		got := ix.Lookup(prefix)
		if got == nil {
			t.Fatalf("Lookup(%q) returned nil, want empty slice", prefix)
		}
		if len(got) != 0 {
			t.Errorf("Lookup(%q) = %d results, want 0", prefix, len(got))
		}
	}
}

func TestLookup_CaseInsensitiveSubstring(t *testing.T) {
	ix := NewIndex()
	got := ix.Lookup("HYPERTENSION")
	if len(got) != 2 {
		t.Fatalf("expected 2 hypertension suggestions, got %d", len(got))
	}
	if got[0].Text != "Find female patients with hypertension" {
		t.Errorf("unexpected first match: %q", got[0].Text)
	}
	if got[1].Text != "List patients over 65 with hypertension" {
		t.Errorf("unexpected second match: %q", got[1].Text)
	}
}

func TestLookup_PreservesCatalogOrder(t *testing.T) {
	ix := NewIndex()
	got := ix.Lookup("di")
	want := []string{
		"Show me all diabetic patients over 50",
		"Find heart disease patients",
		"Show diabetic female patients",
	}
	if len(got) != len(want) {
		t.Fatalf("Lookup(\"di\") = %d results, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Text != want[i] {
			t.Errorf("result %d = %q, want %q", i, got[i].Text, want[i])
		}
	}
}

func TestLookup_CapsAtFive(t *testing.T) {
	ix := NewIndex()
	got := ix.Lookup("patients")
	if len(got) > 5 {
		t.Errorf("expected at most 5 results, got %d", len(got))
	}
	if len(got) != 5 {
		t.Errorf("expected the cap to bind for a broad term, got %d", len(got))
	}
}

func TestLookup_TrimsPrefix(t *testing.T) {
	ix := NewIndex()
	if len(ix.Lookup("  asthma  ")) != 1 {
		t.Error("expected trimmed prefix to match")
	}
}

func TestLookup_NoMatch(t *testing.T) {
	ix := NewIndex()
	if got := ix.Lookup("xyzzy"); len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
}

func TestNewIndexWith_CopiesEntries(t *testing.T) {
	entries := []Suggestion{{Text: "custom entry", Description: "test"}}
	ix := NewIndexWith(entries)
	entries[0].Text = "mutated"
	got := ix.Lookup("custom")
	if len(got) != 1 || got[0].Text != "custom entry" {
		t.Error("index should not alias the caller's slice")
	}
}
