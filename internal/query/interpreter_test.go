package query

import (
	"testing"

	"github.com/healthquery/healthquery/internal/catalog"
)

func TestInterpret_LiteralScenarios(t *testing.T) {
	tests := []struct {
		text       string
		conditions []catalog.Key
		ageMin     *int
		ageMax     *int
		gender     string
		limit      int
		queryType  QueryType
	}{
		{
			text:       "Show me all diabetic patients over 50",
			conditions: []catalog.Key{"diabetes"},
			ageMin:     intPtr(50),
			limit:      DefaultLimit,
			queryType:  TypePatientSearch,
		},
		{
			text:       "Find female patients with hypertension",
			conditions: []catalog.Key{"hypertension"},
			gender:     "female",
			limit:      DefaultLimit,
			queryType:  TypePatientSearch,
		},
		{
			text:       "List male cancer patients between 40 and 60",
			conditions: []catalog.Key{"cancer"},
			ageMin:     intPtr(40),
			ageMax:     intPtr(60),
			gender:     "male",
			limit:      DefaultLimit,
			queryType:  TypePatientSearch,
		},
		{
			text:       "Show patients with asthma under 30",
			conditions: []catalog.Key{"asthma"},
			ageMax:     intPtr(30),
			limit:      DefaultLimit,
			queryType:  TypePatientSearch,
		},
		{
			text:      "Display all patients",
			limit:     MaxLimit,
			queryType: TypeGeneral,
		},
	}

	for _, tt := range tests {
		spec, _ := Process(tt.text)
		if len(spec.Conditions) != len(tt.conditions) {
			t.Errorf("%q: conditions = %v, want %v", tt.text, spec.Conditions, tt.conditions)
		} else {
			for i := range spec.Conditions {
				if spec.Conditions[i] != tt.conditions[i] {
					t.Errorf("%q: conditions = %v, want %v", tt.text, spec.Conditions, tt.conditions)
					break
				}
			}
		}
		if !eqIntPtr(spec.AgeMin, tt.ageMin) {
			t.Errorf("%q: age_min = %v, want %v", tt.text, fmtPtr(spec.AgeMin), fmtPtr(tt.ageMin))
		}
		if !eqIntPtr(spec.AgeMax, tt.ageMax) {
			t.Errorf("%q: age_max = %v, want %v", tt.text, fmtPtr(spec.AgeMax), fmtPtr(tt.ageMax))
		}
		if spec.Gender != tt.gender {
			t.Errorf("%q: gender = %q, want %q", tt.text, spec.Gender, tt.gender)
		}
		if spec.Limit != tt.limit {
			t.Errorf("%q: limit = %d, want %d", tt.text, spec.Limit, tt.limit)
		}
		if spec.QueryType != tt.queryType {
			t.Errorf("%q: query_type = %s, want %s", tt.text, spec.QueryType, tt.queryType)
		}
	}
}

func TestInterpret_EmptySpecIsValid(t *testing.T) {
	spec, explanation := Interpret(RawMatches{})
	if spec.HasFilters() {
		t.Error("expected no filters")
	}
	if spec.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, spec.Limit)
	}
	if spec.QueryType != TypeGeneral {
		t.Errorf("expected general query type, got %s", spec.QueryType)
	}
	if explanation != "General patient search" {
		t.Errorf("unexpected explanation: %q", explanation)
	}
}

func TestInterpret_SwapsInvertedAgeBounds(t *testing.T) {
	spec, _ := Interpret(RawMatches{AgeMin: intPtr(60), AgeMax: intPtr(40)})
	if spec.AgeMin == nil || spec.AgeMax == nil {
		t.Fatal("expected both bounds set")
	}
	if *spec.AgeMin != 40 || *spec.AgeMax != 60 {
		t.Errorf("expected [40,60], got [%d,%d]", *spec.AgeMin, *spec.AgeMax)
	}
}

func TestInterpret_ConditionSearch(t *testing.T) {
	spec, _ := Process("which conditions like diabetes are supported")
	if spec.QueryType != TypeConditionSearch {
		t.Errorf("expected condition_search, got %s", spec.QueryType)
	}
}

func TestExplain_ClauseOrderAndIdempotence(t *testing.T) {
	spec, first := Process("List male cancer patients between 40 and 60")
	want := "Searching for patients with: cancer; Gender: male; Age between 40 and 60"
	if first != want {
		t.Errorf("explanation = %q, want %q", first, want)
	}
	for i := 0; i < 5; i++ {
		if got := Explain(spec); got != first {
			t.Fatalf("explanation not idempotent: %q != %q", got, first)
		}
	}
}

func TestExplain_SingleClauses(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"diabetic patients", "Searching for patients with: diabetes"},
		{"female patients", "Gender: female"},
		{"patients over 50", "Age over 50"},
		{"patients under 30", "Age under 30"},
	}
	for _, tt := range tests {
		if _, got := Process(tt.text); got != tt.want {
			t.Errorf("Process(%q) explanation = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestConditionsOf(t *testing.T) {
	spec, _ := Process("asthma and copd patients")
	got := ConditionsOf(spec)
	if len(got) != 2 {
		t.Fatalf("expected 2 catalog entries, got %d", len(got))
	}
	if got[0].Key != "asthma" || got[1].Key != "copd" {
		t.Errorf("unexpected entries: %v, %v", got[0].Key, got[1].Key)
	}
}
