package synth

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/healthquery/healthquery/internal/catalog"
	"github.com/healthquery/healthquery/internal/query"
)

func intPtr(n int) *int { return &n }

func specFor(text string) query.FilterSpec {
	spec, _ := query.Process(text)
	return spec
}

func TestSynthesize_CountMatchesLimit(t *testing.T) {
	g := NewGenerator(1)
	spec := query.FilterSpec{Limit: 7}
	if got := len(g.Synthesize(spec)); got != 7 {
		t.Errorf("expected 7 patients, got %d", got)
	}
}

func TestSynthesize_ClampsToCeiling(t *testing.T) {
	g := NewGenerator(1)
	spec := query.FilterSpec{Limit: 10000}
	if got := len(g.Synthesize(spec)); got != query.MaxLimit {
		t.Errorf("expected %d patients, got %d", query.MaxLimit, got)
	}
}

func TestSynthesize_ZeroLimitYieldsEmpty(t *testing.T) {
	g := NewGenerator(1)
	if got := g.Synthesize(query.FilterSpec{Limit: 0}); got != nil {
		t.Errorf("expected empty population, got %d records", len(got))
	}
}

func TestSynthesize_Reproducible(t *testing.T) {
	spec := specFor("female diabetic patients over 50")
	a := NewGenerator(42).Synthesize(spec)
	b := NewGenerator(42).Synthesize(spec)
	if len(a) != len(b) {
		t.Fatalf("population sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Patient.ID != b[i].Patient.ID ||
			a[i].Patient.GivenName != b[i].Patient.GivenName ||
			a[i].Patient.Age != b[i].Patient.Age {
			t.Fatalf("record %d differs between identically seeded runs", i)
		}
	}
}

// Every synthesized patient must satisfy every active filter. Exercised
// over randomized specs, not just the happy paths.
func TestSynthesize_SatisfiesFilters(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	keys := catalog.Keys()

	for i := 0; i < 200; i++ {
		var spec query.FilterSpec
		spec.Limit = 1 + rng.Intn(query.MaxLimit)
		switch rng.Intn(4) {
		case 0:
			spec.AgeMin = intPtr(rng.Intn(100))
		case 1:
			spec.AgeMax = intPtr(rng.Intn(100))
		case 2:
			lo := rng.Intn(80)
			spec.AgeMin = intPtr(lo)
			spec.AgeMax = intPtr(lo + rng.Intn(30))
		}
		if rng.Intn(3) == 0 {
			spec.Gender = []string{"male", "female"}[rng.Intn(2)]
		}
		for _, k := range keys {
			if rng.Intn(4) == 0 {
				spec.Conditions = append(spec.Conditions, k)
			}
		}

		g := NewGenerator(int64(i + 1))
		for _, r := range g.Synthesize(spec) {
			if spec.AgeMin != nil && r.Patient.Age < *spec.AgeMin {
				t.Fatalf("iter %d: age %d below min %d", i, r.Patient.Age, *spec.AgeMin)
			}
			if spec.AgeMax != nil && r.Patient.Age > *spec.AgeMax {
				t.Fatalf("iter %d: age %d above max %d", i, r.Patient.Age, *spec.AgeMax)
			}
			if spec.Gender != "" && r.Patient.Gender != spec.Gender {
				t.Fatalf("iter %d: gender %s, want %s", i, r.Patient.Gender, spec.Gender)
			}
			for _, k := range spec.Conditions {
				if !r.HasCondition(k) {
					t.Fatalf("iter %d: required condition %s missing", i, k)
				}
			}
		}
	}
}

func TestSynthesize_BirthDateConsistentWithAge(t *testing.T) {
	g := NewGenerator(3)
	for _, r := range g.Synthesize(query.FilterSpec{Limit: 20}) {
		bd, err := time.Parse("2006-01-02", r.Patient.BirthDate)
		if err != nil {
			t.Fatalf("bad birthDate %q: %v", r.Patient.BirthDate, err)
		}
		derived := yearsBetween(bd, g.now)
		if derived != r.Patient.Age {
			t.Errorf("birthDate %s derives age %d, record says %d",
				r.Patient.BirthDate, derived, r.Patient.Age)
		}
	}
}

func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	anniversary := from.AddDate(years, 0, 0)
	if anniversary.After(to) {
		years--
	}
	return years
}

func TestSynthesize_GenderConditionedNames(t *testing.T) {
	malePool := make(map[string]bool)
	for _, n := range firstNamesMale {
		malePool[n] = true
	}
	femalePool := make(map[string]bool)
	for _, n := range firstNamesFemale {
		femalePool[n] = true
	}

	g := NewGenerator(5)
	for _, r := range g.Synthesize(query.FilterSpec{Limit: 30, Gender: "female"}) {
		if !femalePool[r.Patient.GivenName] {
			t.Errorf("female patient got name %q outside the female pool", r.Patient.GivenName)
		}
	}
	for _, r := range g.Synthesize(query.FilterSpec{Limit: 30, Gender: "male"}) {
		if !malePool[r.Patient.GivenName] {
			t.Errorf("male patient got name %q outside the male pool", r.Patient.GivenName)
		}
	}
}

func TestSynthesize_BackgroundConditionsBounded(t *testing.T) {
	required := []catalog.Key{"diabetes", "hypertension"}
	g := NewGenerator(9)
	spec := query.FilterSpec{Limit: 40, Conditions: required}
	for _, r := range g.Synthesize(spec) {
		if len(r.Conditions) > len(required)+maxBackgroundConditions {
			t.Errorf("too many conditions: %d", len(r.Conditions))
		}
		seen := make(map[catalog.Key]bool)
		for _, c := range r.Conditions {
			if seen[c.Key] {
				t.Errorf("duplicate condition %s on one patient", c.Key)
			}
			seen[c.Key] = true
		}
	}
}

func TestSynthesize_AgeBoundsAreInclusive(t *testing.T) {
	g := NewGenerator(11)
	spec := query.FilterSpec{Limit: query.MaxLimit, AgeMin: intPtr(64), AgeMax: intPtr(64)}
	for _, r := range g.Synthesize(spec) {
		if r.Patient.Age != 64 {
			t.Fatalf("degenerate range [64,64] produced age %d", r.Patient.Age)
		}
	}
}

func TestSynthesize_MaxBelowDefaultFloor(t *testing.T) {
	g := NewGenerator(15)
	spec := specFor("Show patients with asthma under 10")
	spec.Limit = 20
	for _, r := range g.Synthesize(spec) {
		if r.Patient.Age > 10 {
			t.Errorf("expected age <= 10, got %d", r.Patient.Age)
		}
		if r.Patient.Age < 0 {
			t.Errorf("negative age %d", r.Patient.Age)
		}
	}
}

func TestSynthesize_MinBeyondDefaultCeiling(t *testing.T) {
	g := NewGenerator(13)
	spec := query.FilterSpec{Limit: 10, AgeMin: intPtr(95)}
	for _, r := range g.Synthesize(spec) {
		if r.Patient.Age < 95 {
			t.Errorf("expected age >= 95, got %d", r.Patient.Age)
		}
	}
}

func TestBuildBundle_Shape(t *testing.T) {
	g := NewGenerator(17)
	records := g.Synthesize(specFor("diabetic patients"))
	b := BuildBundle(records, "http://example.org/fhir")

	if b.ResourceType != "Bundle" || b.Type != "searchset" {
		t.Fatalf("unexpected bundle: %s/%s", b.ResourceType, b.Type)
	}
	if b.Total == nil || *b.Total != len(records) {
		t.Errorf("total = %v, want %d", b.Total, len(records))
	}

	patients, conditions := 0, 0
	for _, e := range b.Entry {
		var res map[string]interface{}
		if err := json.Unmarshal(e.Resource, &res); err != nil {
			t.Fatalf("entry is not valid JSON: %v", err)
		}
		switch res["resourceType"] {
		case "Patient":
			patients++
			if e.Search.Mode != "match" {
				t.Error("patient entry should be match mode")
			}
		case "Condition":
			conditions++
			if e.Search.Mode != "include" {
				t.Error("condition entry should be include mode")
			}
			subject := res["subject"].(map[string]interface{})
			if subject["reference"] == "" {
				t.Error("condition missing subject reference")
			}
		default:
			t.Errorf("unexpected resource type %v", res["resourceType"])
		}
	}
	if patients != len(records) {
		t.Errorf("expected %d patient entries, got %d", len(records), patients)
	}
	total := 0
	for _, r := range records {
		total += len(r.Conditions)
	}
	if conditions != total {
		t.Errorf("expected %d condition entries, got %d", total, conditions)
	}
}

func TestDisplay_Projection(t *testing.T) {
	g := NewGenerator(19)
	records := g.Synthesize(specFor("female patients with asthma"))
	for _, r := range records {
		d := r.Display()
		if d.ID != r.Patient.ID || d.Age != r.Patient.Age || d.Gender != "female" {
			t.Errorf("display projection mismatch: %+v", d)
		}
		found := false
		for _, c := range d.Conditions {
			if c == "asthma" {
				found = true
			}
		}
		if !found {
			t.Error("display record missing required condition label")
		}
	}
}
