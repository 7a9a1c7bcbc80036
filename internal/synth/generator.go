package synth

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/healthquery/healthquery/internal/catalog"
	"github.com/healthquery/healthquery/internal/platform/fhir"
	"github.com/healthquery/healthquery/internal/query"
)

// Demographic pools. Kept in-file like the rest of the static terminology:
// loaded once, never mutated.
var (
	firstNamesMale = []string{
		"James", "Robert", "John", "Michael", "David", "William", "Richard",
		"Joseph", "Thomas", "Christopher", "Charles", "Daniel", "Matthew",
		"Anthony", "Mark", "Steven", "Andrew", "Joshua", "Kevin", "Brian",
	}
	firstNamesFemale = []string{
		"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Barbara",
		"Susan", "Jessica", "Sarah", "Karen", "Lisa", "Nancy", "Margaret",
		"Sandra", "Ashley", "Emily", "Michelle", "Amanda", "Melissa", "Laura",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
		"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
		"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	}
	streets = []string{
		"123 Main St", "456 Oak Ave", "789 Pine Rd", "321 Elm St",
		"654 Maple Dr", "987 Cedar Ln", "147 Birch Blvd", "258 Walnut Way",
	}
	cities = []string{
		"Boston", "New York", "Chicago", "Los Angeles", "Houston",
		"Philadelphia", "Phoenix", "San Diego",
	}
	states = []string{"MA", "NY", "IL", "CA", "TX", "PA", "AZ", "WA"}
	zips   = []string{"02101", "10001", "60601", "90001", "77001", "19101", "85001", "98101"}
)

// Default age range when the spec does not constrain age.
const (
	defaultAgeMin = 18
	defaultAgeMax = 90
)

// maxBackgroundConditions bounds the unrelated conditions a patient may
// carry beyond the required set.
const maxBackgroundConditions = 2

// Generator produces synthetic patient populations. It is not safe for
// concurrent use; create one per request (cheap) or per test.
type Generator struct {
	rng     *rand.Rand
	now     time.Time
	counter uint64
}

// NewGenerator returns a generator seeded for reproducibility. Seed 0
// picks a time-based seed, giving different populations across calls.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now().UTC(),
	}
}

// Synthesize manufactures min(spec.Limit, MaxLimit) patients, each
// satisfying every active filter in the spec: age within the inclusive
// bounds, gender equal to the requested one, and the requested conditions
// present in full. A zero limit yields an empty population; it is the
// only way to get one.
func (g *Generator) Synthesize(spec query.FilterSpec) []PatientRecord {
	n := spec.Limit
	if n > query.MaxLimit {
		n = query.MaxLimit
	}
	if n <= 0 {
		return nil
	}

	records := make([]PatientRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, g.generateRecord(spec))
	}
	return records
}

func (g *Generator) generateRecord(spec query.FilterSpec) PatientRecord {
	p := g.generatePatient(spec)
	keys := g.conditionKeysFor(spec)
	conditions := make([]ConditionResource, 0, len(keys))
	for _, k := range keys {
		conditions = append(conditions, g.generateCondition(p.ID, k))
	}
	return PatientRecord{Patient: p, Conditions: conditions}
}

func (g *Generator) generatePatient(spec query.FilterSpec) Patient {
	gender := spec.Gender
	if gender == "" {
		if g.rng.Intn(2) == 0 {
			gender = fhir.GenderMale
		} else {
			gender = fhir.GenderFemale
		}
	}

	var given string
	if gender == fhir.GenderMale {
		given = g.pick(firstNamesMale)
	} else {
		given = g.pick(firstNamesFemale)
	}
	family := g.pick(lastNames)

	age := g.ageFor(spec)
	addrIdx := g.rng.Intn(len(streets))

	return Patient{
		ID:         g.nextID("patient"),
		GivenName:  given,
		FamilyName: family,
		Gender:     gender,
		Age:        age,
		BirthDate:  g.birthDateFor(age),
		Active:     true,
		MRN:        fmt.Sprintf("MRN-%08d", g.rng.Intn(100000000)),
		Street:     streets[addrIdx],
		City:       cities[addrIdx],
		State:      states[addrIdx],
		PostalCode: zips[addrIdx],
		Phone:      g.randomPhone(),
		Email:      fmt.Sprintf("%s.%s@example.com", strings.ToLower(given), strings.ToLower(family)),
	}
}

// ageFor picks an age inside the spec's inclusive bounds, falling back to
// the default adult range for unbounded sides.
func (g *Generator) ageFor(spec query.FilterSpec) int {
	lo, hi := defaultAgeMin, defaultAgeMax
	if spec.AgeMin != nil {
		lo = *spec.AgeMin
	}
	if spec.AgeMax != nil {
		hi = *spec.AgeMax
	}
	if lo < 0 {
		lo = 0
	}
	// "under 10" style queries fall below the default adult floor.
	if spec.AgeMin == nil && hi < lo {
		lo = 0
	}
	if hi < lo {
		// "over 95" style queries push past the default ceiling.
		hi = lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

// birthDateFor derives a birth date consistent with the given age as of
// the generator's synthesis time: exactly `age` anniversaries have passed
// and the extra day offset stays safely below a full year.
func (g *Generator) birthDateFor(age int) string {
	d := g.now.AddDate(-age, 0, 0).AddDate(0, 0, -g.rng.Intn(360))
	return d.Format("2006-01-02")
}

// conditionKeysFor returns the spec's required conditions plus up to
// maxBackgroundConditions unrelated ones. Background picks come from the
// catalog minus the required set, so they can never displace a required
// condition.
func (g *Generator) conditionKeysFor(spec query.FilterSpec) []catalog.Key {
	keys := append([]catalog.Key(nil), spec.Conditions...)

	required := make(map[catalog.Key]bool, len(keys))
	for _, k := range keys {
		required[k] = true
	}
	var pool []catalog.Key
	for _, k := range catalog.Keys() {
		if !required[k] {
			pool = append(pool, k)
		}
	}

	extra := g.rng.Intn(maxBackgroundConditions + 1)
	for i := 0; i < extra && len(pool) > 0; i++ {
		j := g.rng.Intn(len(pool))
		keys = append(keys, pool[j])
		pool = append(pool[:j], pool[j+1:]...)
	}
	return keys
}

func (g *Generator) generateCondition(patientID string, key catalog.Key) ConditionResource {
	entry, ok := catalog.Get(key)
	if !ok {
		// Unknown keys cannot come from the extractor; fall back to an
		// unspecified-illness coding rather than failing synthesis.
		entry = catalog.Condition{
			Key:     key,
			Code:    "R69",
			Display: "Illness, unspecified",
			System:  catalog.ICD10System,
		}
	}

	// Onset somewhere in the last five years.
	onset := g.now.AddDate(0, 0, -(30 + g.rng.Intn(1795)))
	stamp := onset.Format(time.RFC3339)

	return ConditionResource{
		ID:             g.nextID("condition"),
		PatientID:      patientID,
		Key:            entry.Key,
		Code:           entry.Code,
		Display:        entry.Display,
		System:         entry.System,
		ClinicalStatus: fhir.ConditionActive,
		OnsetDateTime:  stamp,
		RecordedDate:   stamp,
	}
}

func (g *Generator) nextID(prefix string) string {
	g.counter++
	return fmt.Sprintf("%s-%08x-%04x", prefix, g.rng.Uint32(), g.counter)
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

func (g *Generator) randomPhone() string {
	return fmt.Sprintf("(%03d) %03d-%04d",
		200+g.rng.Intn(800), 200+g.rng.Intn(800), g.rng.Intn(10000))
}
