// Package catalog holds the static medical condition terminology used by
// both the query extractor and the population synthesizer. The table is
// built once at init and never mutated afterwards, so it is safe to share
// across concurrent requests without locking.
package catalog

// ICD10System is the coding system URI stamped on every condition coding.
const ICD10System = "http://hl7.org/fhir/sid/icd-10-cm"

// Key is the canonical lowercase name of a supported condition.
type Key string

// Condition describes one catalog entry: the canonical key, the surface
// synonyms the extractor recognizes, and the ICD-10 coding the
// synthesizer stamps on generated Condition resources.
type Condition struct {
	Key      Key      `json:"key"`
	Code     string   `json:"code"`
	Display  string   `json:"display"`
	System   string   `json:"system"`
	Synonyms []string `json:"synonyms"`
}

var conditions = []Condition{
	{
		Key:      "diabetes",
		Code:     "E11.9",
		Display:  "Type 2 diabetes mellitus without complications",
		System:   ICD10System,
		Synonyms: []string{"diabetes", "diabetic", "dm", "type 1 diabetes", "type 2 diabetes"},
	},
	{
		Key:      "hypertension",
		Code:     "I10",
		Display:  "Essential (primary) hypertension",
		System:   ICD10System,
		Synonyms: []string{"hypertension", "high blood pressure", "hbp", "hypertensive"},
	},
	{
		Key:      "asthma",
		Code:     "J45.909",
		Display:  "Unspecified asthma, uncomplicated",
		System:   ICD10System,
		Synonyms: []string{"asthma", "asthmatic"},
	},
	{
		Key:      "heart disease",
		Code:     "I25.9",
		Display:  "Chronic ischemic heart disease, unspecified",
		System:   ICD10System,
		Synonyms: []string{"heart disease", "cardiac", "coronary", "heart condition", "cardiovascular"},
	},
	{
		Key:      "cancer",
		Code:     "C80.1",
		Display:  "Malignant (primary) neoplasm, unspecified",
		System:   ICD10System,
		Synonyms: []string{"cancer", "oncology", "tumor", "malignant", "carcinoma"},
	},
	{
		Key:      "copd",
		Code:     "J44.9",
		Display:  "Chronic obstructive pulmonary disease, unspecified",
		System:   ICD10System,
		Synonyms: []string{"copd", "chronic obstructive", "emphysema"},
	},
	{
		Key:      "stroke",
		Code:     "I63.9",
		Display:  "Cerebral infarction, unspecified",
		System:   ICD10System,
		Synonyms: []string{"stroke", "cerebrovascular", "cva"},
	},
}

var byKey = func() map[Key]Condition {
	m := make(map[Key]Condition, len(conditions))
	for _, c := range conditions {
		m[c.Key] = c
	}
	return m
}()

// All returns every catalog entry in declaration order. Callers must not
// modify the returned slice.
func All() []Condition {
	return conditions
}

// Keys returns the canonical keys in declaration order.
func Keys() []Key {
	keys := make([]Key, len(conditions))
	for i, c := range conditions {
		keys[i] = c.Key
	}
	return keys
}

// Get looks up a catalog entry by its canonical key.
func Get(key Key) (Condition, bool) {
	c, ok := byKey[key]
	return c, ok
}

// Len reports the number of supported conditions.
func Len() int {
	return len(conditions)
}
