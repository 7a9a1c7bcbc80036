// Package synth manufactures synthetic patient populations that satisfy a
// parsed FilterSpec. Generation is deliberately generative rather than a
// search over a fixed dataset: a query can never come back empty (unless
// the limit is zero). That diverges from a real FHIR server on purpose,
// since this is a simulation tool rather than a query engine.
package synth

import (
	"github.com/healthquery/healthquery/internal/catalog"
	"github.com/healthquery/healthquery/internal/platform/fhir"
)

// IdentifierSystem is stamped on the synthetic MRN identifier.
const IdentifierSystem = "http://hospital.example.org/patients"

// Patient is one synthesized person. Immutable after creation; discarded
// with the response.
type Patient struct {
	ID         string
	GivenName  string
	FamilyName string
	Gender     string
	BirthDate  string // YYYY-MM-DD, consistent with Age at synthesis time
	Age        int
	Active     bool
	MRN        string
	Street     string
	City       string
	State      string
	PostalCode string
	Phone      string
	Email      string
}

// ConditionResource is a synthesized FHIR Condition owned by exactly one
// patient.
type ConditionResource struct {
	ID             string
	PatientID      string
	Key            catalog.Key
	Code           string
	Display        string
	System         string
	ClinicalStatus string
	OnsetDateTime  string
	RecordedDate   string
}

// PatientRecord pairs a patient with the conditions generated for them.
type PatientRecord struct {
	Patient    Patient
	Conditions []ConditionResource
}

// ConditionKeys returns the record's condition keys in generation order.
func (r PatientRecord) ConditionKeys() []catalog.Key {
	keys := make([]catalog.Key, len(r.Conditions))
	for i, c := range r.Conditions {
		keys[i] = c.Key
	}
	return keys
}

// HasCondition reports whether the record carries the given condition.
func (r PatientRecord) HasCondition(key catalog.Key) bool {
	for _, c := range r.Conditions {
		if c.Key == key {
			return true
		}
	}
	return false
}

// DisplayRecord is the flat projection consumed by table views.
type DisplayRecord struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Gender     string   `json:"gender"`
	Conditions []string `json:"conditions"`
	BirthDate  string   `json:"birthDate"`
}

// Display projects the record into its flat display form.
func (r PatientRecord) Display() DisplayRecord {
	conditions := make([]string, len(r.Conditions))
	for i, c := range r.Conditions {
		conditions[i] = string(c.Key)
	}
	return DisplayRecord{
		ID:         r.Patient.ID,
		Name:       r.Patient.GivenName + " " + r.Patient.FamilyName,
		Age:        r.Patient.Age,
		Gender:     r.Patient.Gender,
		Conditions: conditions,
		BirthDate:  r.Patient.BirthDate,
	}
}

// ToFHIR projects the patient into a FHIR R4 Patient resource map.
func (p Patient) ToFHIR() map[string]interface{} {
	return map[string]interface{}{
		"resourceType": "Patient",
		"id":           p.ID,
		"active":       p.Active,
		"identifier": []fhir.Identifier{{
			Use:    "official",
			System: IdentifierSystem,
			Value:  p.MRN,
		}},
		"name": []fhir.HumanName{{
			Use:    "official",
			Family: p.FamilyName,
			Given:  []string{p.GivenName},
		}},
		"gender":    p.Gender,
		"birthDate": p.BirthDate,
		"address": []fhir.Address{{
			Use:        "home",
			Line:       []string{p.Street},
			City:       p.City,
			State:      p.State,
			PostalCode: p.PostalCode,
			Country:    "US",
		}},
		"telecom": []fhir.ContactPoint{
			{System: "phone", Value: p.Phone, Use: "home"},
			{System: "email", Value: p.Email, Use: "home"},
		},
	}
}

// ToFHIR projects the condition into a FHIR R4 Condition resource map.
func (c ConditionResource) ToFHIR() map[string]interface{} {
	return map[string]interface{}{
		"resourceType": "Condition",
		"id":           c.ID,
		"clinicalStatus": fhir.CodeableConcept{
			Coding: []fhir.Coding{{
				System:  fhir.ConditionClinicalSystem,
				Code:    c.ClinicalStatus,
				Display: "Active",
			}},
		},
		"code": fhir.CodeableConcept{
			Coding: []fhir.Coding{{System: c.System, Code: c.Code, Display: c.Display}},
			Text:   c.Display,
		},
		"subject": fhir.Reference{
			Reference: fhir.FormatReference("Patient", c.PatientID),
			Display:   "Patient " + c.PatientID,
		},
		"onsetDateTime": c.OnsetDateTime,
		"recordedDate":  c.RecordedDate,
	}
}
