// Package stats summarizes a synthesized population into the aggregate
// view returned alongside query results.
package stats

import (
	"math"

	"github.com/healthquery/healthquery/internal/synth"
)

// ageBuckets in presentation order. Bounds are inclusive on both ends.
var ageBuckets = []struct {
	label string
	lo    int
	hi    int
}{
	{"0-20", 0, 20},
	{"21-40", 21, 40},
	{"41-60", 41, 60},
	{"61-80", 61, 80},
	{"81+", 81, math.MaxInt32},
}

// Statistics is the aggregate summary of one synthesized population.
type Statistics struct {
	TotalPatients         int            `json:"total_patients"`
	AverageAge            float64        `json:"average_age"`
	GenderDistribution    map[string]int `json:"gender_distribution"`
	AgeDistribution       map[string]int `json:"age_distribution"`
	ConditionDistribution map[string]int `json:"condition_distribution"`
	TotalConditions       int            `json:"total_conditions"`
}

// Aggregate computes population statistics in a single pass. An empty
// population produces zero counts and an average age of 0, never NaN.
func Aggregate(records []synth.PatientRecord) Statistics {
	s := Statistics{
		TotalPatients:         len(records),
		GenderDistribution:    make(map[string]int),
		AgeDistribution:       make(map[string]int),
		ConditionDistribution: make(map[string]int),
	}

	ageSum := 0
	for _, r := range records {
		ageSum += r.Patient.Age
		s.GenderDistribution[r.Patient.Gender]++
		s.AgeDistribution[bucketFor(r.Patient.Age)]++
		for _, c := range r.Conditions {
			s.ConditionDistribution[string(c.Key)]++
		}
	}

	if len(records) > 0 {
		avg := float64(ageSum) / float64(len(records))
		s.AverageAge = math.Round(avg*10) / 10
	}
	s.TotalConditions = len(s.ConditionDistribution)
	return s
}

func bucketFor(age int) string {
	for _, b := range ageBuckets {
		if age >= b.lo && age <= b.hi {
			return b.label
		}
	}
	return ageBuckets[len(ageBuckets)-1].label
}

// BucketLabels returns the age bucket labels in presentation order, for
// callers that render the distribution as an ordered series.
func BucketLabels() []string {
	labels := make([]string, len(ageBuckets))
	for i, b := range ageBuckets {
		labels[i] = b.label
	}
	return labels
}
