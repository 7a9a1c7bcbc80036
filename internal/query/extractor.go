package query

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/healthquery/healthquery/internal/catalog"
)

// Age patterns, in precedence order. The first pattern that matches wins:
// a "between 40 and 60" clause must not also trigger the bare "over"
// rule, and qualified numbers must not be re-read as bare mentions.
var (
	ageBetweenRe = regexp.MustCompile(`\b(?:between|from)\s+(\d{1,3})\s+(?:and|to)\s+(\d{1,3})\b`)
	ageOverRe    = regexp.MustCompile(`\b(?:over|above|older than|greater than)\s+(\d{1,3})\b`)
	ageUnderRe   = regexp.MustCompile(`\b(?:under|below|younger than|less than)\s+(\d{1,3})\b`)
)

// Gender patterns use word boundaries so "men" never matches inside
// "women" and "male" never matches inside "female". Female patterns are
// checked first; when a query names both genders, female wins.
var (
	femaleRe = regexp.MustCompile(`\b(?:female|females|woman|women|feminine)\b`)
	maleRe   = regexp.MustCompile(`\b(?:male|males|man|men|masculine)\b`)
)

var (
	wantsAllRe       = regexp.MustCompile(`\b(?:all|every)\b`)
	asksConditionsRe = regexp.MustCompile(`\b(?:what|which)\s+conditions?\b`)
)

var verbRe = regexp.MustCompile(`\b(?:show|find|list|display|search|get)\b`)

// synonymMatchers maps each compiled synonym pattern to its catalog key,
// built once at package init from the immutable catalog. Word boundaries
// keep short synonyms like "dm" from firing inside unrelated words.
type synonymMatcher struct {
	key catalog.Key
	re  *regexp.Regexp
}

var synonymMatchers = func() []synonymMatcher {
	var ms []synonymMatcher
	for _, c := range catalog.All() {
		for _, s := range c.Synonyms {
			ms = append(ms, synonymMatcher{
				key: c.Key,
				re:  regexp.MustCompile(`\b` + regexp.QuoteMeta(s) + `\b`),
			})
		}
	}
	return ms
}()

// Extract scans raw query text for condition names, age constraints,
// gender, and modifier verbs. It never fails: empty or nonsense input
// yields an empty RawMatches.
func Extract(text string) RawMatches {
	var m RawMatches
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return m
	}

	m.Conditions = extractConditions(lower)
	m.AgeMin, m.AgeMax = extractAgeBounds(lower)
	m.Gender = extractGender(lower)
	m.WantsAll = wantsAllRe.MatchString(lower)
	m.AsksConditions = asksConditionsRe.MatchString(lower)
	for _, v := range verbRe.FindAllString(lower, -1) {
		m.Verbs = append(m.Verbs, v)
	}
	return m
}

func extractConditions(lower string) []catalog.Key {
	seen := make(map[catalog.Key]bool)
	for _, sm := range synonymMatchers {
		if seen[sm.key] {
			continue
		}
		if sm.re.MatchString(lower) {
			seen[sm.key] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	keys := make([]catalog.Key, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func extractAgeBounds(lower string) (min, max *int) {
	if g := ageBetweenRe.FindStringSubmatch(lower); g != nil {
		lo, hi := mustAtoi(g[1]), mustAtoi(g[2])
		return &lo, &hi
	}
	if g := ageOverRe.FindStringSubmatch(lower); g != nil {
		lo := mustAtoi(g[1])
		return &lo, nil
	}
	if g := ageUnderRe.FindStringSubmatch(lower); g != nil {
		hi := mustAtoi(g[1])
		return nil, &hi
	}
	// A bare age mention with no qualifier carries no filter.
	return nil, nil
}

func extractGender(lower string) string {
	if femaleRe.MatchString(lower) {
		return "female"
	}
	if maleRe.MatchString(lower) {
		return "male"
	}
	return ""
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s) // pattern guarantees 1-3 digits
	return n
}
