package match

import (
	"sort"
)

// DefaultSuggestThreshold is the minimum normalized similarity a known value
// needs to be offered as a suggestion.
const DefaultSuggestThreshold = 0.6

// Candidate is a known value scored against an unknown one.
type Candidate struct {
	Value string
	// Score is 1 minus the edit distance over the longer length.
	Score float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

func (c CandidateList) Len() int { return len(c) }

func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Value < c[j].Value
}

func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Rank scores every known value against raw and returns the candidates at or
// above threshold, best first. Ties are broken by value for determinism.
func Rank(raw string, known []string, threshold float64) CandidateList {
	var candidates CandidateList

	for _, k := range known {
		score := similarity(raw, k)
		if score < threshold {
			continue
		}

		candidates = append(candidates, Candidate{Value: k, Score: score})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to limit known values that look like raw.
func Suggest(raw string, known []string, limit int) []string {
	if raw == "" || limit <= 0 {
		return nil
	}

	ranked := Rank(raw, known, DefaultSuggestThreshold)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, c.Value)
	}

	return out
}

// similarity compares a and b after NormalizeIdent, so "buy_now" and
// "buyNow" score 1.
func similarity(a, b string) float64 {
	ra := []rune(NormalizeIdent(a))
	rb := []rune(NormalizeIdent(b))

	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}

	return 1 - float64(editDistance(ra, rb))/float64(longest)
}

// editDistance counts single-rune inserts, deletes and substitutions
// between a and b, keeping one row of the table.
func editDistance(a, b []rune) int {
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		diag := row[0]
		row[0] = i

		for j := 1; j <= len(b); j++ {
			above := row[j]
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			row[j] = min(row[j]+1, row[j-1]+1, diag+cost)
			diag = above
		}
	}

	return row[len(b)]
}
