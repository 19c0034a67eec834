package attendance

import (
	"strings"

	"github.com/e-c-centric/ClassHelper/pkg/model"
)

// Match resolves claimed name mentions against a roster. A student is
// matched when a claim is a case-insensitive substring of the student's
// full name or the other way around, so "John" finds "John Smith" and
// "Johnny Smith from the back row" finds "Johnny Smith". The check is
// symmetric: swapping claim and student never changes the outcome.
//
// One claim may match several students ("Ann" with both "Ann Lee" and
// "Ann Park" on the roster). All of them are marked matched, with
// Ambiguous set; for attendance a stray false positive costs less than
// silently dropping a student who answered.
//
// The result has exactly one entry per roster student, in roster order.
// Zero matches is not an error; it just means nobody was identified.
func Match(roster []*model.Student, claims []string) []*model.MatchResult {
	// Students matched per claim, to flag claims that hit more than one.
	matchCounts := make([]int, len(claims))
	claimIndex := make([]int, len(roster))

	results := make([]*model.MatchResult, 0, len(roster))
	for i, student := range roster {
		result := &model.MatchResult{
			StudentID: student.ID,
			Name:      student.Name,
		}
		claimIndex[i] = -1

		for j, claim := range claims {
			if !mentionMatches(student.Name, claim) {
				continue
			}
			if !result.Matched {
				result.Matched = true
				result.Mention = claim
				claimIndex[i] = j
			}
			matchCounts[j]++
		}

		results = append(results, result)
	}

	for i, result := range results {
		if j := claimIndex[i]; j >= 0 && matchCounts[j] > 1 {
			result.Ambiguous = true
		}
	}

	return results
}

// mentionMatches is the bidirectional containment rule. Both operands
// are trimmed and lowered first; an empty side never matches.
func mentionMatches(name, mention string) bool {
	a := strings.ToLower(strings.TrimSpace(name))
	b := strings.ToLower(strings.TrimSpace(mention))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
