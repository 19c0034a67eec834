package report

import (
	"sort"

	"github.com/e-c-centric/ClassHelper/pkg/model"
)

// SummarizeAttendance groups attendance rows by student and computes
// per-student counts over the window. Pure and deterministic: no I/O,
// and identical inputs always produce identical output.
//
// The result has exactly one entry per roster student in roster order;
// students with no rows in the window appear with zero counts and a zero
// percentage, never a division fault.
func SummarizeAttendance(students []*model.Student, records []*model.AttendanceRecord, rng model.DateRange) []*model.AttendanceSummary {
	byStudent := make(map[model.StudentID]*model.AttendanceSummary, len(students))
	summaries := make([]*model.AttendanceSummary, 0, len(students))
	for _, s := range students {
		summary := &model.AttendanceSummary{Student: s}
		byStudent[s.ID] = summary
		summaries = append(summaries, summary)
	}

	for _, rec := range records {
		if !rng.Contains(rec.Date) {
			continue
		}
		summary, ok := byStudent[rec.StudentID]
		if !ok {
			// Row for a student no longer on the roster; skip.
			continue
		}
		summary.TotalCount++
		if rec.Present {
			summary.PresentCount++
		}
	}

	for _, summary := range summaries {
		if summary.TotalCount > 0 {
			summary.Percentage = float64(summary.PresentCount) / float64(summary.TotalCount)
		}
	}

	return summaries
}

// SummarizeParticipation groups participation comments by student and
// tallies them per relevance bucket. Same contract as
// SummarizeAttendance: pure, one entry per roster student in roster
// order, zero-initialized for students without contributions.
//
// Each summary retains its comments ordered by date ascending, ties kept
// in input order, so narrative prompts can quote them chronologically.
func SummarizeParticipation(students []*model.Student, comments []*model.ParticipationComment, rng model.DateRange) []*model.ParticipationSummary {
	byStudent := make(map[model.StudentID]*model.ParticipationSummary, len(students))
	summaries := make([]*model.ParticipationSummary, 0, len(students))
	for _, s := range students {
		summary := &model.ParticipationSummary{Student: s}
		byStudent[s.ID] = summary
		summaries = append(summaries, summary)
	}

	for _, c := range comments {
		if !rng.Contains(c.Date) {
			continue
		}
		summary, ok := byStudent[c.StudentID]
		if !ok {
			continue
		}

		summary.Total++
		switch c.Relevance {
		case model.RelevanceRelevant:
			summary.Relevant++
		case model.RelevanceSomewhatRelevant:
			summary.SomewhatRelevant++
		case model.RelevanceNotRelevant:
			summary.NotRelevant++
		}
		summary.Comments = append(summary.Comments, c)
	}

	for _, summary := range summaries {
		sort.SliceStable(summary.Comments, func(i, j int) bool {
			return summary.Comments[i].Date.Before(summary.Comments[j].Date)
		})
	}

	return summaries
}

// totalContributions sums comment counts across summaries.
func totalContributions(summaries []*model.ParticipationSummary) int {
	total := 0
	for _, s := range summaries {
		total += s.Total
	}
	return total
}
