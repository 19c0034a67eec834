package model

// AttendanceSummary has per-student attendance counts over a window.
// Ephemeral: computed for prompt building, never persisted.
type AttendanceSummary struct {
	Student      *Student
	PresentCount int
	TotalCount   int
	// Percentage is PresentCount/TotalCount, 0 when there are no rows.
	Percentage float64
}

func (s *AttendanceSummary) AbsentCount() int {
	return s.TotalCount - s.PresentCount
}

// ParticipationSummary has per-student contribution counts plus the
// underlying comments ordered by date ascending. Ephemeral.
type ParticipationSummary struct {
	Student          *Student
	Total            int
	Relevant         int
	SomewhatRelevant int
	NotRelevant      int
	Comments         []*ParticipationComment
}
