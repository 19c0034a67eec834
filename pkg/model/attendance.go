package model

// AttendanceRecord marks one student present or absent on one day.
// Records are unique per (StudentID, Date); a later write with the same
// key replaces the earlier value.
type AttendanceRecord struct {
	ClassID   ClassID   `firestore:"class_id" json:"classId"`
	StudentID StudentID `firestore:"student_id" json:"studentId"`
	Date      Date      `firestore:"date" json:"date"`
	Present   bool      `firestore:"present" json:"present"`
}

// MatchResult reports whether one roster student was identified in a
// transcript. Ephemeral: produced by the matcher, consumed immediately
// to build attendance upserts, never persisted.
type MatchResult struct {
	StudentID StudentID
	Name      string
	Matched   bool
	// Mention is the claimed name that matched this student, empty when
	// Matched is false.
	Mention string
	// Ambiguous is set when Mention also matched at least one other
	// roster student. All ambiguous matches are kept: marking an extra
	// student present is preferred to dropping one who answered.
	Ambiguous bool
}
