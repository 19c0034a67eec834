package model

import (
	"time"

	"github.com/google/uuid"
)

type ReportID string

func NewReportID() ReportID {
	return ReportID(uuid.New().String())
}

// ReportType selects which event streams feed a generated report.
type ReportType string

const (
	ReportTypeAttendance    ReportType = "attendance"
	ReportTypeParticipation ReportType = "participation"
	ReportTypeComprehensive ReportType = "comprehensive"
)

func (t ReportType) Validate() error {
	switch t {
	case ReportTypeAttendance, ReportTypeParticipation, ReportTypeComprehensive:
		return nil
	default:
		return ErrInvalidReportType
	}
}

// IncludesAttendance reports whether this report type covers attendance rows.
func (t ReportType) IncludesAttendance() bool {
	return t == ReportTypeAttendance || t == ReportTypeComprehensive
}

// IncludesParticipation reports whether this report type covers comments.
func (t ReportType) IncludesParticipation() bool {
	return t == ReportTypeParticipation || t == ReportTypeComprehensive
}

// GeneratedReport is one synthesized narrative, stored as an append-only
// log with its provenance key. Repeated generation for the same key adds
// a new row rather than replacing the old one.
type GeneratedReport struct {
	ID         ReportID   `firestore:"id" json:"id"`
	ClassID    ClassID    `firestore:"class_id" json:"classId"`
	Date       Date       `firestore:"date" json:"date"`
	ReportType ReportType `firestore:"report_type" json:"reportType"`
	Content    string     `firestore:"content" json:"content"`
	CreatedAt  time.Time  `firestore:"created_at" json:"createdAt"`
}

// ReportRequest names the scope of one report or analysis run.
type ReportRequest struct {
	ClassID    ClassID    `json:"classId"`
	Date       Date       `json:"date,omitempty"`
	DateRange  DateRange  `json:"dateRange,omitempty"`
	ReportType ReportType `json:"reportType,omitempty"`
}
