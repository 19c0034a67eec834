package repository

import (
	"context"

	"github.com/e-c-centric/ClassHelper/pkg/model"
)

// Repository is the persistence contract for rosters, attendance,
// participation, and generated reports. Referential integrity between
// event rows and the roster is the store's concern, not the callers'.
type Repository interface {
	// GetClass retrieves one class, or model.ErrClassNotFound.
	GetClass(ctx context.Context, classID model.ClassID) (*model.Class, error)

	// PutClass creates or replaces a class.
	PutClass(ctx context.Context, class *model.Class) error

	// ListStudents retrieves the roster for a class in roll-number order.
	// A missing or empty roster yields an empty slice, not an error.
	ListStudents(ctx context.Context, classID model.ClassID) ([]*model.Student, error)

	// PutStudent creates or replaces a roster entry.
	PutStudent(ctx context.Context, student *model.Student) error

	// ListAttendance retrieves attendance rows for a class, restricted to
	// rng when it is non-zero.
	ListAttendance(ctx context.Context, classID model.ClassID, rng model.DateRange) ([]*model.AttendanceRecord, error)

	// UpsertAttendance writes attendance rows keyed by (StudentID, Date).
	// A row sharing a key with an existing one replaces it; applying the
	// same batch twice leaves the store unchanged.
	UpsertAttendance(ctx context.Context, records []*model.AttendanceRecord) error

	// ListComments retrieves participation comments for a class,
	// restricted to rng when it is non-zero.
	ListComments(ctx context.Context, classID model.ClassID, rng model.DateRange) ([]*model.ParticipationComment, error)

	// PutComment appends one participation comment.
	PutComment(ctx context.Context, comment *model.ParticipationComment) error

	// PutReport appends one generated report.
	PutReport(ctx context.Context, report *model.GeneratedReport) error
}
