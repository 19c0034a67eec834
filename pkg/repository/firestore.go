package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/e-c-centric/ClassHelper/pkg/model"
)

const (
	collClasses  = "classes"
	collStudents = "students"
	collAttend   = "attendance"
	collComments = "comments"
	collReports  = "reports"
)

// Firestore implements Repository on Cloud Firestore. Rosters and event
// rows live in subcollections under classes/{classID}; attendance
// documents use the deterministic ID {studentID}_{date}, which is what
// gives upserts their last-write-wins semantics.
type Firestore struct {
	client *firestore.Client
}

// New creates a Firestore-backed repository.
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID), goerr.V("database", databaseID))
	}
	return &Firestore{client: client}, nil
}

// Close releases the underlying client.
func (r *Firestore) Close() error {
	return r.client.Close()
}

func (r *Firestore) classDoc(classID model.ClassID) *firestore.DocumentRef {
	return r.client.Collection(collClasses).Doc(string(classID))
}

func (r *Firestore) GetClass(ctx context.Context, classID model.ClassID) (*model.Class, error) {
	doc, err := r.classDoc(classID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrClassNotFound, "", goerr.V("class_id", classID))
		}
		return nil, goerr.Wrap(err, "failed to get class", goerr.V("class_id", classID))
	}

	var class model.Class
	if err := doc.DataTo(&class); err != nil {
		return nil, goerr.Wrap(err, "failed to decode class", goerr.V("class_id", classID))
	}
	return &class, nil
}

func (r *Firestore) PutClass(ctx context.Context, class *model.Class) error {
	if _, err := r.classDoc(class.ID).Set(ctx, class); err != nil {
		return goerr.Wrap(err, "failed to put class", goerr.V("class_id", class.ID))
	}
	return nil
}

func (r *Firestore) ListStudents(ctx context.Context, classID model.ClassID) ([]*model.Student, error) {
	iter := r.classDoc(classID).Collection(collStudents).OrderBy("roll_no", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var students []*model.Student
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate students", goerr.V("class_id", classID))
		}

		var student model.Student
		if err := doc.DataTo(&student); err != nil {
			return nil, goerr.Wrap(err, "failed to decode student", goerr.V("doc_id", doc.Ref.ID))
		}
		students = append(students, &student)
	}

	return students, nil
}

func (r *Firestore) PutStudent(ctx context.Context, student *model.Student) error {
	doc := r.classDoc(student.ClassID).Collection(collStudents).Doc(string(student.ID))
	if _, err := doc.Set(ctx, student); err != nil {
		return goerr.Wrap(err, "failed to put student", goerr.V("student_id", student.ID))
	}
	return nil
}

// dateRangeQuery applies an inclusive [From, To] filter to a collection
// query. ISO date strings compare lexicographically in date order, so the
// filter works on the stored string field directly.
func dateRangeQuery(q firestore.Query, rng model.DateRange) firestore.Query {
	if rng.IsZero() {
		return q
	}
	return q.Where("date", ">=", string(rng.From)).Where("date", "<=", string(rng.To))
}

func (r *Firestore) ListAttendance(ctx context.Context, classID model.ClassID, rng model.DateRange) ([]*model.AttendanceRecord, error) {
	q := dateRangeQuery(r.classDoc(classID).Collection(collAttend).Query, rng)
	iter := q.Documents(ctx)
	defer iter.Stop()

	var records []*model.AttendanceRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate attendance", goerr.V("class_id", classID))
		}

		var record model.AttendanceRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, goerr.Wrap(err, "failed to decode attendance record", goerr.V("doc_id", doc.Ref.ID))
		}
		records = append(records, &record)
	}

	return records, nil
}

// attendanceDocID is the conflict key for upserts: one document per
// student per day.
func attendanceDocID(studentID model.StudentID, date model.Date) string {
	return fmt.Sprintf("%s_%s", studentID, date)
}

func (r *Firestore) UpsertAttendance(ctx context.Context, records []*model.AttendanceRecord) error {
	for _, record := range records {
		doc := r.classDoc(record.ClassID).Collection(collAttend).Doc(attendanceDocID(record.StudentID, record.Date))
		if _, err := doc.Set(ctx, record); err != nil {
			return goerr.Wrap(err, "failed to upsert attendance record",
				goerr.V("student_id", record.StudentID), goerr.V("date", record.Date))
		}
	}
	return nil
}

func (r *Firestore) ListComments(ctx context.Context, classID model.ClassID, rng model.DateRange) ([]*model.ParticipationComment, error) {
	q := dateRangeQuery(r.classDoc(classID).Collection(collComments).Query, rng)
	iter := q.Documents(ctx)
	defer iter.Stop()

	var comments []*model.ParticipationComment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate comments", goerr.V("class_id", classID))
		}

		var comment model.ParticipationComment
		if err := doc.DataTo(&comment); err != nil {
			return nil, goerr.Wrap(err, "failed to decode comment", goerr.V("doc_id", doc.Ref.ID))
		}
		comments = append(comments, &comment)
	}

	return comments, nil
}

func (r *Firestore) PutComment(ctx context.Context, comment *model.ParticipationComment) error {
	doc := r.classDoc(comment.ClassID).Collection(collComments).Doc(string(comment.ID))
	if _, err := doc.Create(ctx, comment); err != nil {
		return goerr.Wrap(err, "failed to put comment", goerr.V("comment_id", comment.ID))
	}
	return nil
}

func (r *Firestore) PutReport(ctx context.Context, report *model.GeneratedReport) error {
	doc := r.classDoc(report.ClassID).Collection(collReports).Doc(string(report.ID))
	if _, err := doc.Create(ctx, report); err != nil {
		return goerr.Wrap(err, "failed to put report", goerr.V("report_id", report.ID))
	}
	return nil
}
