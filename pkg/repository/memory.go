package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/e-c-centric/ClassHelper/pkg/model"
)

// Memory implements Repository with in-process maps. It backs unit tests
// and the --memory development mode of the server; semantics mirror the
// Firestore implementation, including the (StudentID, Date) upsert key.
type Memory struct {
	mu         sync.RWMutex
	classes    map[model.ClassID]*model.Class
	students   map[model.ClassID][]*model.Student
	attendance map[model.ClassID]map[string]*model.AttendanceRecord
	comments   map[model.ClassID][]*model.ParticipationComment
	reports    map[model.ClassID][]*model.GeneratedReport
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		classes:    make(map[model.ClassID]*model.Class),
		students:   make(map[model.ClassID][]*model.Student),
		attendance: make(map[model.ClassID]map[string]*model.AttendanceRecord),
		comments:   make(map[model.ClassID][]*model.ParticipationComment),
		reports:    make(map[model.ClassID][]*model.GeneratedReport),
	}
}

func (r *Memory) GetClass(ctx context.Context, classID model.ClassID) (*model.Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	class, ok := r.classes[classID]
	if !ok {
		return nil, goerr.Wrap(model.ErrClassNotFound, "", goerr.V("class_id", classID))
	}
	copied := *class
	return &copied, nil
}

func (r *Memory) PutClass(ctx context.Context, class *model.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *class
	r.classes[class.ID] = &copied
	return nil
}

func (r *Memory) ListStudents(ctx context.Context, classID model.ClassID) ([]*model.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	students := make([]*model.Student, 0, len(r.students[classID]))
	for _, s := range r.students[classID] {
		copied := *s
		students = append(students, &copied)
	}
	sort.SliceStable(students, func(i, j int) bool {
		return students[i].RollNumber < students[j].RollNumber
	})
	return students, nil
}

func (r *Memory) PutStudent(ctx context.Context, student *model.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *student
	for i, s := range r.students[student.ClassID] {
		if s.ID == student.ID {
			r.students[student.ClassID][i] = &copied
			return nil
		}
	}
	r.students[student.ClassID] = append(r.students[student.ClassID], &copied)
	return nil
}

func (r *Memory) ListAttendance(ctx context.Context, classID model.ClassID, rng model.DateRange) ([]*model.AttendanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*model.AttendanceRecord
	for _, rec := range r.attendance[classID] {
		if !rng.Contains(rec.Date) {
			continue
		}
		copied := *rec
		records = append(records, &copied)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].StudentID < records[j].StudentID
	})
	return records, nil
}

func (r *Memory) UpsertAttendance(ctx context.Context, records []*model.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range records {
		rows, ok := r.attendance[rec.ClassID]
		if !ok {
			rows = make(map[string]*model.AttendanceRecord)
			r.attendance[rec.ClassID] = rows
		}
		copied := *rec
		rows[attendanceDocID(rec.StudentID, rec.Date)] = &copied
	}
	return nil
}

func (r *Memory) ListComments(ctx context.Context, classID model.ClassID, rng model.DateRange) ([]*model.ParticipationComment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var comments []*model.ParticipationComment
	for _, c := range r.comments[classID] {
		if !rng.Contains(c.Date) {
			continue
		}
		copied := *c
		comments = append(comments, &copied)
	}
	return comments, nil
}

func (r *Memory) PutComment(ctx context.Context, comment *model.ParticipationComment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *comment
	r.comments[comment.ClassID] = append(r.comments[comment.ClassID], &copied)
	return nil
}

func (r *Memory) PutReport(ctx context.Context, report *model.GeneratedReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *report
	r.reports[report.ClassID] = append(r.reports[report.ClassID], &copied)
	return nil
}

// Reports returns the stored report log for a class, newest last. Test
// helper; the serving path only appends.
func (r *Memory) Reports(classID model.ClassID) []*model.GeneratedReport {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reports := make([]*model.GeneratedReport, 0, len(r.reports[classID]))
	for _, rep := range r.reports[classID] {
		copied := *rep
		reports = append(reports, &copied)
	}
	return reports
}

// Attendance returns the stored attendance row for one (student, date)
// key, or nil. Test helper.
func (r *Memory) Attendance(classID model.ClassID, studentID model.StudentID, date model.Date) *model.AttendanceRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.attendance[classID][attendanceDocID(studentID, date)]
	if !ok {
		return nil
	}
	copied := *rec
	return &copied
}
