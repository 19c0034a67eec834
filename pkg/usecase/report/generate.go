package report

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/e-c-centric/ClassHelper/pkg/model"
	"github.com/e-c-centric/ClassHelper/pkg/prompt"
)

// GenerateInput scopes one report generation run to a single day.
type GenerateInput struct {
	ClassID model.ClassID
	Date    model.Date
	Type    model.ReportType
}

// GenerateResult holds the synthesized report and its stored ID.
type GenerateResult struct {
	ReportID model.ReportID
	Report   string
}

// Generate builds the day's summaries for the sections the report type
// includes, synthesizes a narrative report, and appends it to the report
// log. A day with no event rows for any included section short-circuits
// with model.ErrNoEventRows. A store failure fails the request; the
// already-generated text is discarded, never retried.
func (u *UseCase) Generate(ctx context.Context, input GenerateInput) (*GenerateResult, error) {
	if err := input.Type.Validate(); err != nil {
		return nil, err
	}
	if err := input.Date.Validate(); err != nil {
		return nil, err
	}

	class, err := u.repo.GetClass(ctx, input.ClassID)
	if err != nil {
		return nil, err
	}

	students, err := u.repo.ListStudents(ctx, input.ClassID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list students", goerr.V("class_id", input.ClassID))
	}
	if len(students) == 0 {
		return nil, goerr.Wrap(model.ErrRosterNotFound, "", goerr.V("class_id", input.ClassID))
	}

	day := model.DateRange{From: input.Date, To: input.Date}
	hasEvents := false

	var attendance []*model.AttendanceSummary
	if input.Type.IncludesAttendance() {
		records, err := u.repo.ListAttendance(ctx, input.ClassID, day)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list attendance", goerr.V("class_id", input.ClassID))
		}
		if len(records) > 0 {
			hasEvents = true
		}
		attendance = SummarizeAttendance(students, records, day)
	}

	var participation []*model.ParticipationSummary
	if input.Type.IncludesParticipation() {
		comments, err := u.repo.ListComments(ctx, input.ClassID, day)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list comments", goerr.V("class_id", input.ClassID))
		}
		if len(comments) > 0 {
			hasEvents = true
		}
		participation = SummarizeParticipation(students, comments, day)
	}

	if !hasEvents {
		return nil, goerr.Wrap(model.ErrNoEventRows, "no event rows for report",
			goerr.V("class_id", input.ClassID), goerr.V("date", input.Date), goerr.V("type", input.Type))
	}

	p, err := prompt.Report(class, input.Date, input.Type, attendance, participation)
	if err != nil {
		return nil, err
	}

	text, err := u.generateText(ctx, p)
	if err != nil {
		return nil, err
	}

	generated := &model.GeneratedReport{
		ID:         model.NewReportID(),
		ClassID:    input.ClassID,
		Date:       input.Date,
		ReportType: input.Type,
		Content:    text,
		CreatedAt:  time.Now(),
	}
	if err := u.repo.PutReport(ctx, generated); err != nil {
		return nil, goerr.Wrap(err, "failed to store generated report",
			goerr.V("class_id", input.ClassID), goerr.V("report_id", generated.ID))
	}

	return &GenerateResult{ReportID: generated.ID, Report: text}, nil
}
