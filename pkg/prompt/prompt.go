// Package prompt renders aggregated class data into the fixed prompts
// sent to the completion service. Rendering is deterministic: the same
// input produces a byte-identical prompt, so golden tests can cover the
// exact text the model receives without calling it.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"

	"github.com/e-c-centric/ClassHelper/pkg/model"
)

// Task declares what kind of deliverable the completion service is asked
// for, which decides how its output is parsed afterwards.
type Task string

const (
	// TaskTranscribe expects free-text transcription output.
	TaskTranscribe Task = "transcribe"
	// TaskMatch expects a strict JSON array of roster names.
	TaskMatch Task = "match"
	// TaskAnalyze expects free-text analysis output.
	TaskAnalyze Task = "analyze"
	// TaskReport expects free-text report output.
	TaskReport Task = "report"
)

// Prompt is one fully rendered request to the completion service.
type Prompt struct {
	Task Task
	Text string
	// MaxOutputTokens is the caller-imposed budget for the response.
	MaxOutputTokens int32
}

// Output budgets per task, matching what each deliverable needs: a name
// list is short, a narrative report is not.
const (
	matchMaxTokens      = 1000
	reportMaxTokens     = 1500
	analyzeMaxTokens    = 2000
	transcribeMaxTokens = 2000
)

//go:embed templates/match.md
var matchTmplRaw string

//go:embed templates/analyze.md
var analyzeTmplRaw string

//go:embed templates/report.md
var reportTmplRaw string

//go:embed templates/transcribe.md
var transcribeTmplRaw string

var (
	matchTmpl   = template.Must(template.New("match").Parse(matchTmplRaw))
	analyzeTmpl = template.Must(template.New("analyze").Parse(analyzeTmplRaw))
	reportTmpl  = template.Must(template.New("report").Parse(reportTmplRaw))
)

// Match builds the roster-matching prompt for a transcript. The
// instruction text demands a bare JSON array; parse.NameList depends on
// that contract.
func Match(transcription string, roster []*model.Student) (Prompt, error) {
	names := make([]string, 0, len(roster))
	for _, s := range roster {
		names = append(names, s.Name)
	}

	var buf bytes.Buffer
	if err := matchTmpl.Execute(&buf, map[string]any{
		"Transcription": transcription,
		"StudentNames":  strings.Join(names, ", "),
	}); err != nil {
		return Prompt{}, goerr.Wrap(err, "failed to execute match prompt template")
	}

	return Prompt{Task: TaskMatch, Text: buf.String(), MaxOutputTokens: matchMaxTokens}, nil
}

// Analyze builds the participation-analysis prompt. Summaries must be in
// roster order; every roster student appears exactly once, including those
// with zero contributions, so the narrative can call out non-participants.
func Analyze(summaries []*model.ParticipationSummary) (Prompt, error) {
	var buf bytes.Buffer
	if err := analyzeTmpl.Execute(&buf, map[string]any{
		"Summaries": summaries,
	}); err != nil {
		return Prompt{}, goerr.Wrap(err, "failed to execute analyze prompt template")
	}

	return Prompt{Task: TaskAnalyze, Text: buf.String(), MaxOutputTokens: analyzeMaxTokens}, nil
}

// Report builds the narrative-report prompt for a single day. attendance
// and participation carry the summaries for the sections the report type
// includes; either may be nil when its section is excluded.
func Report(class *model.Class, date model.Date, reportType model.ReportType,
	attendance []*model.AttendanceSummary, participation []*model.ParticipationSummary) (Prompt, error) {

	data := map[string]any{
		"ClassName":     class.Name,
		"DateLabel":     date.Time().Format("January 2, 2006"),
		"Attendance":    false,
		"Participation": false,
	}

	if reportType.IncludesAttendance() && attendance != nil {
		presentCount := 0
		var present, absent []*model.Student
		for _, s := range attendance {
			if s.PresentCount > 0 {
				presentCount++
				present = append(present, s.Student)
			} else {
				absent = append(absent, s.Student)
			}
		}

		percent := 0.0
		if len(attendance) > 0 {
			percent = float64(presentCount) / float64(len(attendance)) * 100
		}

		data["Attendance"] = true
		data["PresentCount"] = presentCount
		data["TotalCount"] = len(attendance)
		data["PercentLabel"] = fmt.Sprintf("%.1f", percent)
		data["PresentStudents"] = present
		data["AbsentStudents"] = absent
	}

	if reportType.IncludesParticipation() && participation != nil {
		total := 0
		var lines []string
		for _, s := range participation {
			total += s.Total
			for _, c := range s.Comments {
				lines = append(lines, fmt.Sprintf("%s (%s): %s [%s]",
					s.Student.Name, s.Student.RollNumber, c.Comment, c.Relevance))
			}
		}

		data["Participation"] = true
		data["TotalContributions"] = total
		data["CommentLines"] = lines
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return Prompt{}, goerr.Wrap(err, "failed to execute report prompt template")
	}

	return Prompt{Task: TaskReport, Text: buf.String(), MaxOutputTokens: reportMaxTokens}, nil
}

// Transcribe returns the fixed instruction for the audio model.
func Transcribe() Prompt {
	return Prompt{
		Task:            TaskTranscribe,
		Text:            strings.TrimRight(transcribeTmplRaw, "\n"),
		MaxOutputTokens: transcribeMaxTokens,
	}
}
