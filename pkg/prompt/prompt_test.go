package prompt_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/e-c-centric/ClassHelper/pkg/model"
	"github.com/e-c-centric/ClassHelper/pkg/prompt"
)

func testRoster() []*model.Student {
	return []*model.Student{
		{ID: "s1", ClassID: "class-1", RollNumber: "CS001", Name: "John Smith"},
		{ID: "s2", ClassID: "class-1", RollNumber: "CS002", Name: "Jane Doe"},
	}
}

func TestMatchPrompt(t *testing.T) {
	p, err := prompt.Match("John? Here.", testRoster())
	gt.NoError(t, err)

	gt.V(t, p.Task).Equal(prompt.TaskMatch)
	gt.V(t, p.MaxOutputTokens).Equal(int32(1000))
	gt.S(t, p.Text).Contains(`"John? Here."`)
	gt.S(t, p.Text).Contains("John Smith, Jane Doe")
	gt.S(t, p.Text).Contains(`Return ONLY a valid JSON array like: ["John Smith", "Jane Doe"]`)
}

func TestMatchPromptDeterministic(t *testing.T) {
	first, err := prompt.Match("transcript", testRoster())
	gt.NoError(t, err)
	second, err := prompt.Match("transcript", testRoster())
	gt.NoError(t, err)

	gt.V(t, first.Text).Equal(second.Text)
}

func TestAnalyzePrompt(t *testing.T) {
	summaries := []*model.ParticipationSummary{
		{
			Student:          testRoster()[0],
			Total:            2,
			Relevant:         1,
			SomewhatRelevant: 1,
			Comments: []*model.ParticipationComment{
				{Date: "2026-03-02", Comment: "asked about normalization"},
				{Date: "2026-03-03", Comment: "answered a peer's question"},
			},
		},
		{Student: testRoster()[1]},
	}

	p, err := prompt.Analyze(summaries)
	gt.NoError(t, err)

	gt.V(t, p.Task).Equal(prompt.TaskAnalyze)
	gt.V(t, p.MaxOutputTokens).Equal(int32(2000))
	gt.S(t, p.Text).Contains("Student: John Smith (CS001)")
	gt.S(t, p.Text).Contains("Total Contributions: 2")
	gt.S(t, p.Text).Contains("- [2026-03-02] asked about normalization")

	// Zero-contribution students are still enumerated.
	gt.S(t, p.Text).Contains("Student: Jane Doe (CS002)")
	gt.S(t, p.Text).Contains("(no contributions recorded)")

	gt.S(t, p.Text).Contains("Top 3 most engaged students")
}

func TestAnalyzePromptDeterministic(t *testing.T) {
	summaries := []*model.ParticipationSummary{
		{Student: testRoster()[0], Total: 1, Relevant: 1,
			Comments: []*model.ParticipationComment{{Date: "2026-03-02", Comment: "remark"}}},
	}

	first, err := prompt.Analyze(summaries)
	gt.NoError(t, err)
	second, err := prompt.Analyze(summaries)
	gt.NoError(t, err)
	gt.V(t, first.Text).Equal(second.Text)
}

func TestReportPromptAttendance(t *testing.T) {
	class := &model.Class{ID: "class-1", Name: "Intro to Databases"}
	attendance := []*model.AttendanceSummary{
		{Student: testRoster()[0], PresentCount: 1, TotalCount: 1, Percentage: 1},
		{Student: testRoster()[1], PresentCount: 0, TotalCount: 1},
	}

	p, err := prompt.Report(class, "2026-03-02", model.ReportTypeAttendance, attendance, nil)
	gt.NoError(t, err)

	gt.V(t, p.Task).Equal(prompt.TaskReport)
	gt.V(t, p.MaxOutputTokens).Equal(int32(1500))
	gt.S(t, p.Text).Contains("Attendance Report for Intro to Databases")
	gt.S(t, p.Text).Contains("Date: March 2, 2026")
	gt.S(t, p.Text).Contains("Present: 1/2 students (50.0%)")
	gt.S(t, p.Text).Contains("- John Smith (CS001)")
	gt.S(t, p.Text).Contains("- Jane Doe (CS002)")
	gt.S(t, p.Text).NotContains("Participation Summary")
}

func TestReportPromptParticipation(t *testing.T) {
	class := &model.Class{ID: "class-1", Name: "Intro to Databases"}
	participation := []*model.ParticipationSummary{
		{
			Student: testRoster()[0],
			Total:   1,
			Comments: []*model.ParticipationComment{
				{Date: "2026-03-02", Comment: "asked about joins", Relevance: model.RelevanceRelevant},
			},
		},
	}

	p, err := prompt.Report(class, "2026-03-02", model.ReportTypeParticipation, nil, participation)
	gt.NoError(t, err)

	gt.S(t, p.Text).NotContains("Attendance Report")
	gt.S(t, p.Text).Contains("Total Contributions: 1")
	gt.S(t, p.Text).Contains("- John Smith (CS001): asked about joins [relevant]")
}

func TestReportPromptDeterministic(t *testing.T) {
	class := &model.Class{ID: "class-1", Name: "Intro to Databases"}
	attendance := []*model.AttendanceSummary{
		{Student: testRoster()[0], PresentCount: 1, TotalCount: 1, Percentage: 1},
	}

	first, err := prompt.Report(class, "2026-03-02", model.ReportTypeAttendance, attendance, nil)
	gt.NoError(t, err)
	second, err := prompt.Report(class, "2026-03-02", model.ReportTypeAttendance, attendance, nil)
	gt.NoError(t, err)
	gt.V(t, first.Text).Equal(second.Text)
}

func TestTranscribePrompt(t *testing.T) {
	p := prompt.Transcribe()
	gt.V(t, p.Task).Equal(prompt.TaskTranscribe)
	gt.V(t, p.MaxOutputTokens).Equal(int32(2000))
	gt.S(t, p.Text).Contains("Transcribe the following audio recording")
}
