package report

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"

	"github.com/e-c-centric/ClassHelper/pkg/model"
	"github.com/e-c-centric/ClassHelper/pkg/parse"
	"github.com/e-c-centric/ClassHelper/pkg/prompt"
)

// AnalyzeInput scopes one participation analysis run.
type AnalyzeInput struct {
	ClassID model.ClassID
	Range   model.DateRange
}

// AnalyzeResult holds the synthesized analysis text.
type AnalyzeResult struct {
	Analysis string
}

// AnalyzeParticipation summarizes all participation comments in the
// window and asks the model for an engagement analysis. A window with no
// comments short-circuits with model.ErrNoEventRows before any prompt is
// built; the model's narrative output is returned verbatim.
func (u *UseCase) AnalyzeParticipation(ctx context.Context, input AnalyzeInput) (*AnalyzeResult, error) {
	if err := input.Range.Validate(); err != nil {
		return nil, err
	}

	students, err := u.repo.ListStudents(ctx, input.ClassID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list students", goerr.V("class_id", input.ClassID))
	}
	if len(students) == 0 {
		return nil, goerr.Wrap(model.ErrRosterNotFound, "", goerr.V("class_id", input.ClassID))
	}

	comments, err := u.repo.ListComments(ctx, input.ClassID, input.Range)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list comments", goerr.V("class_id", input.ClassID))
	}
	if len(comments) == 0 {
		return nil, goerr.Wrap(model.ErrNoEventRows, "no participation comments in range",
			goerr.V("class_id", input.ClassID), goerr.V("from", input.Range.From), goerr.V("to", input.Range.To))
	}

	summaries := SummarizeParticipation(students, comments, input.Range)

	p, err := prompt.Analyze(summaries)
	if err != nil {
		return nil, err
	}

	text, err := u.generateText(ctx, p)
	if err != nil {
		return nil, err
	}

	return &AnalyzeResult{Analysis: text}, nil
}

// generateText runs one narrative completion and returns the raw text.
func (u *UseCase) generateText(ctx context.Context, p prompt.Prompt) (string, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: p.MaxOutputTokens,
	}
	contents := []*genai.Content{
		genai.NewContentFromText(p.Text, genai.RoleUser),
	}

	resp, err := u.gemini.GenerateContent(ctx, contents, config)
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content", goerr.V("task", p.Task))
	}

	return parse.Text(resp), nil
}
