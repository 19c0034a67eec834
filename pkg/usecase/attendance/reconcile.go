package attendance

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"

	"github.com/e-c-centric/ClassHelper/pkg/model"
	"github.com/e-c-centric/ClassHelper/pkg/parse"
	"github.com/e-c-centric/ClassHelper/pkg/prompt"
	"github.com/e-c-centric/ClassHelper/pkg/utils/logging"
)

// ReconcileInput identifies one attendance-taking pass over a transcript.
type ReconcileInput struct {
	ClassID       model.ClassID
	Date          model.Date
	Transcription string
}

// ReconcileResult reports what was written. Matched echoes the claimed
// names the model extracted; Ambiguous lists students that were marked
// present because of a mention that also matched someone else.
type ReconcileResult struct {
	Matched      []string
	TotalPresent int
	Ambiguous    []string
}

// Reconcile turns a transcript into attendance rows for every roster
// student and upserts them. The model extracts claimed names from the
// transcript; unparseable model output degrades to zero claims, which
// marks everyone absent rather than failing the request. Only a roster
// miss or a store failure is an error.
func (u *UseCase) Reconcile(ctx context.Context, input ReconcileInput) (*ReconcileResult, error) {
	if err := input.Date.Validate(); err != nil {
		return nil, err
	}

	roster, err := u.repo.ListStudents(ctx, input.ClassID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list students", goerr.V("class_id", input.ClassID))
	}
	if len(roster) == 0 {
		return nil, goerr.Wrap(model.ErrRosterNotFound, "", goerr.V("class_id", input.ClassID))
	}

	claims, err := u.extractClaims(ctx, input.Transcription, roster)
	if err != nil {
		return nil, err
	}

	results := Match(roster, claims)

	records := make([]*model.AttendanceRecord, 0, len(results))
	present := 0
	var ambiguous []string
	for _, r := range results {
		if r.Matched {
			present++
		}
		if r.Ambiguous {
			ambiguous = append(ambiguous, r.Name)
		}
		records = append(records, &model.AttendanceRecord{
			ClassID:   input.ClassID,
			StudentID: r.StudentID,
			Date:      input.Date,
			Present:   r.Matched,
		})
	}

	if len(ambiguous) > 0 {
		logging.From(ctx).Warn("ambiguous mentions marked all candidates present",
			"class_id", input.ClassID, "date", input.Date, "students", ambiguous)
	}

	if err := u.repo.UpsertAttendance(ctx, records); err != nil {
		return nil, goerr.Wrap(err, "failed to upsert attendance records",
			goerr.V("class_id", input.ClassID), goerr.V("date", input.Date))
	}

	return &ReconcileResult{
		Matched:      claims,
		TotalPresent: present,
		Ambiguous:    ambiguous,
	}, nil
}

// extractClaims asks the model which roster names the transcript
// mentions. The response schema requests a bare string array, but the
// output still goes through the recovering parser: a model that answers
// in prose yields an empty claim list, not an error.
func (u *UseCase) extractClaims(ctx context.Context, transcription string, roster []*model.Student) ([]string, error) {
	p, err := prompt.Match(transcription, roster)
	if err != nil {
		return nil, err
	}

	maxTokens := p.MaxOutputTokens
	config := &genai.GenerateContentConfig{
		MaxOutputTokens:  maxTokens,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:        genai.TypeArray,
			Description: "Full names of students mentioned in the transcription",
			Items: &genai.Schema{
				Type: genai.TypeString,
			},
		},
	}

	contents := []*genai.Content{
		genai.NewContentFromText(p.Text, genai.RoleUser),
	}

	resp, err := u.gemini.GenerateContent(ctx, contents, config)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to extract names from transcription")
	}

	return parse.NameList(parse.Text(resp)), nil
}
