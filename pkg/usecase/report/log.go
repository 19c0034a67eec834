package report

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/e-c-centric/ClassHelper/pkg/model"
)

// LogInput is one participation observation to record.
type LogInput struct {
	ClassID   model.ClassID
	StudentID model.StudentID
	Date      model.Date
	Comment   string
	Relevance model.Relevance
}

// LogParticipation appends one participation comment. Comments are never
// updated in place; repeated logging for the same student and day adds
// rows, which is what the analysis aggregates over.
func (u *UseCase) LogParticipation(ctx context.Context, input LogInput) (*model.ParticipationComment, error) {
	if err := input.Relevance.Validate(); err != nil {
		return nil, goerr.Wrap(err, "", goerr.V("relevance", input.Relevance))
	}
	if err := input.Date.Validate(); err != nil {
		return nil, err
	}
	if input.Comment == "" {
		return nil, goerr.New("comment is empty", goerr.V("student_id", input.StudentID))
	}

	comment := &model.ParticipationComment{
		ID:        model.NewCommentID(),
		ClassID:   input.ClassID,
		StudentID: input.StudentID,
		Date:      input.Date,
		Comment:   input.Comment,
		Relevance: input.Relevance,
		CreatedAt: time.Now(),
	}

	if err := u.repo.PutComment(ctx, comment); err != nil {
		return nil, goerr.Wrap(err, "failed to store participation comment",
			goerr.V("comment_id", comment.ID))
	}

	return comment, nil
}
