package model

import (
	"time"

	"github.com/google/uuid"
)

type CommentID string

func NewCommentID() CommentID {
	return CommentID(uuid.New().String())
}

// Relevance classifies how on-topic a participation comment was.
type Relevance string

const (
	RelevanceRelevant         Relevance = "relevant"
	RelevanceSomewhatRelevant Relevance = "somewhat_relevant"
	RelevanceNotRelevant      Relevance = "not_relevant"
)

func (r Relevance) Validate() error {
	switch r {
	case RelevanceRelevant, RelevanceSomewhatRelevant, RelevanceNotRelevant:
		return nil
	default:
		return ErrInvalidRelevance
	}
}

// ParticipationComment is one logged contribution. Comments are
// append-only; history is the product, so nothing updates them in place.
type ParticipationComment struct {
	ID        CommentID `firestore:"id" json:"id"`
	ClassID   ClassID   `firestore:"class_id" json:"classId"`
	StudentID StudentID `firestore:"student_id" json:"studentId"`
	Date      Date      `firestore:"date" json:"date"`
	Comment   string    `firestore:"comment" json:"comment"`
	Relevance Relevance `firestore:"relevance" json:"relevance"`
	CreatedAt time.Time `firestore:"created_at" json:"createdAt"`
}
