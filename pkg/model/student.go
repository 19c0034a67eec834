package model

import (
	"time"
)

type ClassID string

type StudentID string

// Class is the course a roster belongs to.
type Class struct {
	ID          ClassID   `firestore:"id" json:"id"`
	Name        string    `firestore:"name" json:"name"`
	Description string    `firestore:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `firestore:"created_at" json:"createdAt"`
}

// Student is one roster entry. The roster is the closed vocabulary for
// name matching; identity fields never change after creation.
type Student struct {
	ID         StudentID `firestore:"id" json:"id"`
	ClassID    ClassID   `firestore:"class_id" json:"classId"`
	RollNumber string    `firestore:"roll_no" json:"rollNo"`
	Name       string    `firestore:"name" json:"name"`
	Email      string    `firestore:"email,omitempty" json:"email,omitempty"`
	SeatGroup  string    `firestore:"seat_group,omitempty" json:"seatGroup,omitempty"`
	SeatIndex  int       `firestore:"seat_index,omitempty" json:"seatIndex,omitempty"`
	CreatedAt  time.Time `firestore:"created_at" json:"createdAt"`
}
