package domain

import (
	"time"

	"github.com/google/uuid"
)

// Assignment is one row of the todo_users join table: "this user is assigned
// this task". The (TodoID, UserID) pair is unique.
type Assignment struct {
	ID         uuid.UUID
	TodoID     uuid.UUID
	UserID     uuid.UUID
	AssignedAt time.Time

	// Populated by AssignmentRepo.Get only.
	Todo *Todo
	User *User
}
