package dto

import (
	"time"

	"github.com/google/uuid"
)

type AssignmentResponse struct {
	ID         uuid.UUID `json:"id"`
	TodoID     uuid.UUID `json:"todo_id"`
	UserID     uuid.UUID `json:"user_id"`
	AssignedAt time.Time `json:"assigned_at"`
}
