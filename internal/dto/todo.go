package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTodoRequest struct {
	Title           string      `json:"title" binding:"required,min=1,max=200"`
	Description     *string     `json:"description" binding:"omitempty,max=1000"`
	DueDate         DateTime    `json:"due_date"` // optional: "2026-02-19" or RFC3339
	Priority        *int        `json:"priority" binding:"omitempty,min=1,max=5"` // default 3
	Category        *string     `json:"category" binding:"omitempty,max=50"`
	AssignedUserIDs []uuid.UUID `json:"assigned_user_ids"`
}

// UpdateTodoRequest is a partial update: nil = не менять, значение = поставить.
// AssignedUserIDs present (even empty) replaces the assignment set exactly.
type UpdateTodoRequest struct {
	Title           *string      `json:"title" binding:"omitempty,min=1,max=200"`
	Description     *string      `json:"description" binding:"omitempty,max=1000"`
	IsCompleted     *bool        `json:"is_completed"`
	DueDate         *DateTime    `json:"due_date"`
	Priority        *int         `json:"priority" binding:"omitempty,min=1,max=5"`
	Category        *string      `json:"category" binding:"omitempty,max=50"`
	AssignedUserIDs *[]uuid.UUID `json:"assigned_user_ids"`
}

type TodoResponse struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	IsCompleted bool           `json:"is_completed"`
	CompletedAt *time.Time     `json:"completed_at"`
	DueDate     *time.Time     `json:"due_date"`
	Priority    int            `json:"priority"`
	Category    *string        `json:"category"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Users       []UserResponse `json:"users"`
}

type ListTodosResponse struct {
	Items []TodoResponse `json:"items"`
}
