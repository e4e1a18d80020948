package domain

import (
	"time"

	"github.com/google/uuid"
)

// Domain entity: бизнес-объект (истина).
// Не зависит от Gin, Postgres, Redis.
type Todo struct {
	ID          uuid.UUID
	Title       string
	Description *string
	IsCompleted bool
	CompletedAt *time.Time
	DueDate     *time.Time
	Priority    int
	Category    *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Users assigned through the todo_users join table. Populated only by
	// repository methods that say so.
	Users []User
}
