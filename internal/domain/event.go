package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a calendar entry. It has no relation to todos or users and no
// business rules beyond storage.
type Event struct {
	ID          uuid.UUID
	Title       string
	Description *string
	StartDate   time.Time
	EndDate     time.Time
	Location    *string
	IsAllDay    bool
	Category    *string
	Color       *string // hex, e.g. #FF5733

	IsRecurring       bool
	RecurrencePattern *string // Daily, Weekly, Monthly, Yearly
	RecurrenceEndDate *time.Time

	HasReminder           bool
	ReminderMinutesBefore *int

	Priority int // 1 = High, 5 = Low

	CreatedAt time.Time
	UpdatedAt time.Time
}
