package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=200"`
	Description *string  `json:"description" binding:"omitempty,max=1000"`
	StartDate   DateTime `json:"start_date" binding:"required"`
	EndDate     DateTime `json:"end_date" binding:"required"`
	Location    *string  `json:"location" binding:"omitempty,max=100"`
	IsAllDay    bool     `json:"is_all_day"`
	Category    *string  `json:"category" binding:"omitempty,max=50"`
	Color       *string  `json:"color" binding:"omitempty,max=7"`

	IsRecurring       bool      `json:"is_recurring"`
	RecurrencePattern *string   `json:"recurrence_pattern" binding:"omitempty,max=50"`
	RecurrenceEndDate *DateTime `json:"recurrence_end_date"`

	HasReminder           bool `json:"has_reminder"`
	ReminderMinutesBefore *int `json:"reminder_minutes_before" binding:"omitempty,min=0"`

	Priority *int `json:"priority" binding:"omitempty,min=1,max=5"` // default 3
}

// UpdateEventRequest is a partial update: nil fields keep their stored value.
type UpdateEventRequest struct {
	Title       *string   `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string   `json:"description" binding:"omitempty,max=1000"`
	StartDate   *DateTime `json:"start_date"`
	EndDate     *DateTime `json:"end_date"`
	Location    *string   `json:"location" binding:"omitempty,max=100"`
	IsAllDay    *bool     `json:"is_all_day"`
	Category    *string   `json:"category" binding:"omitempty,max=50"`
	Color       *string   `json:"color" binding:"omitempty,max=7"`

	IsRecurring       *bool     `json:"is_recurring"`
	RecurrencePattern *string   `json:"recurrence_pattern" binding:"omitempty,max=50"`
	RecurrenceEndDate *DateTime `json:"recurrence_end_date"`

	HasReminder           *bool `json:"has_reminder"`
	ReminderMinutesBefore *int  `json:"reminder_minutes_before" binding:"omitempty,min=0"`

	Priority *int `json:"priority" binding:"omitempty,min=1,max=5"`
}

type EventResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	Location    *string    `json:"location"`
	IsAllDay    bool       `json:"is_all_day"`
	Category    *string    `json:"category"`
	Color       *string    `json:"color"`

	IsRecurring       bool       `json:"is_recurring"`
	RecurrencePattern *string    `json:"recurrence_pattern"`
	RecurrenceEndDate *time.Time `json:"recurrence_end_date"`

	HasReminder           bool `json:"has_reminder"`
	ReminderMinutesBefore *int `json:"reminder_minutes_before"`

	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListEventsResponse struct {
	Items []EventResponse `json:"items"`
}
