package handlers

import (
	"net/http"
	"time"

	dom "github.com/marquisSam/House-hub/internal/domain"
	"github.com/marquisSam/House-hub/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func parseUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// parseTimeParam accepts RFC3339 or date-only (start of day UTC).
func parseTimeParam(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func todoToResponse(t dom.Todo) dto.TodoResponse {
	users := make([]dto.UserResponse, len(t.Users))
	for i := range t.Users {
		users[i] = userToResponse(t.Users[i])
	}
	return dto.TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		CompletedAt: t.CompletedAt,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Category:    t.Category,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Users:       users,
	}
}

func todosToResponses(list []dom.Todo) []dto.TodoResponse {
	out := make([]dto.TodoResponse, len(list))
	for i := range list {
		out[i] = todoToResponse(list[i])
	}
	return out
}

func userToResponse(u dom.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
		Address:     u.Address,
		City:        u.City,
		PostalCode:  u.PostalCode,
		Country:     u.Country,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func usersToResponses(list []dom.User) []dto.UserResponse {
	out := make([]dto.UserResponse, len(list))
	for i := range list {
		out[i] = userToResponse(list[i])
	}
	return out
}

func eventToResponse(e dom.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:                    e.ID,
		Title:                 e.Title,
		Description:           e.Description,
		StartDate:             e.StartDate,
		EndDate:               e.EndDate,
		Location:              e.Location,
		IsAllDay:              e.IsAllDay,
		Category:              e.Category,
		Color:                 e.Color,
		IsRecurring:           e.IsRecurring,
		RecurrencePattern:     e.RecurrencePattern,
		RecurrenceEndDate:     e.RecurrenceEndDate,
		HasReminder:           e.HasReminder,
		ReminderMinutesBefore: e.ReminderMinutesBefore,
		Priority:              e.Priority,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

func eventsToResponses(list []dom.Event) []dto.EventResponse {
	out := make([]dto.EventResponse, len(list))
	for i := range list {
		out[i] = eventToResponse(list[i])
	}
	return out
}

func assignmentToResponse(a dom.Assignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:         a.ID,
		TodoID:     a.TodoID,
		UserID:     a.UserID,
		AssignedAt: a.AssignedAt,
	}
}
