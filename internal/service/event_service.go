package service

import (
	"context"
	"errors"
	"strings"
	"time"

	dom "github.com/marquisSam/House-hub/internal/domain"
	"github.com/marquisSam/House-hub/internal/dto"
	"github.com/marquisSam/House-hub/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// EventService is storage CRUD for calendar events. Events carry no business
// rules and no relations to todos or users.
type EventService struct {
	store repo.Store
	log   *zap.Logger
}

func NewEventService(store repo.Store, log *zap.Logger) *EventService {
	return &EventService{store: store, log: log}
}

func (s *EventService) ListAll(ctx context.Context) ([]dom.Event, error) {
	return s.store.Events().List(ctx)
}

// ListRange returns events overlapping the [from, to] window, for calendar
// views.
func (s *EventService) ListRange(ctx context.Context, from, to time.Time) ([]dom.Event, error) {
	return s.store.Events().ListRange(ctx, from, to)
}

func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (dom.Event, error) {
	e, err := s.store.Events().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Event{}, ErrEventNotFound
		}
		return dom.Event{}, err
	}
	return e, nil
}

func (s *EventService) Create(ctx context.Context, req dto.CreateEventRequest) (dom.Event, error) {
	start := req.StartDate.Ptr()
	end := req.EndDate.Ptr()
	if start == nil || end == nil {
		// binding:"required" already rejects these; belt for direct callers
		return dom.Event{}, errors.New("start_date and end_date are required")
	}
	priority := defaultPriority
	if req.Priority != nil {
		priority = *req.Priority
	}
	e := dom.Event{
		Title:                 strings.TrimSpace(req.Title),
		Description:           trimPtr(req.Description),
		StartDate:             *start,
		EndDate:               *end,
		Location:              req.Location,
		IsAllDay:              req.IsAllDay,
		Category:              trimPtr(req.Category),
		Color:                 req.Color,
		IsRecurring:           req.IsRecurring,
		RecurrencePattern:     req.RecurrencePattern,
		RecurrenceEndDate:     recurrenceEnd(req.RecurrenceEndDate),
		HasReminder:           req.HasReminder,
		ReminderMinutesBefore: req.ReminderMinutesBefore,
		Priority:              priority,
	}
	created, err := s.store.Events().Create(ctx, e)
	if err != nil {
		s.log.Error("create event", zap.Error(err))
		return dom.Event{}, err
	}
	return created, nil
}

// Update merges only the non-nil fields of req onto the stored event.
func (s *EventService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (dom.Event, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return dom.Event{}, err
	}

	patch := existing
	if req.Title != nil {
		patch.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		patch.Description = trimPtr(req.Description)
	}
	if req.StartDate != nil && req.StartDate.Ptr() != nil {
		patch.StartDate = *req.StartDate.Ptr()
	}
	if req.EndDate != nil && req.EndDate.Ptr() != nil {
		patch.EndDate = *req.EndDate.Ptr()
	}
	if req.Location != nil {
		patch.Location = req.Location
	}
	if req.IsAllDay != nil {
		patch.IsAllDay = *req.IsAllDay
	}
	if req.Category != nil {
		patch.Category = trimPtr(req.Category)
	}
	if req.Color != nil {
		patch.Color = req.Color
	}
	if req.IsRecurring != nil {
		patch.IsRecurring = *req.IsRecurring
	}
	if req.RecurrencePattern != nil {
		patch.RecurrencePattern = req.RecurrencePattern
	}
	if req.RecurrenceEndDate != nil {
		patch.RecurrenceEndDate = req.RecurrenceEndDate.Ptr()
	}
	if req.HasReminder != nil {
		patch.HasReminder = *req.HasReminder
	}
	if req.ReminderMinutesBefore != nil {
		patch.ReminderMinutesBefore = req.ReminderMinutesBefore
	}
	if req.Priority != nil {
		patch.Priority = *req.Priority
	}

	updated, err := s.store.Events().Update(ctx, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Event{}, ErrEventNotFound
		}
		s.log.Error("update event", zap.Error(err), zap.String("event_id", id.String()))
		return dom.Event{}, err
	}
	return updated, nil
}

// Delete removes the event and returns its pre-deletion snapshot.
func (s *EventService) Delete(ctx context.Context, id uuid.UUID) (dom.Event, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return dom.Event{}, err
	}
	deleted, err := s.store.Events().Delete(ctx, id)
	if err != nil {
		s.log.Error("delete event", zap.Error(err), zap.String("event_id", id.String()))
		return dom.Event{}, err
	}
	if !deleted {
		return dom.Event{}, ErrEventNotFound
	}
	return existing, nil
}

func recurrenceEnd(d *dto.DateTime) *time.Time {
	if d == nil {
		return nil
	}
	return d.Ptr()
}
