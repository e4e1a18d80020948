package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/marquisSam/House-hub/internal/dto"
	"github.com/marquisSam/House-hub/internal/service"

	"github.com/google/uuid"
)

func mustCreateEvent(t *testing.T, f *fixture, raw string) uuid.UUID {
	t.Helper()
	req := decodeReq[dto.CreateEventRequest](t, raw)
	e, err := f.events.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return e.ID
}

func TestCreateEventDefaults(t *testing.T) {
	f := newFixture()

	req := decodeReq[dto.CreateEventRequest](t,
		`{"title":"Dentist","start_date":"2026-09-01T10:00:00Z","end_date":"2026-09-01T11:00:00Z"}`)
	e, err := f.events.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.Priority != 3 {
		t.Errorf("priority = %d, want default 3", e.Priority)
	}
	if e.IsAllDay || e.IsRecurring || e.HasReminder {
		t.Errorf("boolean defaults wrong: %+v", e)
	}
}

func TestCreateEventMissingDates(t *testing.T) {
	f := newFixture()

	_, err := f.events.Create(context.Background(), dto.CreateEventRequest{Title: "No dates"})
	if err == nil {
		t.Fatal("create without dates succeeded")
	}
}

func TestListRangeOverlap(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	inside := mustCreateEvent(t, f,
		`{"title":"Inside","start_date":"2026-09-10T10:00:00Z","end_date":"2026-09-10T12:00:00Z"}`)
	straddling := mustCreateEvent(t, f,
		`{"title":"Straddling","start_date":"2026-09-09T23:00:00Z","end_date":"2026-09-10T01:00:00Z"}`)
	mustCreateEvent(t, f,
		`{"title":"Before","start_date":"2026-09-01T10:00:00Z","end_date":"2026-09-01T11:00:00Z"}`)
	mustCreateEvent(t, f,
		`{"title":"After","start_date":"2026-09-20T10:00:00Z","end_date":"2026-09-20T11:00:00Z"}`)

	from := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)
	list, err := f.events.ListRange(ctx, from, to)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("range hits = %d, want 2", len(list))
	}
	got := map[uuid.UUID]bool{list[0].ID: true, list[1].ID: true}
	if !got[inside] || !got[straddling] {
		t.Errorf("range returned wrong events: %v", list)
	}
}

func TestUpdateEventPartialMerge(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := mustCreateEvent(t, f,
		`{"title":"Party","start_date":"2026-09-10T18:00:00Z","end_date":"2026-09-10T23:00:00Z","location":"Garden"}`)

	req := decodeReq[dto.UpdateEventRequest](t, `{"title":"Birthday party"}`)
	updated, err := f.events.Update(ctx, id, req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Birthday party" {
		t.Errorf("title = %q", updated.Title)
	}
	if updated.Location == nil || *updated.Location != "Garden" {
		t.Errorf("location changed by partial update: %v", updated.Location)
	}
	if !updated.StartDate.Equal(time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)) {
		t.Errorf("start date changed by partial update: %v", updated.StartDate)
	}
}

func TestDeleteEvent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := mustCreateEvent(t, f,
		`{"title":"Doomed","start_date":"2026-09-10T10:00:00Z","end_date":"2026-09-10T11:00:00Z"}`)

	snapshot, err := f.events.Delete(ctx, id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if snapshot.Title != "Doomed" {
		t.Errorf("snapshot = %+v", snapshot)
	}
	if _, err := f.events.GetByID(ctx, id); err != service.ErrEventNotFound {
		t.Errorf("get after delete: err = %v, want ErrEventNotFound", err)
	}
	if _, err := f.events.Delete(ctx, id); err != service.ErrEventNotFound {
		t.Errorf("second delete: err = %v, want ErrEventNotFound", err)
	}
}
