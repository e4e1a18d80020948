package repo

import (
	"context"
	"time"

	dom "github.com/marquisSam/House-hub/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const eventColumns = `id, title, description, start_date, end_date, location, is_all_day, category, color, is_recurring, recurrence_pattern, recurrence_end_date, has_reminder, reminder_minutes_before, priority, created_at, updated_at`

type EventRepo interface {
	Create(ctx context.Context, e dom.Event) (dom.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (dom.Event, error)
	List(ctx context.Context) ([]dom.Event, error)
	// ListRange returns events overlapping [from, to].
	ListRange(ctx context.Context, from, to time.Time) ([]dom.Event, error)
	Update(ctx context.Context, e dom.Event) (dom.Event, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type PGEventRepo struct {
	db DB
}

func NewPGEventRepo(db DB) *PGEventRepo {
	return &PGEventRepo{db: db}
}

func (r *PGEventRepo) Create(ctx context.Context, e dom.Event) (dom.Event, error) {
	query := `
		INSERT INTO events (title, description, start_date, end_date, location, is_all_day, category, color,
		                    is_recurring, recurrence_pattern, recurrence_end_date, has_reminder, reminder_minutes_before, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + eventColumns
	row := r.db.QueryRow(ctx, query,
		e.Title, e.Description, e.StartDate, e.EndDate, e.Location, e.IsAllDay, e.Category, e.Color,
		e.IsRecurring, e.RecurrencePattern, e.RecurrenceEndDate, e.HasReminder, e.ReminderMinutesBefore, e.Priority,
	)
	return scanEvent(row)
}

func (r *PGEventRepo) GetByID(ctx context.Context, id uuid.UUID) (dom.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.db.QueryRow(ctx, query, id))
}

func (r *PGEventRepo) List(ctx context.Context) ([]dom.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY start_date ASC`
	return r.queryEvents(ctx, query)
}

func (r *PGEventRepo) ListRange(ctx context.Context, from, to time.Time) ([]dom.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events WHERE start_date <= $2 AND end_date >= $1
		ORDER BY start_date ASC`
	return r.queryEvents(ctx, query, from, to)
}

func (r *PGEventRepo) Update(ctx context.Context, e dom.Event) (dom.Event, error) {
	query := `
		UPDATE events
		SET title = $2, description = $3, start_date = $4, end_date = $5, location = $6,
		    is_all_day = $7, category = $8, color = $9, is_recurring = $10,
		    recurrence_pattern = $11, recurrence_end_date = $12, has_reminder = $13,
		    reminder_minutes_before = $14, priority = $15, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + eventColumns
	row := r.db.QueryRow(ctx, query,
		e.ID, e.Title, e.Description, e.StartDate, e.EndDate, e.Location,
		e.IsAllDay, e.Category, e.Color, e.IsRecurring,
		e.RecurrencePattern, e.RecurrenceEndDate, e.HasReminder,
		e.ReminderMinutesBefore, e.Priority,
	)
	return scanEvent(row)
}

func (r *PGEventRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PGEventRepo) queryEvents(ctx context.Context, query string, args ...any) ([]dom.Event, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanEvent(row pgx.Row) (dom.Event, error) {
	var e dom.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.Location,
		&e.IsAllDay, &e.Category, &e.Color, &e.IsRecurring, &e.RecurrencePattern,
		&e.RecurrenceEndDate, &e.HasReminder, &e.ReminderMinutesBefore,
		&e.Priority, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}
