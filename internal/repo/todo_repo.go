package repo

import (
	"context"
	"fmt"
	"strings"

	dom "github.com/marquisSam/House-hub/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const todoColumns = `id, title, description, is_completed, completed_at, due_date, priority, category, created_at, updated_at`

// TodoFilter narrows and orders ListWithUsers. Zero value = everything,
// newest first.
type TodoFilter struct {
	Completed *bool
	Category  *string
	Priority  *int
	SortBy    string // created_at, due_date, priority, title
	Order     string // asc or desc
	Limit     int
	Offset    int
}

type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	GetByID(ctx context.Context, id uuid.UUID) (dom.Todo, error)
	// GetWithUsers returns the todo with its assigned users populated.
	GetWithUsers(ctx context.Context, id uuid.UUID) (dom.Todo, error)
	ListWithUsers(ctx context.Context, f TodoFilter) ([]dom.Todo, error)
	SearchWithUsers(ctx context.Context, q string) ([]dom.Todo, error)
	OverdueWithUsers(ctx context.Context) ([]dom.Todo, error)
	// Update writes every business field of t; the service merges first.
	Update(ctx context.Context, t dom.Todo) (dom.Todo, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type PGTodoRepo struct {
	db DB
}

func NewPGTodoRepo(db DB) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		INSERT INTO todos (title, description, due_date, priority, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + todoColumns
	row := r.db.QueryRow(ctx, query, t.Title, t.Description, t.DueDate, t.Priority, t.Category)
	return scanTodo(row)
}

func (r *PGTodoRepo) GetByID(ctx context.Context, id uuid.UUID) (dom.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`
	return scanTodo(r.db.QueryRow(ctx, query, id))
}

func (r *PGTodoRepo) GetWithUsers(ctx context.Context, id uuid.UUID) (dom.Todo, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return dom.Todo{}, err
	}
	list := []dom.Todo{t}
	if err := r.attachUsers(ctx, list); err != nil {
		return dom.Todo{}, err
	}
	return list[0], nil
}

func (r *PGTodoRepo) ListWithUsers(ctx context.Context, f TodoFilter) ([]dom.Todo, error) {
	var (
		where []string
		args  []any
	)
	if f.Completed != nil {
		args = append(args, *f.Completed)
		where = append(where, fmt.Sprintf("is_completed = $%d", len(args)))
	}
	if f.Category != nil {
		args = append(args, *f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Priority != nil {
		args = append(args, *f.Priority)
		where = append(where, fmt.Sprintf("priority = $%d", len(args)))
	}

	query := `SELECT ` + todoColumns + ` FROM todos`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + sortClause(f.SortBy, f.Order)
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	list, err := r.queryTodos(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := r.attachUsers(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PGTodoRepo) SearchWithUsers(ctx context.Context, q string) ([]dom.Todo, error) {
	pattern := "%" + q + "%"
	query := `
		SELECT ` + todoColumns + `
		FROM todos WHERE title ILIKE $1 OR description ILIKE $1
		ORDER BY created_at DESC`
	list, err := r.queryTodos(ctx, query, pattern)
	if err != nil {
		return nil, err
	}
	if err := r.attachUsers(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PGTodoRepo) OverdueWithUsers(ctx context.Context) ([]dom.Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos WHERE is_completed = FALSE AND due_date IS NOT NULL AND due_date < NOW()
		ORDER BY due_date ASC`
	list, err := r.queryTodos(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := r.attachUsers(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PGTodoRepo) Update(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		UPDATE todos
		SET title = $2, description = $3, is_completed = $4, completed_at = $5,
		    due_date = $6, priority = $7, category = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + todoColumns
	row := r.db.QueryRow(ctx, query,
		t.ID, t.Title, t.Description, t.IsCompleted, t.CompletedAt,
		t.DueDate, t.Priority, t.Category,
	)
	return scanTodo(row)
}

func (r *PGTodoRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PGTodoRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM todos WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *PGTodoRepo) queryTodos(ctx context.Context, query string, args ...any) ([]dom.Todo, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// attachUsers fills Users for every todo in list with one bulk join query.
func (r *PGTodoRepo) attachUsers(ctx context.Context, list []dom.Todo) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(list))
	index := make(map[uuid.UUID]int, len(list))
	for i := range list {
		ids[i] = list[i].ID
		index[list[i].ID] = i
		list[i].Users = []dom.User{}
	}

	query := `
		SELECT tu.todo_id, ` + prefixedUserColumns("u") + `
		FROM todo_users tu
		JOIN users u ON u.id = tu.user_id
		WHERE tu.todo_id = ANY($1)
		ORDER BY tu.assigned_at ASC`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var todoID uuid.UUID
		u, err := scanUserAfter(rows, &todoID)
		if err != nil {
			return err
		}
		i := index[todoID]
		list[i].Users = append(list[i].Users, u)
	}
	return rows.Err()
}

func scanTodo(row pgx.Row) (dom.Todo, error) {
	var t dom.Todo
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.IsCompleted, &t.CompletedAt,
		&t.DueDate, &t.Priority, &t.Category, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func sortClause(sortBy, order string) string {
	col := "created_at"
	switch sortBy {
	case "due_date", "priority", "title", "updated_at":
		col = sortBy
	}
	dir := "DESC"
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}
