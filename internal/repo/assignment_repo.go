package repo

import (
	"context"

	dom "github.com/marquisSam/House-hub/internal/domain"

	"github.com/google/uuid"
)

// AssignmentRepo manages the todo_users join table. Это единственное место,
// где создаются строки назначения.
type AssignmentRepo interface {
	Create(ctx context.Context, todoID, userID uuid.UUID) (dom.Assignment, error)
	Delete(ctx context.Context, todoID, userID uuid.UUID) (bool, error)
	Exists(ctx context.Context, todoID, userID uuid.UUID) (bool, error)
	// Get returns the assignment with Todo and User populated.
	Get(ctx context.Context, todoID, userID uuid.UUID) (dom.Assignment, error)
	UsersForTodo(ctx context.Context, todoID uuid.UUID) ([]dom.User, error)
	TodosForUser(ctx context.Context, userID uuid.UUID) ([]dom.Todo, error)
}

type PGAssignmentRepo struct {
	db DB
}

func NewPGAssignmentRepo(db DB) *PGAssignmentRepo {
	return &PGAssignmentRepo{db: db}
}

func (r *PGAssignmentRepo) Create(ctx context.Context, todoID, userID uuid.UUID) (dom.Assignment, error) {
	query := `
		INSERT INTO todo_users (todo_id, user_id)
		VALUES ($1, $2)
		RETURNING id, todo_id, user_id, assigned_at`
	var a dom.Assignment
	err := r.db.QueryRow(ctx, query, todoID, userID).Scan(
		&a.ID, &a.TodoID, &a.UserID, &a.AssignedAt,
	)
	return a, err
}

func (r *PGAssignmentRepo) Delete(ctx context.Context, todoID, userID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM todo_users WHERE todo_id = $1 AND user_id = $2`,
		todoID, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PGAssignmentRepo) Exists(ctx context.Context, todoID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM todo_users WHERE todo_id = $1 AND user_id = $2)`,
		todoID, userID,
	).Scan(&exists)
	return exists, err
}

func (r *PGAssignmentRepo) Get(ctx context.Context, todoID, userID uuid.UUID) (dom.Assignment, error) {
	query := `
		SELECT tu.id, tu.todo_id, tu.user_id, tu.assigned_at,
		       t.id, t.title, t.description, t.is_completed, t.completed_at,
		       t.due_date, t.priority, t.category, t.created_at, t.updated_at,
		       ` + prefixedUserColumns("u") + `
		FROM todo_users tu
		JOIN todos t ON t.id = tu.todo_id
		JOIN users u ON u.id = tu.user_id
		WHERE tu.todo_id = $1 AND tu.user_id = $2`
	var (
		a dom.Assignment
		t dom.Todo
		u dom.User
	)
	err := r.db.QueryRow(ctx, query, todoID, userID).Scan(
		&a.ID, &a.TodoID, &a.UserID, &a.AssignedAt,
		&t.ID, &t.Title, &t.Description, &t.IsCompleted, &t.CompletedAt,
		&t.DueDate, &t.Priority, &t.Category, &t.CreatedAt, &t.UpdatedAt,
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PhoneNumber,
		&u.DateOfBirth, &u.Gender, &u.Address, &u.City, &u.PostalCode,
		&u.Country, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return dom.Assignment{}, err
	}
	a.Todo = &t
	a.User = &u
	return a, nil
}

func (r *PGAssignmentRepo) UsersForTodo(ctx context.Context, todoID uuid.UUID) ([]dom.User, error) {
	query := `
		SELECT ` + prefixedUserColumns("u") + `
		FROM todo_users tu
		JOIN users u ON u.id = tu.user_id
		WHERE tu.todo_id = $1
		ORDER BY tu.assigned_at ASC`
	rows, err := r.db.Query(ctx, query, todoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *PGAssignmentRepo) TodosForUser(ctx context.Context, userID uuid.UUID) ([]dom.Todo, error) {
	query := `
		SELECT t.id, t.title, t.description, t.is_completed, t.completed_at,
		       t.due_date, t.priority, t.category, t.created_at, t.updated_at
		FROM todo_users tu
		JOIN todos t ON t.id = tu.todo_id
		WHERE tu.user_id = $1
		ORDER BY tu.assigned_at ASC`
	rows, err := r.db.Query(ctx, query, userID)
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
