// Package repotest provides an in-memory repo.Store for tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	dom "github.com/marquisSam/House-hub/internal/domain"
	"github.com/marquisSam/House-hub/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MemStore implements repo.Store in memory. It mirrors the Postgres schema
// semantics: pgx.ErrNoRows for missing rows, *pgconn.PgError for unique and
// foreign key violations, ON DELETE CASCADE for assignments. WithinTx runs
// fn against the same store without rollback.
type MemStore struct {
	mu    sync.Mutex
	base  time.Time
	seq   int64
	todos map[uuid.UUID]dom.Todo
	users map[uuid.UUID]dom.User
	evts  map[uuid.UUID]dom.Event
	// insertion order doubles as assigned_at order
	assigns []dom.Assignment
}

func NewMemStore() *MemStore {
	return &MemStore{
		base:  time.Now().UTC(),
		todos: make(map[uuid.UUID]dom.Todo),
		users: make(map[uuid.UUID]dom.User),
		evts:  make(map[uuid.UUID]dom.Event),
	}
}

func (m *MemStore) Todos() repo.TodoRepo             { return (*memTodos)(m) }
func (m *MemStore) Users() repo.UserRepo             { return (*memUsers)(m) }
func (m *MemStore) Assignments() repo.AssignmentRepo { return (*memAssigns)(m) }
func (m *MemStore) Events() repo.EventRepo           { return (*memEvents)(m) }

func (m *MemStore) WithinTx(ctx context.Context, fn func(repo.Store) error) error {
	return fn(m)
}

// now returns a strictly increasing timestamp so ordering by created_at or
// assigned_at is deterministic within a test.
func (m *MemStore) now() time.Time {
	m.seq++
	return m.base.Add(time.Duration(m.seq) * time.Millisecond)
}

func uniqueViolation(constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func fkViolation(constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: "23503", ConstraintName: constraint}
}

type memTodos MemStore

func (m *memTodos) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uuid.New()
	t.IsCompleted = false
	t.CompletedAt = nil
	ts := (*MemStore)(m).now()
	t.CreatedAt = ts
	t.UpdatedAt = ts
	t.Users = nil
	m.todos[t.ID] = t
	return t, nil
}

func (m *memTodos) GetByID(ctx context.Context, id uuid.UUID) (dom.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.todos[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	return t, nil
}

func (m *memTodos) GetWithUsers(ctx context.Context, id uuid.UUID) (dom.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.todos[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	t.Users = (*MemStore)(m).usersOf(id)
	return t, nil
}

func (m *memTodos) ListWithUsers(ctx context.Context, f repo.TodoFilter) ([]dom.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []dom.Todo
	for _, t := range m.todos {
		if f.Completed != nil && t.IsCompleted != *f.Completed {
			continue
		}
		if f.Category != nil && (t.Category == nil || *t.Category != *f.Category) {
			continue
		}
		if f.Priority != nil && t.Priority != *f.Priority {
			continue
		}
		t.Users = (*MemStore)(m).usersOf(t.ID)
		list = append(list, t)
	}
	sortTodos(list, f.SortBy, f.Order)
	if f.Offset > 0 {
		if f.Offset >= len(list) {
			return nil, nil
		}
		list = list[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(list) {
		list = list[:f.Limit]
	}
	return list, nil
}

func (m *memTodos) SearchWithUsers(ctx context.Context, q string) ([]dom.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q = strings.ToLower(q)
	var list []dom.Todo
	for _, t := range m.todos {
		hit := strings.Contains(strings.ToLower(t.Title), q)
		if !hit && t.Description != nil {
			hit = strings.Contains(strings.ToLower(*t.Description), q)
		}
		if hit {
			t.Users = (*MemStore)(m).usersOf(t.ID)
			list = append(list, t)
		}
	}
	sortTodos(list, "", "")
	return list, nil
}

func (m *memTodos) OverdueWithUsers(ctx context.Context) ([]dom.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	var list []dom.Todo
	for _, t := range m.todos {
		if !t.IsCompleted && t.DueDate != nil && t.DueDate.Before(now) {
			t.Users = (*MemStore)(m).usersOf(t.ID)
			list = append(list, t)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].DueDate.Before(*list[j].DueDate) })
	return list, nil
}

func (m *memTodos) Update(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.todos[t.ID]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	stored.Title = t.Title
	stored.Description = t.Description
	stored.IsCompleted = t.IsCompleted
	stored.CompletedAt = t.CompletedAt
	stored.DueDate = t.DueDate
	stored.Priority = t.Priority
	stored.Category = t.Category
	stored.UpdatedAt = (*MemStore)(m).now()
	m.todos[t.ID] = stored
	return stored, nil
}

func (m *memTodos) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.todos[id]; !ok {
		return false, nil
	}
	delete(m.todos, id)
	(*MemStore)(m).dropAssigns(func(a dom.Assignment) bool { return a.TodoID == id })
	return true, nil
}

func (m *memTodos) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.todos[id]
	return ok, nil
}

func sortTodos(list []dom.Todo, sortBy, order string) {
	asc := strings.EqualFold(order, "asc")
	// Three-way compare keeps the ordering strict-weak on equal keys.
	cmp := func(i, j int) int {
		switch sortBy {
		case "title":
			return strings.Compare(list[i].Title, list[j].Title)
		case "priority":
			return list[i].Priority - list[j].Priority
		case "due_date":
			a, b := list[i].DueDate, list[j].DueDate
			switch {
			case a == nil && b == nil:
				return 0
			case a == nil:
				return 1 // NULL compares largest, like Postgres
			case b == nil:
				return -1
			default:
				return a.Compare(*b)
			}
		case "updated_at":
			return list[i].UpdatedAt.Compare(list[j].UpdatedAt)
		default:
			return list[i].CreatedAt.Compare(list[j].CreatedAt)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		c := cmp(i, j)
		if asc {
			return c < 0
		}
		return c > 0
	})
}

type memUsers MemStore

func (m *memUsers) Create(ctx context.Context, u dom.User) (dom.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emailTaken(u.Email, uuid.Nil) {
		return dom.User{}, uniqueViolation("users_email_key")
	}
	u.ID = uuid.New()
	u.IsActive = true
	ts := (*MemStore)(m).now()
	u.CreatedAt = ts
	u.UpdatedAt = ts
	m.users[u.ID] = u
	return u, nil
}

func (m *memUsers) GetByID(ctx context.Context, id uuid.UUID) (dom.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (m *memUsers) List(ctx context.Context) ([]dom.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []dom.User
	for _, u := range m.users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (m *memUsers) Update(ctx context.Context, u dom.User) (dom.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.users[u.ID]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	if m.emailTaken(u.Email, u.ID) {
		return dom.User{}, uniqueViolation("users_email_key")
	}
	u.CreatedAt = stored.CreatedAt
	u.UpdatedAt = (*MemStore)(m).now()
	m.users[u.ID] = u
	return u, nil
}

func (m *memUsers) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return false, nil
	}
	delete(m.users, id)
	(*MemStore)(m).dropAssigns(func(a dom.Assignment) bool { return a.UserID == id })
	return true, nil
}

func (m *memUsers) EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.emailTaken(&email, excludeID), nil
}

func (m *memUsers) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[id]
	return ok, nil
}

// emailTaken is the UNIQUE(email) check. NULL emails never collide. Caller
// holds the lock.
func (m *memUsers) emailTaken(email *string, excludeID uuid.UUID) bool {
	if email == nil {
		return false
	}
	for _, u := range m.users {
		if u.ID != excludeID && u.Email != nil && *u.Email == *email {
			return true
		}
	}
	return false
}

type memAssigns MemStore

func (m *memAssigns) Create(ctx context.Context, todoID, userID uuid.UUID) (dom.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assigns {
		if a.TodoID == todoID && a.UserID == userID {
			return dom.Assignment{}, uniqueViolation("todo_users_todo_id_user_id_key")
		}
	}
	if _, ok := m.todos[todoID]; !ok {
		return dom.Assignment{}, fkViolation("todo_users_todo_id_fkey")
	}
	if _, ok := m.users[userID]; !ok {
		return dom.Assignment{}, fkViolation("todo_users_user_id_fkey")
	}
	a := dom.Assignment{
		ID:         uuid.New(),
		TodoID:     todoID,
		UserID:     userID,
		AssignedAt: (*MemStore)(m).now(),
	}
	m.assigns = append(m.assigns, a)
	return a, nil
}

func (m *memAssigns) Delete(ctx context.Context, todoID, userID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.assigns {
		if a.TodoID == todoID && a.UserID == userID {
			m.assigns = append(m.assigns[:i], m.assigns[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memAssigns) Exists(ctx context.Context, todoID, userID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assigns {
		if a.TodoID == todoID && a.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAssigns) Get(ctx context.Context, todoID, userID uuid.UUID) (dom.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assigns {
		if a.TodoID == todoID && a.UserID == userID {
			t := m.todos[todoID]
			u := m.users[userID]
			a.Todo = &t
			a.User = &u
			return a, nil
		}
	}
	return dom.Assignment{}, pgx.ErrNoRows
}

func (m *memAssigns) UsersForTodo(ctx context.Context, todoID uuid.UUID) ([]dom.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (*MemStore)(m).usersOf(todoID), nil
}

func (m *memAssigns) TodosForUser(ctx context.Context, userID uuid.UUID) ([]dom.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []dom.Todo
	for _, a := range m.assigns {
		if a.UserID == userID {
			list = append(list, m.todos[a.TodoID])
		}
	}
	return list, nil
}

// usersOf returns users assigned to todoID in assigned_at order. Caller holds
// the lock.
func (m *MemStore) usersOf(todoID uuid.UUID) []dom.User {
	list := []dom.User{}
	for _, a := range m.assigns {
		if a.TodoID == todoID {
			list = append(list, m.users[a.UserID])
		}
	}
	return list
}

func (m *MemStore) dropAssigns(match func(dom.Assignment) bool) {
	kept := m.assigns[:0]
	for _, a := range m.assigns {
		if !match(a) {
			kept = append(kept, a)
		}
	}
	m.assigns = kept
}

type memEvents MemStore

func (m *memEvents) Create(ctx context.Context, e dom.Event) (dom.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = uuid.New()
	ts := (*MemStore)(m).now()
	e.CreatedAt = ts
	e.UpdatedAt = ts
	m.evts[e.ID] = e
	return e, nil
}

func (m *memEvents) GetByID(ctx context.Context, id uuid.UUID) (dom.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.evts[id]
	if !ok {
		return dom.Event{}, pgx.ErrNoRows
	}
	return e, nil
}

func (m *memEvents) List(ctx context.Context) ([]dom.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []dom.Event
	for _, e := range m.evts {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StartDate.Before(list[j].StartDate) })
	return list, nil
}

func (m *memEvents) ListRange(ctx context.Context, from, to time.Time) ([]dom.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []dom.Event
	for _, e := range m.evts {
		if !e.StartDate.After(to) && !e.EndDate.Before(from) {
			list = append(list, e)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StartDate.Before(list[j].StartDate) })
	return list, nil
}

func (m *memEvents) Update(ctx context.Context, e dom.Event) (dom.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.evts[e.ID]
	if !ok {
		return dom.Event{}, pgx.ErrNoRows
	}
	e.CreatedAt = stored.CreatedAt
	e.UpdatedAt = (*MemStore)(m).now()
	m.evts[e.ID] = e
	return e, nil
}

func (m *memEvents) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.evts[id]; !ok {
		return false, nil
	}
	delete(m.evts, id)
	return true, nil
}
