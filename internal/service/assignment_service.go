package service

import (
	"context"
	"errors"

	dom "github.com/marquisSam/House-hub/internal/domain"
	"github.com/marquisSam/House-hub/internal/cache"
	"github.com/marquisSam/House-hub/internal/repo"
	"github.com/marquisSam/House-hub/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// AssignmentService manages the Todo↔User join relation. All assignment rows
// are created here; other services go through it (or through the package
// helpers below inside their own transactions).
type AssignmentService struct {
	store repo.Store
	cache *cache.TodoCache
	log   *zap.Logger
}

// NewAssignmentService creates an AssignmentService. If c is nil, cache
// invalidation is skipped.
func NewAssignmentService(store repo.Store, c *cache.TodoCache, log *zap.Logger) *AssignmentService {
	return &AssignmentService{store: store, cache: c, log: log}
}

// Assign links userID to todoID. Fails with ErrAlreadyAssigned if the pair
// exists, ErrTodoNotFound/ErrUserNotFound if either side is missing.
func (s *AssignmentService) Assign(ctx context.Context, todoID, userID uuid.UUID) (dom.Assignment, error) {
	a, err := assignUser(ctx, s.store, todoID, userID)
	if err != nil {
		return dom.Assignment{}, err
	}
	s.invalidateCache(ctx)
	return a, nil
}

// Unassign is idempotent: removing a missing pair returns false, no error.
func (s *AssignmentService) Unassign(ctx context.Context, todoID, userID uuid.UUID) (bool, error) {
	removed, err := s.store.Assignments().Delete(ctx, todoID, userID)
	if err != nil {
		s.log.Error("unassign user", zap.Error(err))
		return false, err
	}
	if removed {
		s.invalidateCache(ctx)
	}
	return removed, nil
}

// ListUsersForTodo returns every user assigned to the todo, oldest
// assignment first. Empty slice when none.
func (s *AssignmentService) ListUsersForTodo(ctx context.Context, todoID uuid.UUID) ([]dom.User, error) {
	users, err := s.store.Assignments().UsersForTodo(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []dom.User{}
	}
	return users, nil
}

// ListTodosForUser returns every todo the user is assigned to. Empty slice
// when none.
func (s *AssignmentService) ListTodosForUser(ctx context.Context, userID uuid.UUID) ([]dom.Todo, error) {
	todos, err := s.store.Assignments().TodosForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []dom.Todo{}
	}
	return todos, nil
}

// GetAssignment returns the assignment with both sides populated, for
// callers that need the relationship metadata (assigned_at).
func (s *AssignmentService) GetAssignment(ctx context.Context, todoID, userID uuid.UUID) (dom.Assignment, error) {
	a, err := s.store.Assignments().Get(ctx, todoID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Assignment{}, ErrAssignmentNotFound
		}
		return dom.Assignment{}, err
	}
	return a, nil
}

// Reconcile makes the assigned-user set of todoID equal desired exactly,
// with minimal add/remove operations, inside one transaction.
func (s *AssignmentService) Reconcile(ctx context.Context, todoID uuid.UUID, desired []uuid.UUID) error {
	err := s.store.WithinTx(ctx, func(tx repo.Store) error {
		return reconcileAssignments(ctx, tx, todoID, desired)
	})
	if err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *AssignmentService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
}

// assignUser creates one assignment row with existence checks on both sides.
// The storage constraints stay authoritative: a race lost on the unique pair
// maps to ErrAlreadyAssigned, a lost FK race to the missing side.
func assignUser(ctx context.Context, st repo.Store, todoID, userID uuid.UUID) (dom.Assignment, error) {
	assignments := st.Assignments()

	exists, err := assignments.Exists(ctx, todoID, userID)
	if err != nil {
		return dom.Assignment{}, err
	}
	if exists {
		return dom.Assignment{}, ErrAlreadyAssigned
	}

	todoExists, err := st.Todos().Exists(ctx, todoID)
	if err != nil {
		return dom.Assignment{}, err
	}
	if !todoExists {
		return dom.Assignment{}, ErrTodoNotFound
	}
	userExists, err := st.Users().Exists(ctx, userID)
	if err != nil {
		return dom.Assignment{}, err
	}
	if !userExists {
		return dom.Assignment{}, ErrUserNotFound
	}

	a, err := assignments.Create(ctx, todoID, userID)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Assignment{}, ErrAlreadyAssigned
		}
		if utils.IsPGForeignKeyViolation(err) {
			if utils.PGConstraintName(err) == "todo_users_todo_id_fkey" {
				return dom.Assignment{}, ErrTodoNotFound
			}
			return dom.Assignment{}, ErrUserNotFound
		}
		return dom.Assignment{}, err
	}
	return a, nil
}

// assignUsers assigns each id, silently skipping already-assigned ones so
// duplicate ids in the request are harmless.
func assignUsers(ctx context.Context, st repo.Store, todoID uuid.UUID, userIDs []uuid.UUID) error {
	for _, userID := range userIDs {
		if _, err := assignUser(ctx, st, todoID, userID); err != nil {
			if errors.Is(err, ErrAlreadyAssigned) {
				continue
			}
			return err
		}
	}
	return nil
}

// reconcileAssignments diffs current vs desired and applies only the
// difference: removals first, then additions. The result set equals desired
// regardless of the starting state.
func reconcileAssignments(ctx context.Context, st repo.Store, todoID uuid.UUID, desired []uuid.UUID) error {
	current, err := st.Assignments().UsersForTodo(ctx, todoID)
	if err != nil {
		return err
	}

	currentIDs := make(map[uuid.UUID]bool, len(current))
	for _, u := range current {
		currentIDs[u.ID] = true
	}
	desiredIDs := make(map[uuid.UUID]bool, len(desired))
	for _, id := range desired {
		desiredIDs[id] = true
	}

	for id := range currentIDs {
		if desiredIDs[id] {
			continue
		}
		// Already-gone rows are fine: Delete reports false without error.
		if _, err := st.Assignments().Delete(ctx, todoID, id); err != nil {
			return err
		}
	}

	var toAdd []uuid.UUID
	for _, id := range desired {
		if !currentIDs[id] {
			toAdd = append(toAdd, id)
		}
	}
	return assignUsers(ctx, st, todoID, toAdd)
}
