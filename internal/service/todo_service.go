package service

import (
	"context"
	"errors"
	"strings"
	"time"

	dom "github.com/marquisSam/House-hub/internal/domain"
	"github.com/marquisSam/House-hub/internal/cache"
	"github.com/marquisSam/House-hub/internal/dto"
	"github.com/marquisSam/House-hub/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultPriority = 3

// TodoService handles todo CRUD, the completion-timestamp lifecycle and the
// orchestration of assignment reconciliation. Create and update run inside
// one transaction: either everything persists or nothing does.
type TodoService struct {
	store repo.Store
	cache *cache.TodoCache
	log   *zap.Logger
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(store repo.Store, c *cache.TodoCache, log *zap.Logger) *TodoService {
	return &TodoService{store: store, cache: c, log: log}
}

// ListAll returns todos with their assigned users. Only the unfiltered
// listing goes through the cache; filtered queries hit storage directly.
func (s *TodoService) ListAll(ctx context.Context, f repo.TodoFilter) ([]dom.Todo, error) {
	if s.cache == nil || f != (repo.TodoFilter{}) {
		return s.store.Todos().ListWithUsers(ctx, f)
	}
	v, err, _ := s.sf.Do("list", func() (interface{}, error) {
		if list, err := s.cache.GetList(ctx); err == nil && list != nil {
			return list, nil
		}
		list, err := s.store.Todos().ListWithUsers(ctx, f)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetList(ctx, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Todo), nil
}

func (s *TodoService) Search(ctx context.Context, q string) ([]dom.Todo, error) {
	q = strings.TrimSpace(q)
	if s.cache == nil {
		return s.store.Todos().SearchWithUsers(ctx, q)
	}
	key := "search:" + strings.ToLower(q)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetSearch(ctx, q); err == nil && list != nil {
			return list, nil
		}
		list, err := s.store.Todos().SearchWithUsers(ctx, q)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetSearch(ctx, q, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Todo), nil
}

func (s *TodoService) Overdue(ctx context.Context) ([]dom.Todo, error) {
	if s.cache == nil {
		return s.store.Todos().OverdueWithUsers(ctx)
	}
	v, err, _ := s.sf.Do("overdue", func() (interface{}, error) {
		if list, err := s.cache.GetOverdue(ctx); err == nil && list != nil {
			return list, nil
		}
		list, err := s.store.Todos().OverdueWithUsers(ctx)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetOverdue(ctx, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Todo), nil
}

func (s *TodoService) GetByID(ctx context.Context, id uuid.UUID) (dom.Todo, error) {
	t, err := s.store.Todos().GetWithUsers(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrTodoNotFound
		}
		return dom.Todo{}, err
	}
	return t, nil
}

// Create inserts the todo and assigns each requested user inside one
// transaction; a failing assignment rolls the todo back too. Returns the
// reloaded todo with users populated.
func (s *TodoService) Create(ctx context.Context, req dto.CreateTodoRequest) (dom.Todo, error) {
	priority := defaultPriority
	if req.Priority != nil {
		priority = *req.Priority
	}
	t := dom.Todo{
		Title:       strings.TrimSpace(req.Title),
		Description: trimPtr(req.Description),
		DueDate:     req.DueDate.Ptr(),
		Priority:    priority,
		Category:    trimPtr(req.Category),
	}

	var created dom.Todo
	err := s.store.WithinTx(ctx, func(tx repo.Store) error {
		var err error
		created, err = tx.Todos().Create(ctx, t)
		if err != nil {
			return err
		}
		return assignUsers(ctx, tx, created.ID, req.AssignedUserIDs)
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			s.log.Error("create todo", zap.Error(err))
		}
		return dom.Todo{}, err
	}

	s.invalidateCache(ctx)
	return s.GetByID(ctx, created.ID)
}

// Update applies partial-update semantics and, when AssignedUserIDs is
// present, reconciles assignments to that exact set. Everything runs in one
// transaction.
//
// Completion timestamp rule: flag true and no timestamp -> stamp now (UTC);
// flag false -> clear; flag true with timestamp set -> keep; flag absent ->
// untouched.
func (s *TodoService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTodoRequest) (dom.Todo, error) {
	err := s.store.WithinTx(ctx, func(tx repo.Store) error {
		existing, err := tx.Todos().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrTodoNotFound
			}
			return err
		}

		patch := existing
		if req.Title != nil {
			patch.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			patch.Description = trimPtr(req.Description)
		}
		if req.DueDate != nil {
			patch.DueDate = req.DueDate.Ptr()
		}
		if req.Priority != nil {
			patch.Priority = *req.Priority
		}
		if req.Category != nil {
			patch.Category = trimPtr(req.Category)
		}
		if req.IsCompleted != nil {
			patch.IsCompleted = *req.IsCompleted
			switch {
			case *req.IsCompleted && existing.CompletedAt == nil:
				now := time.Now().UTC()
				patch.CompletedAt = &now
			case !*req.IsCompleted:
				patch.CompletedAt = nil
			}
		}

		if _, err := tx.Todos().Update(ctx, patch); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrTodoNotFound
			}
			return err
		}

		if req.AssignedUserIDs != nil {
			return reconcileAssignments(ctx, tx, id, *req.AssignedUserIDs)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrTodoNotFound) && !errors.Is(err, ErrUserNotFound) {
			s.log.Error("update todo", zap.Error(err), zap.String("todo_id", id.String()))
		}
		return dom.Todo{}, err
	}

	s.invalidateCache(ctx)
	return s.GetByID(ctx, id)
}

// Delete removes the todo and returns its pre-deletion snapshot. Assignment
// rows cascade at the storage level.
func (s *TodoService) Delete(ctx context.Context, id uuid.UUID) (dom.Todo, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return dom.Todo{}, err
	}
	deleted, err := s.store.Todos().Delete(ctx, id)
	if err != nil {
		s.log.Error("delete todo", zap.Error(err), zap.String("todo_id", id.String()))
		return dom.Todo{}, err
	}
	if !deleted {
		return dom.Todo{}, ErrTodoNotFound
	}
	s.invalidateCache(ctx)
	s.log.Info("deleted todo", zap.String("todo_id", id.String()), zap.String("title", existing.Title))
	return existing, nil
}

func (s *TodoService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
