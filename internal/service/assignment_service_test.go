package service_test

import (
	"context"
	"testing"

	"github.com/marquisSam/House-hub/internal/service"

	"github.com/google/uuid"
)

func TestAssignAndGetAssignment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	amy := f.mustCreateUser(t, "Amy")
	id := f.mustCreateTodo(t, "Dishes")

	a, err := f.assigns.Assign(ctx, id, amy)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if a.TodoID != id || a.UserID != amy {
		t.Errorf("assignment = %+v", a)
	}
	if a.AssignedAt.IsZero() {
		t.Error("AssignedAt not set")
	}

	got, err := f.assigns.GetAssignment(ctx, id, amy)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Todo == nil || got.Todo.ID != id {
		t.Error("Todo side not populated")
	}
	if got.User == nil || got.User.ID != amy {
		t.Error("User side not populated")
	}
}

func TestAssignDuplicateConflicts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	amy := f.mustCreateUser(t, "Amy")
	id := f.mustCreateTodo(t, "Dishes")

	if _, err := f.assigns.Assign(ctx, id, amy); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if _, err := f.assigns.Assign(ctx, id, amy); err != service.ErrAlreadyAssigned {
		t.Fatalf("err = %v, want ErrAlreadyAssigned", err)
	}
}

func TestAssignMissingSides(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	amy := f.mustCreateUser(t, "Amy")
	id := f.mustCreateTodo(t, "Dishes")

	if _, err := f.assigns.Assign(ctx, uuid.New(), amy); err != service.ErrTodoNotFound {
		t.Errorf("missing todo: err = %v, want ErrTodoNotFound", err)
	}
	if _, err := f.assigns.Assign(ctx, id, uuid.New()); err != service.ErrUserNotFound {
		t.Errorf("missing user: err = %v, want ErrUserNotFound", err)
	}
}

func TestUnassignIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	amy := f.mustCreateUser(t, "Amy")
	id := f.mustCreateTodo(t, "Dishes", amy)

	removed, err := f.assigns.Unassign(ctx, id, amy)
	if err != nil || !removed {
		t.Fatalf("first unassign: removed=%v err=%v", removed, err)
	}
	removed, err = f.assigns.Unassign(ctx, id, amy)
	if err != nil {
		t.Fatalf("second unassign: %v", err)
	}
	if removed {
		t.Error("second unassign reported removed=true")
	}
}

func TestListUsersForTodoOrderAndEmpty(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bob := f.mustCreateUser(t, "Bob")
	amy := f.mustCreateUser(t, "Amy")
	id := f.mustCreateTodo(t, "Dishes")

	users, err := f.assigns.ListUsersForTodo(ctx, id)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Errorf("users = %v, want empty non-nil slice", users)
	}

	// Assignment order, not creation order.
	if _, err := f.assigns.Assign(ctx, id, amy); err != nil {
		t.Fatalf("assign amy: %v", err)
	}
	if _, err := f.assigns.Assign(ctx, id, bob); err != nil {
		t.Fatalf("assign bob: %v", err)
	}
	users, err = f.assigns.ListUsersForTodo(ctx, id)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 || users[0].ID != amy || users[1].ID != bob {
		t.Errorf("users = %v, want [Amy, Bob] by assigned_at", users)
	}
}

func TestReconcileFromEmptyAndIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	amy := f.mustCreateUser(t, "Amy")
	bob := f.mustCreateUser(t, "Bob")
	id := f.mustCreateTodo(t, "Dishes")

	desired := []uuid.UUID{amy, bob}
	if err := f.assigns.Reconcile(ctx, id, desired); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	first, err := f.assigns.GetAssignment(ctx, id, amy)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	// Same desired set again: no error, nothing recreated.
	if err := f.assigns.Reconcile(ctx, id, desired); err != nil {
		t.Fatalf("reconcile again: %v", err)
	}
	second, err := f.assigns.GetAssignment(ctx, id, amy)
	if err != nil {
		t.Fatalf("get after: %v", err)
	}
	if second.ID != first.ID || !second.AssignedAt.Equal(first.AssignedAt) {
		t.Error("idempotent reconcile recreated an assignment")
	}

	users, err := f.assigns.ListUsersForTodo(ctx, id)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("users = %d, want 2", len(users))
	}
}

func TestReconcileUnknownUserFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.mustCreateTodo(t, "Dishes")

	err := f.assigns.Reconcile(ctx, id, []uuid.UUID{uuid.New()})
	if err != service.ErrUserNotFound {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestGetAssignmentMissing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	amy := f.mustCreateUser(t, "Amy")
	id := f.mustCreateTodo(t, "Dishes")

	if _, err := f.assigns.GetAssignment(ctx, id, amy); err != service.ErrAssignmentNotFound {
		t.Fatalf("err = %v, want ErrAssignmentNotFound", err)
	}
}
