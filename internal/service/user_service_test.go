package service_test

import (
	"context"
	"testing"

	"github.com/marquisSam/House-hub/internal/dto"
	"github.com/marquisSam/House-hub/internal/service"

	"github.com/google/uuid"
)

func TestCreateUserEmailConflict(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.users.Create(ctx, dto.CreateUserRequest{
		FirstName: "Amy", Email: strPtr("amy@example.com"),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := f.users.Create(ctx, dto.CreateUserRequest{
		FirstName: "Impostor", Email: strPtr("amy@example.com"),
	})
	if err != service.ErrEmailExists {
		t.Fatalf("err = %v, want ErrEmailExists", err)
	}
}

func TestCreateUsersWithoutEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// NULL emails never collide with each other.
	for _, name := range []string{"Kid1", "Kid2", "Kid3"} {
		if _, err := f.users.Create(ctx, dto.CreateUserRequest{FirstName: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	list, err := f.users.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Errorf("users = %d, want 3", len(list))
	}
}

func TestCreateUserBlankEmailStoredAsNull(t *testing.T) {
	f := newFixture()

	u, err := f.users.Create(context.Background(), dto.CreateUserRequest{
		FirstName: "Amy", Email: strPtr("   "),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Email != nil {
		t.Errorf("email = %q, want nil for blank input", *u.Email)
	}
}

func TestUpdateUserEmailConflict(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.users.Create(ctx, dto.CreateUserRequest{
		FirstName: "Amy", Email: strPtr("amy@example.com"),
	}); err != nil {
		t.Fatalf("create amy: %v", err)
	}
	bob, err := f.users.Create(ctx, dto.CreateUserRequest{
		FirstName: "Bob", Email: strPtr("bob@example.com"),
	})
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}

	if _, err := f.users.Update(ctx, bob.ID, dto.UpdateUserRequest{
		Email: strPtr("amy@example.com"),
	}); err != service.ErrEmailExists {
		t.Fatalf("err = %v, want ErrEmailExists", err)
	}

	// Re-submitting your own email is not a conflict.
	if _, err := f.users.Update(ctx, bob.ID, dto.UpdateUserRequest{
		Email: strPtr("bob@example.com"),
	}); err != nil {
		t.Fatalf("same-email update: %v", err)
	}
}

func TestUpdateUserPartialMerge(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	amy, err := f.users.Create(ctx, dto.CreateUserRequest{
		FirstName: "Amy", LastName: "Pond", City: strPtr("Leadworth"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := f.users.Update(ctx, amy.ID, dto.UpdateUserRequest{City: strPtr("London")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FirstName != "Amy" || updated.LastName != "Pond" {
		t.Errorf("name changed by partial update: %+v", updated)
	}
	if updated.City == nil || *updated.City != "London" {
		t.Errorf("city = %v, want London", updated.City)
	}
}

func TestGetUserByEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.users.Create(ctx, dto.CreateUserRequest{
		FirstName: "Amy", Email: strPtr("amy@example.com"),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	u, err := f.users.GetByEmail(ctx, "amy@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if u.FirstName != "Amy" {
		t.Errorf("got %+v", u)
	}

	if _, err := f.users.GetByEmail(ctx, "nobody@example.com"); err != service.ErrUserNotFound {
		t.Errorf("unknown email: err = %v, want ErrUserNotFound", err)
	}
	if _, err := f.users.GetByEmail(ctx, "  "); err != service.ErrUserNotFound {
		t.Errorf("blank email: err = %v, want ErrUserNotFound", err)
	}
}

func TestDeleteUserCascadesAssignments(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	amy := f.mustCreateUser(t, "Amy")
	id := f.mustCreateTodo(t, "Chore", amy)

	snapshot, err := f.users.Delete(ctx, amy)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if snapshot.FirstName != "Amy" {
		t.Errorf("snapshot = %+v", snapshot)
	}

	todo, err := f.todos.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get todo: %v", err)
	}
	if len(todo.Users) != 0 {
		t.Errorf("todo still lists deleted user: %v", todo.Users)
	}
}

func TestUserNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.users.GetByID(ctx, uuid.New()); err != service.ErrUserNotFound {
		t.Errorf("get: err = %v, want ErrUserNotFound", err)
	}
	if _, err := f.users.Update(ctx, uuid.New(), dto.UpdateUserRequest{FirstName: strPtr("x")}); err != service.ErrUserNotFound {
		t.Errorf("update: err = %v, want ErrUserNotFound", err)
	}
	if _, err := f.users.Delete(ctx, uuid.New()); err != service.ErrUserNotFound {
		t.Errorf("delete: err = %v, want ErrUserNotFound", err)
	}
}
