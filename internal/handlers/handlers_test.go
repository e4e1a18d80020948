package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marquisSam/House-hub/internal/dto"
	"github.com/marquisSam/House-hub/internal/handlers"
	"github.com/marquisSam/House-hub/internal/repo/repotest"
	"github.com/marquisSam/House-hub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	st := repotest.NewMemStore()
	log := zap.NewNop()

	todoH := handlers.NewTodoHandler(service.NewTodoService(st, nil, log))
	userH := handlers.NewUserHandler(service.NewUserService(st, log))
	assignH := handlers.NewAssignmentHandler(service.NewAssignmentService(st, nil, log))
	eventH := handlers.NewEventHandler(service.NewEventService(st, log))

	r := gin.New()
	api := r.Group("/api/v1")

	api.POST("/todos", todoH.Create)
	api.GET("/todos", todoH.List)
	api.GET("/todos/search", todoH.Search)
	api.GET("/todos/overdue", todoH.Overdue)
	api.GET("/todos/:id", todoH.GetByID)
	api.PATCH("/todos/:id", todoH.Update)
	api.DELETE("/todos/:id", todoH.Delete)

	api.POST("/users", userH.Create)
	api.GET("/users", userH.List)
	api.GET("/users/by-email", userH.GetByEmail)
	api.GET("/users/:id", userH.GetByID)
	api.PATCH("/users/:id", userH.Update)
	api.DELETE("/users/:id", userH.Delete)

	api.GET("/todos/:id/users", assignH.UsersForTodo)
	api.POST("/todos/:id/users/:userId", assignH.Assign)
	api.GET("/todos/:id/users/:userId", assignH.GetAssignment)
	api.DELETE("/todos/:id/users/:userId", assignH.Unassign)
	api.GET("/users/:id/todos", assignH.TodosForUser)

	api.POST("/events", eventH.Create)
	api.GET("/events", eventH.List)
	api.GET("/events/range", eventH.Range)
	api.GET("/events/:id", eventH.GetByID)
	api.PATCH("/events/:id", eventH.Update)
	api.DELETE("/events/:id", eventH.Delete)

	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("unmarshal response: %v; body=%s", err, w.Body.String())
	}
	return v
}

func createUser(t *testing.T, r *gin.Engine, payload string) dto.UserResponse {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/v1/users", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("create user: status=%d body=%s", w.Code, w.Body.String())
	}
	return decode[dto.UserResponse](t, w)
}

func TestTodoLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter()

	amy := createUser(t, r, `{"first_name":"Amy"}`)
	bob := createUser(t, r, `{"first_name":"Bob"}`)

	// Create the chore assigned to Amy.
	w := do(t, r, http.MethodPost, "/api/v1/todos",
		`{"title":"Clean kitchen","priority":2,"assigned_user_ids":["`+amy.ID.String()+`"]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status=%d body=%s", w.Code, w.Body.String())
	}
	todo := decode[dto.TodoResponse](t, w)
	if todo.Priority != 2 || len(todo.Users) != 1 || todo.Users[0].ID != amy.ID {
		t.Fatalf("created todo = %+v", todo)
	}

	// Reassign to Bob and complete in one PATCH.
	w = do(t, r, http.MethodPatch, "/api/v1/todos/"+todo.ID.String(),
		`{"is_completed":true,"assigned_user_ids":["`+bob.ID.String()+`"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: status=%d body=%s", w.Code, w.Body.String())
	}
	updated := decode[dto.TodoResponse](t, w)
	if !updated.IsCompleted || updated.CompletedAt == nil {
		t.Errorf("completion not applied: %+v", updated)
	}
	if len(updated.Users) != 1 || updated.Users[0].ID != bob.ID {
		t.Errorf("assignment not reconciled: %+v", updated.Users)
	}

	// Reopen clears the timestamp.
	w = do(t, r, http.MethodPatch, "/api/v1/todos/"+todo.ID.String(), `{"is_completed":false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("reopen: status=%d body=%s", w.Code, w.Body.String())
	}
	reopened := decode[dto.TodoResponse](t, w)
	if reopened.IsCompleted || reopened.CompletedAt != nil {
		t.Errorf("reopen did not clear completion: %+v", reopened)
	}

	// Delete returns the snapshot, then the todo is gone.
	w = do(t, r, http.MethodDelete, "/api/v1/todos/"+todo.ID.String(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status=%d body=%s", w.Code, w.Body.String())
	}
	snapshot := decode[dto.TodoResponse](t, w)
	if snapshot.Title != "Clean kitchen" {
		t.Errorf("snapshot = %+v", snapshot)
	}
	if w = do(t, r, http.MethodGet, "/api/v1/todos/"+todo.ID.String(), ""); w.Code != http.StatusNotFound {
		t.Errorf("get after delete: status=%d", w.Code)
	}
}

func TestTodoBadRequests(t *testing.T) {
	r := newTestRouter()

	if w := do(t, r, http.MethodPost, "/api/v1/todos", `{}`); w.Code != http.StatusBadRequest {
		t.Errorf("missing title: status=%d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/v1/todos", `{"title":"x","priority":9}`); w.Code != http.StatusBadRequest {
		t.Errorf("priority out of range: status=%d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/v1/todos/not-a-uuid", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad uuid: status=%d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/v1/todos?completed=banana", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad completed filter: status=%d", w.Code)
	}
	if w := do(t, r, http.MethodPatch, "/api/v1/todos/"+uuid.NewString(), `{"title":"x"}`); w.Code != http.StatusNotFound {
		t.Errorf("unknown todo: status=%d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/v1/todos",
		`{"title":"x","assigned_user_ids":["`+uuid.NewString()+`"]}`); w.Code != http.StatusBadRequest {
		t.Errorf("unknown assignee on create: status=%d", w.Code)
	}
}

func TestAssignmentEndpoints(t *testing.T) {
	r := newTestRouter()
	amy := createUser(t, r, `{"first_name":"Amy"}`)

	w := do(t, r, http.MethodPost, "/api/v1/todos", `{"title":"Dishes"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create todo: status=%d", w.Code)
	}
	todo := decode[dto.TodoResponse](t, w)
	base := "/api/v1/todos/" + todo.ID.String() + "/users/" + amy.ID.String()

	if w = do(t, r, http.MethodPost, base, ""); w.Code != http.StatusCreated {
		t.Fatalf("assign: status=%d body=%s", w.Code, w.Body.String())
	}
	a := decode[dto.AssignmentResponse](t, w)
	if a.TodoID != todo.ID || a.UserID != amy.ID {
		t.Errorf("assignment = %+v", a)
	}

	if w = do(t, r, http.MethodPost, base, ""); w.Code != http.StatusConflict {
		t.Errorf("duplicate assign: status=%d", w.Code)
	}
	if w = do(t, r, http.MethodPost,
		"/api/v1/todos/"+uuid.NewString()+"/users/"+amy.ID.String(), ""); w.Code != http.StatusBadRequest {
		t.Errorf("assign to missing todo: status=%d", w.Code)
	}

	if w = do(t, r, http.MethodGet, base, ""); w.Code != http.StatusOK {
		t.Errorf("get assignment: status=%d", w.Code)
	}

	w = do(t, r, http.MethodDelete, base, "")
	if w.Code != http.StatusOK {
		t.Fatalf("unassign: status=%d", w.Code)
	}
	res := decode[map[string]bool](t, w)
	if !res["removed"] {
		t.Error("first unassign: removed=false")
	}
	w = do(t, r, http.MethodDelete, base, "")
	if w.Code != http.StatusOK {
		t.Fatalf("second unassign: status=%d", w.Code)
	}
	res = decode[map[string]bool](t, w)
	if res["removed"] {
		t.Error("second unassign: removed=true")
	}

	if w = do(t, r, http.MethodGet, base, ""); w.Code != http.StatusNotFound {
		t.Errorf("get removed assignment: status=%d", w.Code)
	}
}

func TestUserEndpoints(t *testing.T) {
	r := newTestRouter()

	amy := createUser(t, r, `{"first_name":"Amy","email":"amy@example.com"}`)

	if w := do(t, r, http.MethodPost, "/api/v1/users",
		`{"first_name":"Clone","email":"amy@example.com"}`); w.Code != http.StatusConflict {
		t.Errorf("duplicate email: status=%d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/v1/users", `{"email":"x@example.com"}`); w.Code != http.StatusBadRequest {
		t.Errorf("missing first_name: status=%d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/v1/users",
		`{"first_name":"Bad","email":"not-an-email"}`); w.Code != http.StatusBadRequest {
		t.Errorf("invalid email: status=%d", w.Code)
	}

	w := do(t, r, http.MethodGet, "/api/v1/users/by-email?email=amy@example.com", "")
	if w.Code != http.StatusOK {
		t.Fatalf("by-email: status=%d", w.Code)
	}
	got := decode[dto.UserResponse](t, w)
	if got.ID != amy.ID {
		t.Errorf("by-email returned %+v", got)
	}

	if w := do(t, r, http.MethodGet, "/api/v1/users/by-email", ""); w.Code != http.StatusBadRequest {
		t.Errorf("by-email without param: status=%d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/v1/users/"+uuid.NewString(), ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown user: status=%d", w.Code)
	}
}

func TestEventEndpoints(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/v1/events",
		`{"title":"Dentist","start_date":"2026-09-01T10:00:00Z","end_date":"2026-09-01T11:00:00Z"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create event: status=%d body=%s", w.Code, w.Body.String())
	}
	event := decode[dto.EventResponse](t, w)

	if w := do(t, r, http.MethodPost, "/api/v1/events", `{"title":"No dates"}`); w.Code != http.StatusBadRequest {
		t.Errorf("missing dates: status=%d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/v1/events/range?start=2026-09-01&end=2026-09-02", "")
	if w.Code != http.StatusOK {
		t.Fatalf("range: status=%d body=%s", w.Code, w.Body.String())
	}
	list := decode[dto.ListEventsResponse](t, w)
	if len(list.Items) != 1 || list.Items[0].ID != event.ID {
		t.Errorf("range = %+v", list.Items)
	}

	if w := do(t, r, http.MethodGet, "/api/v1/events/range?start=2026-09-01", ""); w.Code != http.StatusBadRequest {
		t.Errorf("range missing end: status=%d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/v1/events/"+uuid.NewString(), ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown event: status=%d", w.Code)
	}
}
