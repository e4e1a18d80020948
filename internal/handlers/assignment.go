package handlers

import (
	"errors"
	"net/http"

	"github.com/marquisSam/House-hub/internal/dto"
	"github.com/marquisSam/House-hub/internal/service"

	"github.com/gin-gonic/gin"
)

// AssignmentHandler exposes the Todo↔User assignment relation.
type AssignmentHandler struct {
	svc *service.AssignmentService
}

func NewAssignmentHandler(svc *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{svc: svc}
}

// Assign godoc
// @Summary      Assign a user to a todo
// @Tags         assignments
// @Produce      json
// @Param        id      path      string  true  "Todo ID"
// @Param        userId  path      string  true  "User ID"
// @Success      201     {object}  dto.AssignmentResponse
// @Failure      400     {object}  map[string]string
// @Failure      409     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /todos/{id}/users/{userId} [post]
func (h *AssignmentHandler) Assign(c *gin.Context) {
	todoID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := parseUUID(c, "userId")
	if !ok {
		return
	}
	a, err := h.svc.Assign(c.Request.Context(), todoID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyAssigned):
			c.JSON(http.StatusConflict, gin.H{"error": "user is already assigned to this todo"})
		case errors.Is(err, service.ErrTodoNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "todo not found"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign user"})
		}
		return
	}
	c.JSON(http.StatusCreated, assignmentToResponse(a))
}

// Unassign godoc
// @Summary      Remove a user from a todo (idempotent)
// @Tags         assignments
// @Produce      json
// @Param        id      path      string  true  "Todo ID"
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  map[string]bool
// @Failure      400     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /todos/{id}/users/{userId} [delete]
func (h *AssignmentHandler) Unassign(c *gin.Context) {
	todoID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := parseUUID(c, "userId")
	if !ok {
		return
	}
	removed, err := h.svc.Unassign(c.Request.Context(), todoID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unassign user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// GetAssignment godoc
// @Summary      Get an assignment with its metadata
// @Tags         assignments
// @Produce      json
// @Param        id      path      string  true  "Todo ID"
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  dto.AssignmentResponse
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /todos/{id}/users/{userId} [get]
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	todoID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := parseUUID(c, "userId")
	if !ok {
		return
	}
	a, err := h.svc.GetAssignment(c.Request.Context(), todoID, userID)
	if err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get assignment"})
		return
	}
	c.JSON(http.StatusOK, assignmentToResponse(a))
}

// UsersForTodo godoc
// @Summary      List users assigned to a todo
// @Tags         assignments
// @Produce      json
// @Param        id   path      string  true  "Todo ID"
// @Success      200  {object}  dto.ListUsersResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todos/{id}/users [get]
func (h *AssignmentHandler) UsersForTodo(c *gin.Context) {
	todoID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	users, err := h.svc.ListUsersForTodo(c.Request.Context(), todoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list assigned users"})
		return
	}
	c.JSON(http.StatusOK, dto.ListUsersResponse{Items: usersToResponses(users)})
}

// TodosForUser godoc
// @Summary      List todos assigned to a user
// @Tags         assignments
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  dto.ListTodosResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/{id}/todos [get]
func (h *AssignmentHandler) TodosForUser(c *gin.Context) {
	userID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	todos, err := h.svc.ListTodosForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list assigned todos"})
		return
	}
	c.JSON(http.StatusOK, dto.ListTodosResponse{Items: todosToResponses(todos)})
}
