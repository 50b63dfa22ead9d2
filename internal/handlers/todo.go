package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"Tasker/internal/auth"
	dom "Tasker/internal/domain"
	"Tasker/internal/dto"
	"Tasker/internal/service"

	"github.com/gin-gonic/gin"
)

// TodoService is the slice of service.TodoService the todo handlers need.
type TodoService interface {
	Create(ctx context.Context, userID int64, title string) (dom.Todo, error)
	List(ctx context.Context, userID int64) ([]dom.Todo, error)
	Update(ctx context.Context, userID, id int64, title string) (dom.Todo, error)
	Delete(ctx context.Context, userID, id int64) error
}

type TodoHandler struct {
	svc TodoService
}

func NewTodoHandler(svc TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// Create godoc
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateTodoRequest  true  "Todo body"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := auth.UserIDFromContext(c)
	t, err := h.svc.Create(c.Request.Context(), userID, req.Title)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create todo"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Todo created", "todo": todoToResponse(t)})
}

// List godoc
// @Summary      List the caller's todos
// @Tags         todos
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   dto.TodoResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	list, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list todos"})
		return
	}
	c.JSON(http.StatusOK, todosToResponses(list))
}

// Update godoc
// @Summary      Rename a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int  true  "Todo ID"
// @Param        body  body      dto.UpdateTodoRequest  true  "New title"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /todos/{id} [put]
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := auth.UserIDFromContext(c)
	t, err := h.svc.Update(c.Request.Context(), userID, id, req.Title)
	if err != nil {
		if !respondTodoError(c, err) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update todo"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo updated", "todo": todoToResponse(t)})
}

// Delete godoc
// @Summary      Delete a todo
// @Tags         todos
// @Produce      json
// @Security     CookieAuth
// @Param        id   path  int  true  "Todo ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID := auth.UserIDFromContext(c)
	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		if !respondTodoError(c, err) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete todo"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted"})
}

// respondTodoError writes the response for the shared todo error cases and
// reports whether it handled the error.
func respondTodoError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "not the owner of this todo"})
	case errors.Is(err, service.ErrEmptyTitle):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		return false
	}
	return true
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func todoToResponse(t dom.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:        t.ID,
		Title:     t.Title,
		UserID:    t.UserID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func todosToResponses(list []dom.Todo) []dto.TodoResponse {
	out := make([]dto.TodoResponse, len(list))
	for i := range list {
		out[i] = todoToResponse(list[i])
	}
	return out
}
