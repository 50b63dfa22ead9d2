package handlers

import (
	"context"
	"errors"
	"net/http"

	"Tasker/internal/auth"
	dom "Tasker/internal/domain"
	"Tasker/internal/dto"
	"Tasker/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminService is the slice of service.UserService the admin handler needs.
type AdminService interface {
	ListUsers(ctx context.Context, requesterID int64) ([]dom.User, error)
}

// AdminHandler serves admin-only endpoints.
type AdminHandler struct {
	svc AdminService
}

// NewAdminHandler returns a new AdminHandler.
func NewAdminHandler(svc AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ListUsers godoc
// @Summary      List all users (admin only)
// @Tags         admin
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   dto.UserResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	requesterID := auth.UserIDFromContext(c)
	users, err := h.svc.ListUsers(c.Request.Context(), requesterID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	out := make([]dto.UserResponse, len(users))
	for i := range users {
		out[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, out)
}
