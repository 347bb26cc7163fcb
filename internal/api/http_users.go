package api

import (
	"context"
	"net/http"

	"nexoformar/internal/entity"

	"github.com/gin-gonic/gin"
)

// Me returns the caller's profile.
func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	summary, err := h.userService.GetMe(ctx, user.ID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// UpdateMe changes the caller's own name and/or photo.
func (h *HTTPHandler) UpdateMe(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	summary, err := h.userService.UpdateMe(ctx, user.ID, req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListUsers returns every account, newest first. Admin only.
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	users, err := h.userService.FindAll(ctx)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// ChangeUserRole reassigns a user's role. Admin only.
func (h *HTTPHandler) ChangeUserRole(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	summary, err := h.userService.ChangeRole(ctx, userID, req.Role)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ChangeUserStatus toggles a user between ACTIVE and INACTIVE. Admin only.
func (h *HTTPHandler) ChangeUserStatus(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	summary, err := h.userService.ChangeStatus(ctx, userID, req.Status)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// BanUser permanently bans a user. Admin only.
func (h *HTTPHandler) BanUser(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	summary, err := h.userService.Ban(ctx, userID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
