package api

import (
	"context"
	"net/http"

	"nexoformar/internal/entity"

	"github.com/gin-gonic/gin"
)

// Login authenticates with email and password and returns a session token.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.authService.ValidateUser(ctx, req.Email, req.Password)
	if err != nil {
		ServiceError(c, err)
		return
	}

	session, err := h.authService.IssueSession(user)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Register creates an account directly and logs it in.
func (h *HTTPHandler) Register(c *gin.Context) {
	var req entity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	session, err := h.authService.RegisterDirect(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// RequestRegistrationCode emails a one-time registration code. The reply
// is the same whether or not the address was usable.
func (h *HTTPHandler) RequestRegistrationCode(c *gin.Context) {
	var req entity.RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	// Mail delivery can be slow, so this handler gets a wider deadline
	// than the default.
	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*requestTimeout)
	defer cancel()

	resp, err := h.authService.RequestRegistrationCode(ctx, req.Email)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmRegistration finishes a code-confirmed registration and logs the
// new account in.
func (h *HTTPHandler) ConfirmRegistration(c *gin.Context) {
	var req entity.ConfirmRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	session, err := h.authService.ConfirmRegistration(ctx, req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// RequestRecoveryCode emails a password-recovery code. The reply is the
// same whether or not an account exists for the address.
func (h *HTTPHandler) RequestRecoveryCode(c *gin.Context) {
	var req entity.RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*requestTimeout)
	defer cancel()

	resp, err := h.authService.RequestRecoveryCode(ctx, req.Email)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResetPassword sets a new password after checking a recovery code.
func (h *HTTPHandler) ResetPassword(c *gin.Context) {
	var req entity.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.authService.ResetPassword(ctx, req.Email, req.Code, req.Password)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ValidateToken confirms the bearer token still maps onto an active
// account. AuthMiddleware has already done the work by the time this runs.
func (h *HTTPHandler) ValidateToken(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}
