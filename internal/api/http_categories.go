package api

import (
	"context"
	"net/http"

	"nexoformar/internal/entity"

	"github.com/gin-gonic/gin"
)

// ListCategories returns every category.
func (h *HTTPHandler) ListCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	categories, err := h.categoryService.FindAll(ctx)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.CategoryListResponse{Categories: categories})
}

// GetCategory returns a single category.
func (h *HTTPHandler) GetCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	category, err := h.categoryService.FindOne(ctx, categoryID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory stores a new category. Admin only.
func (h *HTTPHandler) CreateCategory(c *gin.Context) {
	var req entity.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	category, err := h.categoryService.Create(ctx, req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory renames a category. Admin only.
func (h *HTTPHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	category, err := h.categoryService.Update(ctx, categoryID, req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category with no courses attached. Admin only.
func (h *HTTPHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.categoryService.Remove(ctx, categoryID); err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.MessageResponse{Message: "category deleted"})
}
