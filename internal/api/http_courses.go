package api

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"nexoformar/internal/entity"
	"nexoformar/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	maxImageUploadFiles = 10
	maxImageUploadSize  = 5 << 20 // per file
)

// CreateCourse publishes a course owned by the caller.
func (h *HTTPHandler) CreateCourse(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.CourseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	course, err := h.courseService.Create(ctx, req, user.ID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// ListCourses serves the public catalog. A categoria_id or usuario_id
// query filter returns a plain list; without filters the catalog is
// paginated.
func (h *HTTPHandler) ListCourses(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if raw := strings.TrimSpace(c.Query("categoria_id")); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || categoryID == 0 {
			BadRequest(c, ErrCodeInvalidRequest, "invalid categoria_id")
			return
		}
		courses, err := h.courseService.FindByCategory(ctx, uint(categoryID))
		if err != nil {
			ServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, entity.CourseListResponse{Courses: courses})
		return
	}

	if raw := strings.TrimSpace(c.Query("usuario_id")); raw != "" {
		ownerID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || ownerID == 0 {
			BadRequest(c, ErrCodeInvalidRequest, "invalid usuario_id")
			return
		}
		courses, err := h.courseService.FindByOwner(ctx, uint(ownerID))
		if err != nil {
			ServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, entity.CourseListResponse{Courses: courses})
		return
	}

	page, err := h.courseService.ListPaginated(ctx, entity.PageParams{
		Page:  c.Query("page"),
		Limit: c.Query("limit"),
	})
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// SearchCourses serves the filtered, paginated catalog search.
func (h *HTTPHandler) SearchCourses(c *gin.Context) {
	var filter entity.CourseSearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid search filters")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	page, err := h.courseService.Search(ctx, filter)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// MyCourses lists the caller's own courses.
func (h *HTTPHandler) MyCourses(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	courses, err := h.courseService.FindByOwner(ctx, user.ID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.CourseListResponse{Courses: courses})
}

// GetCourse returns a single course.
func (h *HTTPHandler) GetCourse(c *gin.Context) {
	courseID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	course, err := h.courseService.FindOne(ctx, courseID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// UpdateCourse applies a partial update. Only the owner or an admin may
// edit a course.
func (h *HTTPHandler) UpdateCourse(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	courseID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.CourseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	course, err := h.courseService.UpdateIfAuthorized(ctx, courseID, req, user.Actor())
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// DeleteCourse soft-deletes a course. Only the owner or an admin may
// delete it.
func (h *HTTPHandler) DeleteCourse(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	courseID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.courseService.RemoveIfAuthorized(ctx, courseID, user.Actor()); err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.MessageResponse{Message: "course deleted"})
}

// UploadCourseImages stores up to ten image files and returns their public
// URLs, ready to be attached to a course payload.
func (h *HTTPHandler) UploadCourseImages(c *gin.Context) {
	if h.storage == nil {
		InternalError(c, "storage not available")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid multipart form")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "no images provided")
		return
	}
	if len(files) > maxImageUploadFiles {
		BadRequest(c, ErrCodeInvalidRequest, "too many files")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 6*requestTimeout)
	defer cancel()

	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		if fileHeader.Size > maxImageUploadSize {
			BadRequest(c, ErrCodeInvalidRequest, "file too large")
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			BadRequest(c, ErrCodeInvalidRequest, "unreadable file")
			return
		}
		data, err := io.ReadAll(io.LimitReader(file, maxImageUploadSize+1))
		file.Close()
		if err != nil {
			InternalError(c, "failed to read file")
			return
		}
		if int64(len(data)) > maxImageUploadSize {
			BadRequest(c, ErrCodeInvalidRequest, "file too large")
			return
		}

		ext := strings.TrimPrefix(filepath.Ext(fileHeader.Filename), ".")
		base := strings.TrimSuffix(filepath.Base(fileHeader.Filename), filepath.Ext(fileHeader.Filename))

		key, err := h.storage.Save(ctx, data, storage.SaveOptions{
			Category:  "courses",
			Extension: ext,
			BaseName:  base,
		})
		if err != nil {
			logrus.WithError(err).Error("failed to store course image")
			InternalError(c, "failed to store image")
			return
		}
		urls = append(urls, h.publicURL(key))
	}

	c.JSON(http.StatusCreated, gin.H{"urls": urls})
}
