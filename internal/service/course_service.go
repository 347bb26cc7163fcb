package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"nexoformar/internal/entity"
	"nexoformar/internal/model"

	"gorm.io/gorm"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 50
)

// Actor identifies the caller for authorization decisions.
type Actor struct {
	ID   uint
	Role entity.Role
}

// authorizeOwner is the single ownership-or-admin gate used by every
// mutating course path.
func authorizeOwner(actor Actor, ownerID uint) error {
	if actor.Role == entity.RoleAdmin {
		return nil
	}
	if actor.ID != 0 && actor.ID == ownerID {
		return nil
	}
	return ErrForbidden("not authorized to modify this resource")
}

// CourseService implements the course catalog: CRUD, filtered search and
// the ownership rules on mutation.
type CourseService struct {
	repo model.Repository
}

// NewCourseService creates the course service.
func NewCourseService(repo model.Repository) *CourseService {
	return &CourseService{repo: repo}
}

// Create publishes a course owned by the given user.
func (s *CourseService) Create(ctx context.Context, req entity.CourseCreateRequest, ownerID uint) (entity.CourseItem, error) {
	owner, err := s.repo.GetUserByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.CourseItem{}, ErrNotFound("user not found")
		}
		return entity.CourseItem{}, ErrInternal("failed to load user", err)
	}

	category, err := s.getCategory(ctx, req.CategoryID)
	if err != nil {
		return entity.CourseItem{}, err
	}

	course := &entity.DbCourse{
		OwnerID:     owner.ID,
		Title:       req.Title,
		Description: req.Description,
		Images:      entity.StringArray(req.Images),
		Link:        req.Link,
		CategoryID:  category.ID,
	}
	if err := s.repo.CreateCourse(ctx, course); err != nil {
		return entity.CourseItem{}, ErrInternal("failed to create course", err)
	}

	course.Owner = owner
	course.Category = category
	return makeCourseItem(course), nil
}

// FindAll lists every course, newest first.
func (s *CourseService) FindAll(ctx context.Context) ([]entity.CourseItem, error) {
	return s.list(ctx, &entity.CourseQuery{})
}

// FindByCategory lists the courses in one category, newest first.
func (s *CourseService) FindByCategory(ctx context.Context, categoryID uint) ([]entity.CourseItem, error) {
	return s.list(ctx, &entity.CourseQuery{CategoryIDs: []uint{categoryID}})
}

// FindByOwner lists the courses published by one user, newest first.
func (s *CourseService) FindByOwner(ctx context.Context, ownerID uint) ([]entity.CourseItem, error) {
	return s.list(ctx, &entity.CourseQuery{OwnerID: ownerID})
}

// FindOne loads a single course. Soft-deleted courses are not found.
func (s *CourseService) FindOne(ctx context.Context, id uint) (entity.CourseItem, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return entity.CourseItem{}, err
	}
	return makeCourseItem(course), nil
}

// ListPaginated returns one page of the full catalog.
func (s *CourseService) ListPaginated(ctx context.Context, params entity.PageParams) (entity.CoursePageResponse, error) {
	return s.page(ctx, &entity.CourseQuery{}, params)
}

// Search returns one page of courses matching the category and keyword
// filters.
func (s *CourseService) Search(ctx context.Context, filter entity.CourseSearchFilter) (entity.CoursePageResponse, error) {
	query := &entity.CourseQuery{
		CategoryIDs: ParseCategoryIDs(filter.CategoryIDs),
		Keyword:     strings.TrimSpace(filter.Keywords),
	}
	return s.page(ctx, query, filter.PageParams)
}

// Update applies a partial update. A supplied category is re-resolved and
// must exist; the owner is never touched.
func (s *CourseService) Update(ctx context.Context, id uint, req entity.CourseUpdateRequest) (entity.CourseItem, error) {
	if _, err := s.getCourse(ctx, id); err != nil {
		return entity.CourseItem{}, err
	}

	updates := entity.CourseUpdates{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	}
	if req.Images != nil {
		images := entity.StringArray(*req.Images)
		updates.Images = &images
	}
	if req.CategoryID != nil {
		category, err := s.getCategory(ctx, *req.CategoryID)
		if err != nil {
			return entity.CourseItem{}, err
		}
		updates.CategoryID = &category.ID
	}

	if err := s.repo.UpdateCourse(ctx, id, updates); err != nil {
		return entity.CourseItem{}, ErrInternal("failed to update course", err)
	}

	updated, err := s.getCourse(ctx, id)
	if err != nil {
		return entity.CourseItem{}, err
	}
	return makeCourseItem(updated), nil
}

// UpdateIfAuthorized updates a course when the caller is its owner or an
// admin.
func (s *CourseService) UpdateIfAuthorized(ctx context.Context, id uint, req entity.CourseUpdateRequest, actor Actor) (entity.CourseItem, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return entity.CourseItem{}, err
	}
	if err := authorizeOwner(actor, course.OwnerID); err != nil {
		return entity.CourseItem{}, err
	}
	return s.Update(ctx, id, req)
}

// Remove soft-deletes a course.
func (s *CourseService) Remove(ctx context.Context, id uint) error {
	if err := s.repo.SoftDeleteCourse(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("course not found")
		}
		return ErrInternal("failed to delete course", err)
	}
	return nil
}

// RemoveIfAuthorized soft-deletes a course when the caller is its owner or
// an admin.
func (s *CourseService) RemoveIfAuthorized(ctx context.Context, id uint, actor Actor) error {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(actor, course.OwnerID); err != nil {
		return err
	}
	return s.Remove(ctx, id)
}

func (s *CourseService) list(ctx context.Context, query *entity.CourseQuery) ([]entity.CourseItem, error) {
	courses, _, err := s.repo.SearchCourses(ctx, query)
	if err != nil {
		return nil, ErrInternal("failed to list courses", err)
	}
	items := make([]entity.CourseItem, 0, len(courses))
	for idx := range courses {
		items = append(items, makeCourseItem(&courses[idx]))
	}
	return items, nil
}

func (s *CourseService) page(ctx context.Context, query *entity.CourseQuery, params entity.PageParams) (entity.CoursePageResponse, error) {
	page, limit := NormalizePagination(params)
	query.Offset = (page - 1) * limit
	query.Limit = limit

	courses, total, err := s.repo.SearchCourses(ctx, query)
	if err != nil {
		return entity.CoursePageResponse{}, ErrInternal("failed to search courses", err)
	}

	items := make([]entity.CourseItem, 0, len(courses))
	for idx := range courses {
		items = append(items, makeCourseItem(&courses[idx]))
	}
	return entity.CoursePageResponse{
		Courses: items,
		Meta:    makePageMeta(total, page, limit),
	}, nil
}

func (s *CourseService) getCourse(ctx context.Context, id uint) (*entity.DbCourse, error) {
	course, err := s.repo.GetCourse(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("course not found")
		}
		return nil, ErrInternal("failed to load course", err)
	}
	return course, nil
}

func (s *CourseService) getCategory(ctx context.Context, id uint) (*entity.DbCategory, error) {
	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("category not found")
		}
		return nil, ErrInternal("failed to load category", err)
	}
	return category, nil
}

// ParseCategoryIDs parses a comma-separated id list, trimming whitespace
// and silently dropping tokens that are not positive integers.
func ParseCategoryIDs(raw string) []uint {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var ids []uint
	for _, token := range strings.Split(raw, ",") {
		value, err := strconv.ParseUint(strings.TrimSpace(token), 10, 64)
		if err != nil || value == 0 {
			continue
		}
		ids = append(ids, uint(value))
	}
	return ids
}

// NormalizePagination resolves the raw page/limit inputs. Values that fail
// to parse fall back to page 1 and limit 20; the page floor is 1 and the
// limit is capped at 50.
func NormalizePagination(params entity.PageParams) (page, limit int) {
	page = defaultPageNumber(params.Page)
	limit = defaultLimit(params.Limit)
	return page, limit
}

func defaultPageNumber(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 1 {
		return 1
	}
	return value
}

func defaultLimit(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 1 {
		return defaultPageLimit
	}
	if value > maxPageLimit {
		return maxPageLimit
	}
	return value
}

func makePageMeta(total int64, page, limit int) *entity.Meta {
	totalPages := int64(1)
	if limit > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
		if totalPages < 1 {
			totalPages = 1
		}
	}
	return &entity.Meta{
		Page:       int64(page),
		Limit:      int64(limit),
		Total:      total,
		TotalPages: totalPages,
	}
}

func makeCourseItem(course *entity.DbCourse) entity.CourseItem {
	if course == nil {
		return entity.CourseItem{}
	}
	item := entity.CourseItem{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Images:      course.Images.ToSlice(),
		Link:        course.Link,
		PublishedAt: course.PublishedAt,
	}
	if course.Owner != nil {
		item.Owner = makeUserSummary(course.Owner)
	}
	if course.Category != nil {
		item.Category = entity.Category{ID: course.Category.ID, Name: course.Category.Name}
	}
	return item
}
