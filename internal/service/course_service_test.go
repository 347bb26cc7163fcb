package service

import (
	"context"
	"strconv"
	"testing"

	"nexoformar/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOwnerAndCategory(t *testing.T, repo *fakeRepo) (uint, uint) {
	t.Helper()
	ctx := context.Background()
	owner := &entity.DbUser{
		Name:         "Owner",
		Email:        "owner@example.com",
		PasswordHash: "x",
		Role:         entity.RoleNormal,
		Status:       entity.StatusActive,
	}
	require.NoError(t, repo.CreateUser(ctx, owner))
	category := &entity.DbCategory{Name: "Programación"}
	require.NoError(t, repo.CreateCategory(ctx, category))
	return owner.ID, category.ID
}

func TestCreateCourse(t *testing.T) {
	repo := newFakeRepo()
	svc := NewCourseService(repo)
	ctx := context.Background()
	ownerID, categoryID := seedOwnerAndCategory(t, repo)

	course, err := svc.Create(ctx, entity.CourseCreateRequest{
		Title:       "Go desde cero",
		Description: "Curso introductorio",
		Images:      []string{"https://cdn.example.com/a.png"},
		Link:        "https://example.com/curso",
		CategoryID:  categoryID,
	}, ownerID)
	require.NoError(t, err)
	assert.NotZero(t, course.ID)
	assert.Equal(t, "Go desde cero", course.Title)
	assert.Equal(t, ownerID, course.Owner.ID)
	assert.Equal(t, categoryID, course.Category.ID)
}

func TestCreateCourseUnknownOwnerAndCategory(t *testing.T) {
	repo := newFakeRepo()
	svc := NewCourseService(repo)
	ctx := context.Background()
	ownerID, categoryID := seedOwnerAndCategory(t, repo)

	_, err := svc.Create(ctx, entity.CourseCreateRequest{
		Title:       "t",
		Description: "d",
		Link:        "https://example.com",
		CategoryID:  categoryID,
	}, ownerID+100)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "user not found", err.Error())

	_, err = svc.Create(ctx, entity.CourseCreateRequest{
		Title:       "t",
		Description: "d",
		Link:        "https://example.com",
		CategoryID:  categoryID + 100,
	}, ownerID)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "category not found", err.Error())
}

func TestUpdateCourseAuthorization(t *testing.T) {
	repo := newFakeRepo()
	svc := NewCourseService(repo)
	ctx := context.Background()
	ownerID, categoryID := seedOwnerAndCategory(t, repo)

	course, err := svc.Create(ctx, entity.CourseCreateRequest{
		Title:       "Original",
		Description: "d",
		Link:        "https://example.com",
		CategoryID:  categoryID,
	}, ownerID)
	require.NoError(t, err)

	newTitle := "Renamed"

	// A stranger may not edit.
	_, err = svc.UpdateIfAuthorized(ctx, course.ID, entity.CourseUpdateRequest{Title: &newTitle},
		Actor{ID: ownerID + 5, Role: entity.RoleNormal})
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))

	// The owner may.
	updated, err := svc.UpdateIfAuthorized(ctx, course.ID, entity.CourseUpdateRequest{Title: &newTitle},
		Actor{ID: ownerID, Role: entity.RoleNormal})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	// So may any admin.
	adminTitle := "Admin edit"
	updated, err = svc.UpdateIfAuthorized(ctx, course.ID, entity.CourseUpdateRequest{Title: &adminTitle},
		Actor{ID: ownerID + 9, Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "Admin edit", updated.Title)
}

func TestRemoveCourseAuthorizationAndSoftDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewCourseService(repo)
	ctx := context.Background()
	ownerID, categoryID := seedOwnerAndCategory(t, repo)

	course, err := svc.Create(ctx, entity.CourseCreateRequest{
		Title:       "t",
		Description: "d",
		Link:        "https://example.com",
		CategoryID:  categoryID,
	}, ownerID)
	require.NoError(t, err)

	err = svc.RemoveIfAuthorized(ctx, course.ID, Actor{ID: ownerID + 5, Role: entity.RoleNormal})
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))

	require.NoError(t, svc.RemoveIfAuthorized(ctx, course.ID, Actor{ID: ownerID, Role: entity.RoleNormal}))

	_, err = svc.FindOne(ctx, course.ID)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))

	// Soft-deleted courses still hold their category reference.
	count, err := repo.CountCoursesByCategory(ctx, categoryID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSearchCoursesFiltersAndPaging(t *testing.T) {
	repo := newFakeRepo()
	svc := NewCourseService(repo)
	ctx := context.Background()
	ownerID, categoryID := seedOwnerAndCategory(t, repo)

	other := &entity.DbCategory{Name: "Diseño"}
	require.NoError(t, repo.CreateCategory(ctx, other))

	titles := []string{"Go desde cero", "Go avanzado", "Figma básico"}
	categories := []uint{categoryID, categoryID, other.ID}
	for i, title := range titles {
		_, err := svc.Create(ctx, entity.CourseCreateRequest{
			Title:       title,
			Description: "d",
			Link:        "https://example.com",
			CategoryID:  categories[i],
		}, ownerID)
		require.NoError(t, err)
	}

	page, err := svc.Search(ctx, entity.CourseSearchFilter{
		CategoryIDs: strconv.FormatUint(uint64(categoryID), 10),
		Keywords:    "go",
	})
	require.NoError(t, err)
	assert.Len(t, page.Courses, 2)
	assert.Equal(t, int64(2), page.Meta.Total)
	assert.Equal(t, int64(1), page.Meta.Page)
	assert.Equal(t, int64(20), page.Meta.Limit)

	// Keyword match is case-insensitive across title and description.
	page, err = svc.Search(ctx, entity.CourseSearchFilter{Keywords: "FIGMA"})
	require.NoError(t, err)
	assert.Len(t, page.Courses, 1)

	// Unknown category tokens are dropped, not rejected.
	page, err = svc.Search(ctx, entity.CourseSearchFilter{CategoryIDs: "x, 0, "})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Meta.Total)
}

func TestListPaginatedMeta(t *testing.T) {
	repo := newFakeRepo()
	svc := NewCourseService(repo)
	ctx := context.Background()
	ownerID, categoryID := seedOwnerAndCategory(t, repo)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, entity.CourseCreateRequest{
			Title:       "t",
			Description: "d",
			Link:        "https://example.com",
			CategoryID:  categoryID,
		}, ownerID)
		require.NoError(t, err)
	}

	page, err := svc.ListPaginated(ctx, entity.PageParams{Page: "2", Limit: "2"})
	require.NoError(t, err)
	assert.Len(t, page.Courses, 2)
	assert.Equal(t, int64(2), page.Meta.Page)
	assert.Equal(t, int64(5), page.Meta.Total)
	assert.Equal(t, int64(3), page.Meta.TotalPages)

	// An empty catalog still reports one (empty) page.
	empty := newFakeRepo()
	emptySvc := NewCourseService(empty)
	page, err = emptySvc.ListPaginated(ctx, entity.PageParams{})
	require.NoError(t, err)
	assert.Empty(t, page.Courses)
	assert.Equal(t, int64(1), page.Meta.TotalPages)
}

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name          string
		page          string
		limit         string
		expectedPage  int
		expectedLimit int
	}{
		{"defaults", "", "", 1, 20},
		{"garbage", "abc", "xyz", 1, 20},
		{"zeroes", "0", "0", 1, 20},
		{"negative page huge limit", "-5", "999", 1, 50},
		{"in range", "2", "10", 2, 10},
		{"limit at cap", "1", "50", 1, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := NormalizePagination(entity.PageParams{Page: tt.page, Limit: tt.limit})
			assert.Equal(t, tt.expectedPage, page)
			assert.Equal(t, tt.expectedLimit, limit)
		})
	}
}

func TestParseCategoryIDs(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []uint
	}{
		{"empty", "", nil},
		{"single", "7", []uint{7}},
		{"spaced list", "1, 2, 3", []uint{1, 2, 3}},
		{"drops junk", "1, 2, x", []uint{1, 2}},
		{"drops zero", "0,3", []uint{3}},
		{"all junk", "a,b,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCategoryIDs(tt.raw))
		})
	}
}
