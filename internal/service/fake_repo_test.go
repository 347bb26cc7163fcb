package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"nexoformar/internal/entity"

	"gorm.io/gorm"
)

// fakeRepo is an in-memory model.Repository used by the service tests.
type fakeRepo struct {
	users          map[uint]*entity.DbUser
	codes          map[uint]*entity.DbVerificationCode
	courses        map[uint]*entity.DbCourse
	deletedCourses map[uint]*entity.DbCourse
	categories     map[uint]*entity.DbCategory
	nextID         uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:          make(map[uint]*entity.DbUser),
		codes:          make(map[uint]*entity.DbVerificationCode),
		courses:        make(map[uint]*entity.DbCourse),
		deletedCourses: make(map[uint]*entity.DbCourse),
		categories:     make(map[uint]*entity.DbCategory),
	}
}

func (r *fakeRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *fakeRepo) CreateUser(_ context.Context, user *entity.DbUser) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.id()
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeRepo) UpdateUser(_ context.Context, id uint, updates entity.UserUpdates) error {
	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if updates.Name != nil {
		user.Name = *updates.Name
	}
	if updates.PhotoURL != nil {
		user.PhotoURL = *updates.PhotoURL
	}
	if updates.PasswordHash != nil {
		user.PasswordHash = *updates.PasswordHash
	}
	if updates.Role != nil {
		user.Role = *updates.Role
	}
	if updates.Status != nil {
		user.Status = *updates.Status
	}
	return nil
}

func (r *fakeRepo) GetUserByEmail(_ context.Context, email string) (*entity.DbUser, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetUserByID(_ context.Context, id uint) (*entity.DbUser, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeRepo) ListUsers(_ context.Context) ([]entity.DbUser, error) {
	out := make([]entity.DbUser, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeRepo) CountUsers(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeRepo) ReplaceCode(_ context.Context, code *entity.DbVerificationCode) error {
	for id, existing := range r.codes {
		if existing.Email == code.Email {
			delete(r.codes, id)
		}
	}
	code.ID = r.id()
	copied := *code
	r.codes[code.ID] = &copied
	return nil
}

func (r *fakeRepo) GetCodeByEmail(_ context.Context, email string) (*entity.DbVerificationCode, error) {
	for _, code := range r.codes {
		if code.Email == email {
			copied := *code
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) DeleteCode(_ context.Context, id uint) error {
	delete(r.codes, id)
	return nil
}

func (r *fakeRepo) CreateCourse(_ context.Context, course *entity.DbCourse) error {
	course.ID = r.id()
	course.PublishedAt = time.Now()
	copied := *course
	copied.Owner = nil
	copied.Category = nil
	r.courses[course.ID] = &copied
	return nil
}

func (r *fakeRepo) UpdateCourse(_ context.Context, id uint, updates entity.CourseUpdates) error {
	course, ok := r.courses[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if updates.Title != nil {
		course.Title = *updates.Title
	}
	if updates.Description != nil {
		course.Description = *updates.Description
	}
	if updates.Images != nil {
		course.Images = *updates.Images
	}
	if updates.Link != nil {
		course.Link = *updates.Link
	}
	if updates.CategoryID != nil {
		course.CategoryID = *updates.CategoryID
	}
	return nil
}

func (r *fakeRepo) GetCourse(_ context.Context, id uint) (*entity.DbCourse, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.hydrate(course), nil
}

func (r *fakeRepo) SearchCourses(_ context.Context, query *entity.CourseQuery) ([]entity.DbCourse, int64, error) {
	var matched []*entity.DbCourse
	for _, course := range r.courses {
		if len(query.CategoryIDs) > 0 && !containsID(query.CategoryIDs, course.CategoryID) {
			continue
		}
		if query.OwnerID != 0 && course.OwnerID != query.OwnerID {
			continue
		}
		if query.Keyword != "" {
			keyword := strings.ToLower(query.Keyword)
			title := strings.ToLower(course.Title)
			description := strings.ToLower(course.Description)
			if !strings.Contains(title, keyword) && !strings.Contains(description, keyword) {
				continue
			}
		}
		matched = append(matched, course)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].PublishedAt.Equal(matched[j].PublishedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].PublishedAt.After(matched[j].PublishedAt)
	})

	total := int64(len(matched))

	if query.Limit > 0 {
		if query.Offset >= len(matched) {
			matched = nil
		} else {
			end := query.Offset + query.Limit
			if end > len(matched) {
				end = len(matched)
			}
			matched = matched[query.Offset:end]
		}
	}

	out := make([]entity.DbCourse, 0, len(matched))
	for _, course := range matched {
		out = append(out, *r.hydrate(course))
	}
	return out, total, nil
}

func (r *fakeRepo) SoftDeleteCourse(_ context.Context, id uint) error {
	course, ok := r.courses[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.courses, id)
	r.deletedCourses[id] = course
	return nil
}

func (r *fakeRepo) CreateCategory(_ context.Context, category *entity.DbCategory) error {
	category.ID = r.id()
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *fakeRepo) UpdateCategory(_ context.Context, id uint, updates entity.CategoryUpdates) error {
	category, ok := r.categories[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if updates.Name != nil {
		category.Name = *updates.Name
	}
	return nil
}

func (r *fakeRepo) GetCategory(_ context.Context, id uint) (*entity.DbCategory, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *fakeRepo) ListCategories(_ context.Context) ([]entity.DbCategory, error) {
	out := make([]entity.DbCategory, 0, len(r.categories))
	for _, category := range r.categories {
		out = append(out, *category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) DeleteCategory(_ context.Context, id uint) error {
	if _, ok := r.categories[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.categories, id)
	return nil
}

// CountCoursesByCategory counts live and soft-deleted courses alike, the
// same way the SQL implementation does with Unscoped.
func (r *fakeRepo) CountCoursesByCategory(_ context.Context, categoryID uint) (int64, error) {
	var count int64
	for _, course := range r.courses {
		if course.CategoryID == categoryID {
			count++
		}
	}
	for _, course := range r.deletedCourses {
		if course.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) hydrate(course *entity.DbCourse) *entity.DbCourse {
	copied := *course
	if owner, ok := r.users[course.OwnerID]; ok {
		ownerCopy := *owner
		copied.Owner = &ownerCopy
	}
	if category, ok := r.categories[course.CategoryID]; ok {
		categoryCopy := *category
		copied.Category = &categoryCopy
	}
	return &copied
}

func containsID(ids []uint, id uint) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// fakeMailer records outbound codes and can be told to fail.
type fakeMailer struct {
	sent []sentCode
	err  error
}

type sentCode struct {
	To   string
	Code string
}

func (m *fakeMailer) SendCode(_ context.Context, to, code string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentCode{To: to, Code: code})
	return nil
}

func (m *fakeMailer) lastCode() string {
	if len(m.sent) == 0 {
		return ""
	}
	return m.sent[len(m.sent)-1].Code
}
