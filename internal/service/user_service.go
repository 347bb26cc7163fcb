package service

import (
	"context"
	"errors"
	"strings"

	"nexoformar/internal/entity"
	"nexoformar/internal/model"

	"gorm.io/gorm"
)

// UserService covers profile management and the admin-only user operations.
type UserService struct {
	repo model.Repository
}

// NewUserService creates the user service.
func NewUserService(repo model.Repository) *UserService {
	return &UserService{repo: repo}
}

// GetMe returns the caller's own profile.
func (s *UserService) GetMe(ctx context.Context, userID uint) (entity.UserSummary, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return entity.UserSummary{}, err
	}
	return makeUserSummary(user), nil
}

// UpdateMe changes the caller's name and/or photo URL. At least one field
// must be present.
func (s *UserService) UpdateMe(ctx context.Context, userID uint, req entity.UpdateProfileRequest) (entity.UserSummary, error) {
	if req.Name == nil && req.PhotoURL == nil {
		return entity.UserSummary{}, ErrBadRequest("name and/or photo_url must be provided")
	}

	if _, err := s.getUser(ctx, userID); err != nil {
		return entity.UserSummary{}, err
	}

	updates := entity.UserUpdates{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return entity.UserSummary{}, ErrBadRequest("name must not be empty")
		}
		updates.Name = &name
	}
	if req.PhotoURL != nil {
		photo := strings.TrimSpace(*req.PhotoURL)
		updates.PhotoURL = &photo
	}

	if err := s.repo.UpdateUser(ctx, userID, updates); err != nil {
		return entity.UserSummary{}, ErrInternal("failed to update profile", err)
	}

	updated, err := s.getUser(ctx, userID)
	if err != nil {
		return entity.UserSummary{}, err
	}
	return makeUserSummary(updated), nil
}

// FindAll lists every user, newest first. Admin only at the boundary.
func (s *UserService) FindAll(ctx context.Context) ([]entity.UserSummary, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, ErrInternal("failed to list users", err)
	}
	summaries := make([]entity.UserSummary, 0, len(users))
	for idx := range users {
		summaries = append(summaries, makeUserSummary(&users[idx]))
	}
	return summaries, nil
}

// ChangeRole reassigns a user's role. The role must be a known value.
func (s *UserService) ChangeRole(ctx context.Context, userID uint, rawRole string) (entity.UserSummary, error) {
	role, ok := entity.ParseRole(strings.TrimSpace(rawRole))
	if !ok {
		return entity.UserSummary{}, ErrBadRequest("invalid role")
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return entity.UserSummary{}, err
	}

	if err := s.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{Role: &role}); err != nil {
		return entity.UserSummary{}, ErrInternal("failed to change role", err)
	}
	user.Role = role
	return makeUserSummary(user), nil
}

// ChangeStatus toggles a user between ACTIVE and INACTIVE. BANNED is not
// settable here and a banned user cannot be moved out of that state.
func (s *UserService) ChangeStatus(ctx context.Context, userID uint, rawStatus string) (entity.UserSummary, error) {
	status, ok := entity.ParseStatus(strings.TrimSpace(rawStatus))
	if !ok {
		return entity.UserSummary{}, ErrBadRequest("invalid status")
	}
	switch status {
	case entity.StatusActive, entity.StatusInactive:
		// allowed targets
	case entity.StatusBanned:
		return entity.UserSummary{}, ErrBadRequest("invalid status for this action")
	default:
		return entity.UserSummary{}, ErrBadRequest("invalid status")
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return entity.UserSummary{}, err
	}
	if user.Status == entity.StatusBanned {
		return entity.UserSummary{}, ErrBadRequest("user is permanently banned and cannot be reactivated")
	}

	if err := s.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{Status: &status}); err != nil {
		return entity.UserSummary{}, ErrInternal("failed to change status", err)
	}
	user.Status = status
	return makeUserSummary(user), nil
}

// Ban permanently bans a user. There is no way back through ChangeStatus.
func (s *UserService) Ban(ctx context.Context, userID uint) (entity.UserSummary, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return entity.UserSummary{}, err
	}

	banned := entity.StatusBanned
	if err := s.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{Status: &banned}); err != nil {
		return entity.UserSummary{}, ErrInternal("failed to ban user", err)
	}
	user.Status = banned
	return makeUserSummary(user), nil
}

func (s *UserService) getUser(ctx context.Context, userID uint) (*entity.DbUser, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("user not found")
		}
		return nil, ErrInternal("failed to load user", err)
	}
	return user, nil
}

func makeUserSummary(user *entity.DbUser) entity.UserSummary {
	if user == nil {
		return entity.UserSummary{}
	}
	return entity.UserSummary{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		PhotoURL:  user.PhotoURL,
		CreatedAt: user.CreatedAt,
	}
}
