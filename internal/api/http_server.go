package api

import (
	"strings"
	"time"

	"nexoformar/internal/auth"
	"nexoformar/internal/config"
	"nexoformar/internal/model"
	"nexoformar/internal/notify"
	"nexoformar/internal/service"
	"nexoformar/internal/storage"
)

// HTTPHandler holds every dependency the gin handlers need.
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Storage
	storagePublicBase string
	authManager       *auth.Manager

	authService     *service.AuthService
	userService     *service.UserService
	courseService   *service.CourseService
	categoryService *service.CategoryService
}

// NewHTTPHandler wires the services and the JWT manager behind one handler
// struct.
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage, mailer notify.Sender) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	handler := &HTTPHandler{
		cfg:               cfg,
		repo:              repo,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		authManager:       authManager,
		authService:       service.NewAuthService(repo, authManager, mailer, cfg),
		userService:       service.NewUserService(repo),
		courseService:     service.NewCourseService(repo),
		categoryService:   service.NewCategoryService(repo),
	}

	return handler, nil
}

func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}
