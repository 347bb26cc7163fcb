package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nexoformar/internal/api"
	"nexoformar/internal/config"
	"nexoformar/internal/model"
	"nexoformar/internal/notify"
	"nexoformar/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("failed to parse config")
		return
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	if err := model.SeedAdminUser(context.Background(), repo, cfg); err != nil {
		logrus.WithError(err).Warn("failed to seed admin user")
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise storage")
		return
	}

	mailer, err := notify.NewSMTPSender(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise mail sender")
		return
	}

	httpHandler, err := api.NewHTTPHandler(cfg, repo, store, mailer)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/register", httpHandler.Register)
	authGroup.POST("/register/request-code", httpHandler.RequestRegistrationCode)
	authGroup.POST("/register/confirm", httpHandler.ConfirmRegistration)
	authGroup.POST("/login", httpHandler.Login)
	authGroup.POST("/recovery", httpHandler.RequestRecoveryCode)
	authGroup.POST("/reset-password", httpHandler.ResetPassword)
	authGroup.GET("/validate", httpHandler.AuthMiddleware(), httpHandler.ValidateToken)

	users := apiGroup.Group("/usuarios")
	users.Use(httpHandler.AuthMiddleware())
	users.GET("/me", httpHandler.Me)
	users.PATCH("/me", httpHandler.UpdateMe)

	userAdmin := users.Group("")
	userAdmin.Use(httpHandler.RequireAdmin())
	userAdmin.GET("", httpHandler.ListUsers)
	userAdmin.PATCH("/:id/rol", httpHandler.ChangeUserRole)
	userAdmin.PATCH("/:id/estado", httpHandler.ChangeUserStatus)
	userAdmin.DELETE("/:id", httpHandler.BanUser)

	courses := apiGroup.Group("/cursos")
	courses.GET("", httpHandler.ListCourses)
	courses.GET("/buscar", httpHandler.SearchCourses)
	courses.GET("/mis-cursos", httpHandler.AuthMiddleware(), httpHandler.MyCourses)
	courses.GET("/:id", httpHandler.GetCourse)
	courses.POST("", httpHandler.AuthMiddleware(), httpHandler.CreateCourse)
	courses.POST("/imagenes", httpHandler.AuthMiddleware(), httpHandler.UploadCourseImages)
	courses.PUT("/:id", httpHandler.AuthMiddleware(), httpHandler.UpdateCourse)
	courses.DELETE("/:id", httpHandler.AuthMiddleware(), httpHandler.DeleteCourse)

	categories := apiGroup.Group("/categorias")
	categories.GET("", httpHandler.ListCategories)
	categories.GET("/:id", httpHandler.GetCategory)

	categoryAdmin := categories.Group("")
	categoryAdmin.Use(httpHandler.AuthMiddleware(), httpHandler.RequireAdmin())
	categoryAdmin.POST("", httpHandler.CreateCategory)
	categoryAdmin.PUT("/:id", httpHandler.UpdateCategory)
	categoryAdmin.DELETE("/:id", httpHandler.DeleteCategory)

	if localProvider, ok := store.(storage.LocalBaseDirProvider); ok {
		publicPrefix := strings.TrimSpace(cfg.StoragePublicBaseURL)
		if publicPrefix == "" {
			publicPrefix = "/files"
		}
		if !strings.HasPrefix(publicPrefix, "http://") && !strings.HasPrefix(publicPrefix, "https://") {
			if !strings.HasPrefix(publicPrefix, "/") {
				publicPrefix = "/" + publicPrefix
			}
			r.Static(publicPrefix, localProvider.LocalBaseDir())
		}
	}

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("server starting")
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  120 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  300 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("server failed to start")
	}
}

// CORSMiddleware allows cross-origin requests from browser clients.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware logs one structured line per request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}
