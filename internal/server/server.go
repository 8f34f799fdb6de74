package server

import (
	"net/http"
	"time"

	"diascreen/internal/classifier"
	"diascreen/internal/config"
	"diascreen/internal/handler"
	"diascreen/internal/middleware"
	"diascreen/internal/repository"
	"diascreen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Server struct {
	router  *gin.Engine
	db      *sqlx.DB
	cfg     *config.Config
	adapter *classifier.Adapter
	logger  *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, adapter *classifier.Adapter, logger *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router:  router,
		db:      db,
		cfg:     cfg,
		adapter: adapter,
		logger:  logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	jwtSecret := []byte(s.cfg.Auth.JWTSecret)
	tokenTTL := time.Duration(s.cfg.Auth.TokenTTLHrs) * time.Hour

	authRepo := repository.NewAuthRepository(s.db, s.logger)
	authService := service.NewAuthService(authRepo, jwtSecret, tokenTTL, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)

	assessmentRepo := repository.NewAssessmentRepository(s.db, s.logger)
	assessmentService := service.NewAssessmentService(s.adapter, assessmentRepo, s.logger)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService, s.logger)

	// Health check, reports model readiness alongside liveness
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "healthy",
			"model_loaded": s.adapter.Ready(),
		})
	})

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Authenticated routes
	authRequired := s.router.Group("/api")
	authRequired.Use(middleware.AuthMiddleware(jwtSecret, s.logger))
	{
		authRequired.POST("/auth/logout", authHandler.Logout)
		authRequired.POST("/assessments", assessmentHandler.Predict)
		authRequired.GET("/assessments", assessmentHandler.History)
	}
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
