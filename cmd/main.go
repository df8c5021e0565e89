package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ltpquang/Psytrack/config"
	"github.com/ltpquang/Psytrack/database"
	_ "github.com/ltpquang/Psytrack/docs" // Swagger docs - auto-generated
	adminctrl "github.com/ltpquang/Psytrack/internal/controller/admin"
	userctrl "github.com/ltpquang/Psytrack/internal/controller/user"
	"github.com/ltpquang/Psytrack/internal/logger"
	"github.com/ltpquang/Psytrack/internal/model"
	"github.com/ltpquang/Psytrack/internal/repository"
	"github.com/ltpquang/Psytrack/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Psytrack Assessment API
// @version 1.0
// @description API for scheduled psychometric assessment sessions: admins configure tests and sessions, participants take timed tests with server-tracked progress and deadline auto-completion.
// @contact.name API Support
// @contact.email support@example.com
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewTestRepository,
			repository.NewSessionRepository,
			repository.NewParticipantRepository,
			repository.NewProgressRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewTimekeeperService,
			service.NewProgressService,
			service.NewAdminTestService,
			service.NewAdminSessionService,
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewAdminController,
			userctrl.NewProgressController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	// Request logging through the global zerolog instance.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminCtrl *adminctrl.AdminController,
	progressCtrl *userctrl.ProgressController,
) {
	// Admin Routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/tests", adminCtrl.CreateTest)
		adminAPIGroup.GET("/tests", adminCtrl.ListTests)
		adminAPIGroup.POST("/sessions", adminCtrl.CreateSession)
		adminAPIGroup.GET("/sessions/:session_id", adminCtrl.GetSession)
		adminAPIGroup.POST("/sessions/:session_id/participants", adminCtrl.RegisterParticipant)
		adminAPIGroup.GET("/sessions/:session_id/participants", adminCtrl.ListParticipants)
	}

	// Participant Routes (prefixed with /api/v1)
	userAPIGroup := router.Group("/api/v1")
	{
		progressGroup := userAPIGroup.Group("/sessions/:session_id")
		progressGroup.POST("/tests/:test_id/participants/:participant_id/progress/start", progressCtrl.StartTest)
		progressGroup.PUT("/tests/:test_id/participants/:participant_id/progress", progressCtrl.UpdateProgress)
		progressGroup.POST("/tests/:test_id/participants/:participant_id/progress/complete", progressCtrl.CompleteTest)
		progressGroup.GET("/participants/:participant_id/progress", progressCtrl.GetProgress)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Psytrack Assessment API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Test{},
		&model.Session{},
		&model.SessionTest{},
		&model.Participant{},
		&model.TestProgress{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
