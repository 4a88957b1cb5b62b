package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Stonechat/config"
	adminctrl "github.com/lshigami/Stonechat/internal/controller/admin"
	userctrl "github.com/lshigami/Stonechat/internal/controller/user"
	"github.com/lshigami/Stonechat/internal/logger"
	"github.com/lshigami/Stonechat/internal/middleware"
	"github.com/lshigami/Stonechat/internal/repository"
	"github.com/lshigami/Stonechat/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// @title Stonechat Quiz API
// @version 1.0
// @description Browser-based quiz platform with spreadsheet-backed storage, per-participant edit rounds and styled exports.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			repository.NewRepositories,
			NewGinEngine,
		),

		// Repositories are built as one bundle so the storage backend can
		// be swapped in a single place; fx still injects them per interface.
		fx.Provide(
			func(r *repository.Repositories) repository.UserRepository { return r.Users },
			func(r *repository.Repositories) repository.AdminRepository { return r.Admin },
			func(r *repository.Repositories) repository.QuestionRepository { return r.Questions },
			func(r *repository.Repositories) repository.ResponseRepository { return r.Responses },
		),

		fx.Provide(
			middleware.NewJWTManager,
			service.NewScoringService,
			service.NewQuestionBankService,
			service.NewSubmissionService,
			service.NewStatsService,
			service.NewExportService,
			service.NewIdentityService,
		),

		fx.Provide(
			userctrl.NewUserController,
			adminctrl.NewAdminController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

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
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
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
	tokens *middleware.JWTManager,
	userCtrl *userctrl.UserController,
	adminCtrl *adminctrl.AdminController,
) {
	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		auth.POST("/register", userCtrl.Register)
		auth.POST("/login", userCtrl.Login)
		auth.POST("/admin/login", adminCtrl.Login)

		quiz := api.Group("")
		quiz.Use(tokens.RequireAuth())
		quiz.GET("/questions", userCtrl.GetQuiz)
		quiz.POST("/submissions", userCtrl.SubmitAnswers)
		quiz.GET("/me/results", userCtrl.GetMyResults)
		quiz.GET("/me/export", userCtrl.ExportMyResults)

		admin := api.Group("/admin")
		admin.Use(tokens.RequireAuth(), middleware.RequireRole(middleware.RoleAdmin))
		admin.GET("/questions", adminCtrl.ListQuestions)
		admin.POST("/questions", adminCtrl.CreateQuestion)
		admin.PUT("/questions/:id", adminCtrl.UpdateQuestion)
		admin.DELETE("/questions/:id", adminCtrl.DeleteQuestion)
		admin.GET("/stats", adminCtrl.GetStats)
		admin.GET("/stats/export", adminCtrl.ExportStats)
		admin.GET("/participants/:email/export", adminCtrl.ExportParticipant)
		admin.PUT("/password", adminCtrl.ChangePassword)
		admin.POST("/password/reset", adminCtrl.ResetPassword)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Stonechat quiz server starting on port %s", cfg.Server.Port)
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
