package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartdalim_backend/internal/config"
	"smartdalim_backend/internal/controller"
	"smartdalim_backend/internal/repository"
	"smartdalim_backend/internal/service"
	"smartdalim_backend/pkg/database"
	"smartdalim_backend/pkg/logger"
	"smartdalim_backend/pkg/monitoring"
	"smartdalim_backend/pkg/security"
	"smartdalim_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user       *repository.UserRepository
	catalog    *repository.CatalogRepository
	session    *repository.SessionRepository
	assessment *repository.AssessmentRepository
	question   *repository.QuestionRepository
	submission *repository.SubmissionRepository
}

type services struct {
	auth       *service.AuthService
	catalog    *service.CatalogService
	booking    *service.BookingService
	assessment *service.AssessmentService
	submission *service.SubmissionService
	analytics  *service.AnalyticsService
}

type controllers struct {
	auth       *controller.AuthController
	catalog    *controller.CatalogController
	session    *controller.SessionController
	assessment *controller.AssessmentController
	submission *controller.SubmissionController
	analytics  *controller.AnalyticsController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		catalog:    repository.NewCatalogRepository(db),
		session:    repository.NewSessionRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		question:   repository.NewQuestionRepository(db),
		submission: repository.NewSubmissionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	s.catalog = service.NewCatalogService(repos.catalog)
	s.booking = service.NewBookingService(repos.session, repos.catalog, repos.user)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.question, repos.catalog)
	s.analytics = service.NewAnalyticsService(
		repos.assessment,
		repos.question,
		repos.submission,
		repos.user,
		rdb,
		time.Duration(cfg.Assessment.AnalyticsCacheTTL)*time.Second,
	)
	s.submission = service.NewSubmissionService(
		repos.submission,
		repos.assessment,
		repos.question,
		repos.user,
		s.analytics,
		cfg.Assessment.AutoFinalize,
	)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		catalog:    controller.NewCatalogController(s.catalog, s.auth),
		session:    controller.NewSessionController(s.booking, s.auth),
		assessment: controller.NewAssessmentController(s.assessment, s.auth),
		submission: controller.NewSubmissionController(s.submission, s.auth),
		analytics:  controller.NewAnalyticsController(s.analytics, s.assessment, s.auth),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("smart-dalim", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
