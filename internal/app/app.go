package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"school_records_backend/internal/config"
	"school_records_backend/internal/controller"
	"school_records_backend/internal/repository"
	"school_records_backend/internal/service"
	"school_records_backend/internal/util"
	"school_records_backend/pkg/database"
	"school_records_backend/pkg/logger"
	"school_records_backend/pkg/monitoring"
	"school_records_backend/pkg/security"
	"school_records_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config         *config.Config
	Settings       *config.Store
	Router         *gin.Engine
	DB             *gorm.DB
	Redis          *redis.Client
	tracerProvider *sdktrace.TracerProvider
}

type repositories struct {
	user        *repository.UserRepository
	profile     *repository.ProfileRepository
	assessment  *repository.AssessmentRepository
	examination *repository.ExaminationRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	storage     *service.StorageService
	generation  *service.GenerationService
	catalog     *service.CatalogService
	publication *service.PublicationService
	authoring   *service.AuthoringService
}

type controllers struct {
	auth      *controller.AuthController
	authoring *controller.AuthoringController
	review    *controller.ReviewController
	catalog   *controller.CatalogController
	user      *controller.UserController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		profile:     repository.NewProfileRepository(db),
		assessment:  repository.NewAssessmentRepository(db),
		examination: repository.NewExaminationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, a.Settings)
	s.user = service.NewUserService(repos.user, repos.profile)
	s.storage = service.NewStorageService(cfg)
	s.generation = service.NewGenerationService(cfg.AI)
	s.catalog = service.NewCatalogService(repos.assessment, repos.examination, rdb)
	s.publication = service.NewPublicationService(repos.assessment, repos.examination, s.catalog)
	s.authoring = service.NewAuthoringService(s.publication)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		authoring: controller.NewAuthoringController(s.authoring, s.generation, s.storage),
		review:    controller.NewReviewController(s.publication),
		catalog:   controller.NewCatalogController(s.catalog),
		user:      controller.NewUserController(s.user),
		health:    controller.NewHealthController(db),
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

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config:   cfg,
		Settings: config.NewStore(cfg),
		DB:       db,
		Redis:    rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("school-records", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, repos)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

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

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
