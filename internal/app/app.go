package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"toeic_prep_backend/internal/config"
	"toeic_prep_backend/internal/controller"
	"toeic_prep_backend/internal/repository"
	"toeic_prep_backend/internal/service"
	"toeic_prep_backend/pkg/database"
	"toeic_prep_backend/pkg/logger"
	"toeic_prep_backend/pkg/monitoring"
	"toeic_prep_backend/pkg/security"
	"toeic_prep_backend/pkg/tracing"

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
	question     *repository.QuestionRepository
	attempt      *repository.AttemptRepository
	draft        *repository.DraftRepository
	sectionLevel *repository.SectionLevelRepository
	skillTag     *repository.SkillTagRepository
}

type services struct {
	attempt  *service.AttemptService
	draft    *service.DraftService
	level    *service.LevelService
	skillTag *service.SkillTagService
	question *service.QuestionService
}

type controllers struct {
	attempt  *controller.AttemptController
	draft    *controller.DraftController
	level    *controller.LevelController
	question *controller.QuestionController
	skillTag *controller.SkillTagController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	draftTTL := time.Duration(cfg.Draft.TTLDays) * 24 * time.Hour
	return &repositories{
		question:     repository.NewQuestionRepository(db),
		attempt:      repository.NewAttemptRepository(db),
		draft:        repository.NewDraftRepository(rdb, draftTTL),
		sectionLevel: repository.NewSectionLevelRepository(db),
		skillTag:     repository.NewSkillTagRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.skillTag = service.NewSkillTagService(repos.skillTag)
	s.level = service.NewLevelService(repos.sectionLevel, cfg.Level)
	s.draft = service.NewDraftService(repos.draft)
	s.question = service.NewQuestionService(repos.question)

	recommender := service.NewLevelRecommender(cfg.Level)
	s.attempt = service.NewAttemptService(
		repos.question,
		repos.attempt,
		repos.draft,
		repos.sectionLevel,
		recommender,
		s.skillTag,
	)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		attempt:  controller.NewAttemptController(s.attempt),
		draft:    controller.NewDraftController(s.draft),
		level:    controller.NewLevelController(s.level),
		question: controller.NewQuestionController(s.question),
		skillTag: controller.NewSkillTagController(s.skillTag),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
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
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("toeic-prep", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

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
