package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careerpath_backend/internal/career"
	"careerpath_backend/internal/config"
	"careerpath_backend/internal/controller"
	"careerpath_backend/internal/repository"
	"careerpath_backend/internal/service"
	"careerpath_backend/internal/session"
	"careerpath_backend/pkg/configwatcher"
	"careerpath_backend/pkg/database"
	"careerpath_backend/pkg/logger"
	"careerpath_backend/pkg/monitoring"
	"careerpath_backend/pkg/security"
	"careerpath_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	institution *repository.InstitutionRepository
	batch       *repository.BatchRepository
	profile     *repository.StudentProfileRepository
	assessment  *repository.AssessmentRepository
	result      *repository.ResultRepository
}

type services struct {
	auth       *service.AuthService
	student    *service.StudentService
	assessment *service.AssessmentService
	attempt    *service.AttemptService
}

type controllers struct {
	auth       *controller.AuthController
	student    *controller.StudentController
	result     *controller.ResultController
	assessment *controller.AssessmentController
	session    *controller.SessionController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) reloadConfig(cfg *config.Config) {
	a.Config.CORS = cfg.CORS
	a.Config.RateLimit = cfg.RateLimit
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Config reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		institution: repository.NewInstitutionRepository(db),
		batch:       repository.NewBatchRepository(db),
		profile:     repository.NewStudentProfileRepository(db),
		assessment:  repository.NewAssessmentRepository(db),
		result:      repository.NewResultRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	engine := career.NewEngine(cfg.Assessment.StrengthThreshold)

	return &services{
		auth:       service.NewAuthService(repos.user, cfg),
		student:    service.NewStudentService(repos.user, repos.institution, repos.batch, repos.profile),
		assessment: service.NewAssessmentService(repos.assessment, repos.batch, cfg),
		attempt: service.NewAttemptService(
			repos.user,
			repos.batch,
			repos.assessment,
			repos.profile,
			repos.result,
			engine,
		),
	}
}

func (a *App) initControllers(s *services, repos *repositories, sessions *session.Manager, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		student:    controller.NewStudentController(s.student, s.attempt, repos.institution),
		result:     controller.NewResultController(s.attempt, sessions),
		assessment: controller.NewAssessmentController(s.assessment, repos.institution, repos.batch),
		session:    controller.NewSessionController(sessions),
		health:     controller.NewHealthController(db),
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

// shouldMigrate keeps AutoMigrate on by default in development; release
// deployments only migrate when started with the -migrate flag.
func shouldMigrate(cfg *config.Config) bool {
	if cfg.ForceMigrate {
		return true
	}
	return cfg.Server.Mode != "release"
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if shouldMigrate(cfg) {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Log.Info("Database migration completed")
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

	sessions := session.NewManager(rdb, time.Duration(cfg.Assessment.SessionKeyTTLHours)*time.Hour)

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, repos, sessions, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("careerpath-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	go configwatcher.WatchConfig("configs/config.yaml", app.reloadConfig)

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
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
