package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskloop_backend/internal/config"
	"taskloop_backend/internal/controller"
	"taskloop_backend/internal/repository"
	"taskloop_backend/internal/service"
	"taskloop_backend/pkg/database"
	"taskloop_backend/pkg/logger"
	"taskloop_backend/pkg/monitoring"
	"taskloop_backend/pkg/security"
	"taskloop_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	course       *repository.CourseRepository
	enrollment   *repository.EnrollmentRepository
	task         *repository.TaskRepository
	goal         *repository.GoalRepository
	habit        *repository.HabitRepository
	calendar     *repository.CalendarRepository
	follow       *repository.FollowRepository
	notification *repository.NotificationRepository
	activity     *repository.ActivityRepository
	comment      *repository.CommentRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	storage      *service.StorageService
	course       *service.CourseService
	task         *service.TaskService
	goal         *service.GoalService
	habit        *service.HabitService
	calendar     *service.CalendarService
	social       *service.SocialService
	notification *service.NotificationService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	course       *controller.CourseController
	task         *controller.TaskController
	goal         *controller.GoalController
	habit        *controller.HabitController
	calendar     *controller.CalendarController
	social       *controller.SocialController
	activity     *controller.ActivityController
	notification *controller.NotificationController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		course:       repository.NewCourseRepository(db),
		enrollment:   repository.NewEnrollmentRepository(db),
		task:         repository.NewTaskRepository(db),
		goal:         repository.NewGoalRepository(db),
		habit:        repository.NewHabitRepository(db),
		calendar:     repository.NewCalendarRepository(db),
		follow:       repository.NewFollowRepository(db, rdb),
		notification: repository.NewNotificationRepository(db),
		activity:     repository.NewActivityRepository(db),
		comment:      repository.NewCommentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.course = service.NewCourseService(repos.course, repos.enrollment, repos.activity, repos.comment)
	s.task = service.NewTaskService(repos.task)
	s.goal = service.NewGoalService(repos.goal, repos.activity)
	s.habit = service.NewHabitService(repos.habit)
	s.calendar = service.NewCalendarService(repos.calendar)
	s.social = service.NewSocialService(repos.follow, repos.user, repos.notification, repos.activity)
	s.notification = service.NewNotificationService(repos.notification)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user, s.storage),
		course:       controller.NewCourseController(s.course, s.storage),
		task:         controller.NewTaskController(s.task),
		goal:         controller.NewGoalController(s.goal),
		habit:        controller.NewHabitController(s.habit),
		calendar:     controller.NewCalendarController(s.calendar),
		social:       controller.NewSocialController(s.social),
		activity:     controller.NewActivityController(s.social),
		notification: controller.NewNotificationController(s.notification),
		health:       controller.NewHealthController(db),
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
		// redis 不可用时关注列表退化为直接查库
		logger.Log.Warn("Redis unavailable, follow cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("taskloop-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
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

	// 等待中断信号，5 秒内优雅退出
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
