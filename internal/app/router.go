package app

import (
	"taskloop_backend/docs"
	"taskloop_backend/internal/config"
	"taskloop_backend/internal/middleware"
	"taskloop_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	a.registerPublicRoutes(router, c, cfg)

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerUserRoutes(authGroup, c)
		a.registerCourseRoutes(authGroup, c)
		a.registerPlannerRoutes(authGroup, c)
		a.registerSocialRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 课程浏览对游客开放，登录用户附带选课状态
		public.GET("/courses", middleware.TryAuthMiddleware(cfg), c.course.ListCourses)
		public.GET("/courses/:id", middleware.TryAuthMiddleware(cfg), c.course.GetCourse)
		public.GET("/courses/:id/comments", c.course.GetComments)
	}
}

func (a *App) registerUserRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/profile", c.user.GetProfile)
	group.POST("/user/avatar", c.user.UploadAvatar)
	group.PUT("/user/settings", c.user.UpdateSettings)
}

func (a *App) registerCourseRoutes(group *gin.RouterGroup, c *controllers) {
	group.POST("/courses", c.course.CreateCourse)
	group.POST("/courses/:id/enroll", c.course.Enroll)
	group.POST("/courses/:id/lessons/:lessonId/complete", c.course.CompleteLesson)
	group.POST("/courses/:id/lessons/:lessonId/video", c.course.UploadLessonVideo)
	group.POST("/courses/:id/comments", c.course.AddComment)
}

func (a *App) registerPlannerRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/tasks", c.task.ListTasks)
	group.POST("/tasks", c.task.CreateTask)
	group.PUT("/tasks/:id", c.task.UpdateTask)
	group.DELETE("/tasks/:id", c.task.DeleteTask)

	group.GET("/goals", c.goal.ListGoals)
	group.POST("/goals", c.goal.CreateGoal)
	group.GET("/goals/:id", c.goal.GetGoal)
	group.PUT("/goals/:id", c.goal.UpdateGoal)
	group.DELETE("/goals/:id", c.goal.DeleteGoal)
	group.PUT("/milestones/:id", c.goal.ToggleMilestone)
	group.DELETE("/milestones/:id", c.goal.DeleteMilestone)

	group.GET("/habits", c.habit.ListHabits)
	group.POST("/habits", c.habit.CreateHabit)
	group.PUT("/habits/:id", c.habit.UpdateHabit)
	group.DELETE("/habits/:id", c.habit.DeleteHabit)
	group.POST("/habits/:id/log", c.habit.ToggleLog)
	group.GET("/habits/:id/streak", c.habit.GetStreak)

	group.GET("/calendar", c.calendar.ListEvents)
	group.POST("/calendar", c.calendar.CreateEvent)
	group.PUT("/calendar/:id", c.calendar.UpdateEvent)
	group.DELETE("/calendar/:id", c.calendar.DeleteEvent)
}

func (a *App) registerSocialRoutes(group *gin.RouterGroup, c *controllers) {
	group.POST("/users/:id/follow", c.social.Follow)
	group.DELETE("/users/:id/follow", c.social.Unfollow)

	group.GET("/activity", c.activity.Feed)

	group.GET("/notifications", c.notification.List)
	group.PUT("/notifications/read", c.notification.MarkAllRead)
}
