package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"alcyxob/run-trainer/internal/domain"
	"alcyxob/run-trainer/internal/repository"
	"alcyxob/run-trainer/internal/service"
)

// Services bundles what the HTTP layer calls into.
type Services struct {
	Auth      service.AuthService
	Plans     service.PlanService
	Workouts  service.WorkoutService
	Runs      service.RunService
	Import    service.ImportService
	Analytics service.AnalyticsService
	Strava    service.StravaService
}

// RouterOptions carry the cross-cutting dependencies of the router.
type RouterOptions struct {
	JWTSecret string
	Debug     bool
	Version   string
	Limiter   *ClientLimiter // nil disables rate limiting
	DB        repository.Pinger
	Log       *logrus.Logger
}

func SetupRoutes(router *gin.Engine, svc Services, opts RouterOptions) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	authHandler := NewAuthHandler(svc.Auth)
	planHandler := NewPlanHandler(svc.Plans)
	workoutHandler := NewWorkoutHandler(svc.Workouts)
	runHandler := NewRunHandler(svc.Runs)
	importHandler := NewImportHandler(svc.Import)
	analyticsHandler := NewAnalyticsHandler(svc.Analytics)
	stravaHandler := NewStravaHandler(svc.Strava)
	healthHandler := NewHealthHandler(opts.DB, opts.Version, opts.Log)

	router.Use(RequestLogger(opts.Log), gin.Recovery(), SecurityHeaders(opts.Debug))
	if opts.Limiter != nil {
		router.Use(RateLimitMiddleware(opts.Limiter))
	}

	router.GET("/health", healthHandler.Health)
	router.GET("/health/live", healthHandler.Live)
	router.GET("/health/ready", healthHandler.Ready)

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(opts.JWTSecret))
	{
		protected.GET("/me", authHandler.Me)

		// --- Plans ---
		protected.POST("/plans", RoleMiddleware(domain.RoleAthlete), planHandler.CreatePlan)
		protected.GET("/plans", planHandler.ListPlans)

		planGroup := protected.Group("/plans/:planId")
		{
			planGroup.GET("", planHandler.GetPlan)
			planGroup.PATCH("", planHandler.UpdatePlan)
			planGroup.DELETE("", planHandler.DeletePlan)

			planGroup.POST("/workouts", workoutHandler.CreateWorkout)
			planGroup.GET("/workouts", workoutHandler.ListWorkouts)

			planGroup.POST("/runs", runHandler.CreateRun)
			planGroup.GET("/runs", runHandler.ListRuns)

			planGroup.POST("/import", importHandler.ImportText)
			planGroup.POST("/import/upload-url", importHandler.CreateUploadURL)
			planGroup.POST("/import/document", importHandler.ImportDocument)

			planGroup.GET("/progress", analyticsHandler.GetProgress)
			planGroup.GET("/weekly-summary", analyticsHandler.GetWeeklySummary)

			planGroup.POST("/strava/sync", RoleMiddleware(domain.RoleAthlete), stravaHandler.Sync)
		}

		// --- Workouts & runs by id ---
		protected.GET("/workouts/:workoutId", workoutHandler.GetWorkout)
		protected.PATCH("/workouts/:workoutId", workoutHandler.UpdateWorkout)
		protected.DELETE("/workouts/:workoutId", workoutHandler.DeleteWorkout)

		protected.GET("/runs/:runId", runHandler.GetRun)
		protected.PATCH("/runs/:runId", runHandler.UpdateRun)
		protected.DELETE("/runs/:runId", runHandler.DeleteRun)

		// --- Strava account ---
		stravaGroup := protected.Group("/strava")
		{
			stravaGroup.GET("/auth-url", stravaHandler.GetAuthURL)
			stravaGroup.POST("/authorize", stravaHandler.Authorize)
		}
	}
	return nil
}
