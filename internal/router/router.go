package router

import (
	"time"

	"github.com/eduadmin/eduadmin-backend/internal/config"
	"github.com/eduadmin/eduadmin-backend/internal/handler"
	"github.com/eduadmin/eduadmin-backend/internal/middleware"
	"github.com/eduadmin/eduadmin-backend/internal/response"
	"github.com/eduadmin/eduadmin-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Package   *handler.PackageHandler
	Student   *handler.StudentHandler
	Class     *handler.ClassHandler
	Request   *handler.RequestHandler
	Dashboard *handler.DashboardHandler
	Report    *handler.ReportHandler
	WS        *handler.WSHandler
	System    *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", handlers.System.Health)

	// Rate limiter for the login route (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)

		// Authenticated profile routes
		auth.GET("/user",
			middleware.RequireAuth(authService),
			middleware.CheckSingleDeviceSession(authService),
			handlers.Auth.Me,
		)
		auth.POST("/logout",
			middleware.RequireAuth(authService),
			handlers.Auth.Logout,
		)
	}

	// ─── 2. Authenticated API (both roles) ─────────────────────────────
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequireAuth(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		// Reads open to both roles; the service layer scopes teachers to
		// their own data where it matters.
		api.GET("/teachers", handlers.User.ListTeachers)
		api.GET("/packages", handlers.Package.List)
		api.GET("/packages/:id", handlers.Package.Get)
		api.GET("/students", handlers.Student.List)
		api.GET("/students/:id", handlers.Student.Get)
		api.GET("/classes", handlers.Class.List)
		api.GET("/classes/:id", handlers.Class.Get)
		api.GET("/dashboard/stats", handlers.Dashboard.Summary)

		// Schedule change requests: teachers propose and resolve for their
		// own classes, admins for any class.
		api.GET("/schedule-change-requests", handlers.Request.List)
		api.POST("/schedule-change-requests", handlers.Request.Create)
		api.PUT("/schedule-change-requests/:id", handlers.Request.Resolve)

		// ─── Admin-only mutations ──────────────────────────────────────
		admin := api.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/users", handlers.User.List)
			admin.POST("/users", handlers.User.Create)
			admin.PUT("/users/:id", handlers.User.Update)

			admin.POST("/packages", handlers.Package.Create)
			admin.PUT("/packages/:id", handlers.Package.Update)
			admin.DELETE("/packages/:id", handlers.Package.Delete)

			admin.POST("/students", handlers.Student.Create)
			admin.PUT("/students/:id", handlers.Student.Update)
			admin.DELETE("/students/:id", handlers.Student.Delete)

			admin.POST("/classes", handlers.Class.Create)
			admin.PUT("/classes/:id", handlers.Class.Update)
			// Status moves through the lifecycle graph, never the
			// generic update.
			admin.PATCH("/classes/:id/status", handlers.Class.UpdateStatus)
			admin.DELETE("/classes/:id", handlers.Class.Delete)

			admin.GET("/reports", handlers.Report.Get)
			admin.GET("/system/metrics", handlers.System.SystemMetricsSSE)
		}
	}

	// ─── 3. WebSocket Group (WS Auth via query token) ──────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService), middleware.RequireAdmin())
	{
		ws.GET("/schedule/stream", handlers.WS.ScheduleStream)
	}

	return router
}
