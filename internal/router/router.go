package router

import (
	"github.com/gin-gonic/gin"

	"passdesk/internal/config"
	"passdesk/internal/domain"
	"passdesk/internal/handler"
	"passdesk/internal/middleware"
	"passdesk/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	corsCfg config.CORSConfig,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	fileH *handler.FileHandler,
	scanH *handler.ScanHandler,
	entryH *handler.EntryHandler,
	userH *handler.UserHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsCfg))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", authH.Me)

	// Passport image routes
	files := protected.Group("/files")
	files.POST("/upload", fileH.Upload)
	files.GET("", fileH.List)
	files.GET("/:id", fileH.GetByID)
	files.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), fileH.Delete)

	// OCR scan routes
	scans := protected.Group("/scans")
	scans.POST("", scanH.ScanImage)
	scans.POST("/files/:id", scanH.ScanFile)
	scans.POST("/batch", scanH.ScanBatch)

	// Passport registry routes
	entries := protected.Group("/entries")
	entries.POST("", entryH.Register)
	entries.GET("", entryH.List)
	entries.GET("/export", entryH.Export)
	entries.POST("/validity-check", entryH.CheckValidity)
	entries.POST("/normalize", middleware.RequireRole(domain.RoleAdmin), entryH.Normalize)
	entries.POST("/bulk-delete", middleware.RequireRole(domain.RoleAdmin), entryH.BulkDelete)
	entries.GET("/:id", entryH.GetByID)
	entries.POST("/:id/workbook", entryH.AppendWorkbook)
	entries.PUT("/:id", entryH.Update)
	entries.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), entryH.Delete)

	// Operator account management
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), userH.List)
	users.GET("/:id", userH.GetByID)
	users.PUT("/:id", userH.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Delete)

	return r
}
