package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fasting/backend/internal/handler"
	"fasting/backend/internal/metrics"
	"fasting/backend/internal/middleware"
	"fasting/backend/internal/service"
)

type Dependencies struct {
	AuthService     *service.AuthService
	AuthHandler     *handler.AuthHandler
	PhaseHandler    *handler.PhaseHandler
	SettingsHandler *handler.SettingsHandler
	FastingHandler  *handler.FastingHandler
	RecordHandler   *handler.RecordHandler
	AccountHandler  *handler.AccountHandler
	AuthLimiter     *middleware.RateLimiter
	CORSOrigins     []string
	Logger          *slog.Logger
}

func New(deps Dependencies) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestLogger(deps.Logger), gin.Recovery(), middleware.CORS(deps.CORSOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", middleware.RateLimit(deps.AuthLimiter), deps.AuthHandler.Register)
	auth.POST("/login", middleware.RateLimit(deps.AuthLimiter), deps.AuthHandler.Login)
	auth.GET("/me", middleware.Auth(deps.AuthService), deps.AuthHandler.Me)

	phases := api.Group("/phases")
	phases.GET("", deps.PhaseHandler.List)
	phases.GET("/resolve", deps.PhaseHandler.Resolve)

	protected := api.Group("")
	protected.Use(middleware.Auth(deps.AuthService))

	protected.GET("/cycle", deps.SettingsHandler.GetCycle)
	protected.PUT("/cycle/phase", deps.SettingsHandler.SetPhase)
	protected.PUT("/cycle/custom", deps.SettingsHandler.SetCustomHours)
	protected.PUT("/settings/reminders", deps.SettingsHandler.SetReminders)

	fast := protected.Group("/fast")
	fast.GET("/state", deps.FastingHandler.GetState)
	fast.POST("/start", deps.FastingHandler.Start)
	fast.POST("/pause", deps.FastingHandler.Pause)
	fast.POST("/reset", deps.FastingHandler.Reset)
	fast.POST("/finish", deps.FastingHandler.Finish)
	fast.GET("/live", deps.FastingHandler.Live)

	records := protected.Group("/records")
	records.GET("", deps.RecordHandler.List)
	records.GET("/:date", deps.RecordHandler.Get)
	records.PUT("/:date", deps.RecordHandler.Put)
	records.PATCH("/:date", deps.RecordHandler.Patch)
	records.DELETE("/:date", deps.RecordHandler.Delete)

	progress := protected.Group("/progress")
	progress.GET("/summary", deps.RecordHandler.Summary)
	progress.GET("/week", deps.RecordHandler.Week)

	protected.GET("/export", deps.AccountHandler.Export)
	protected.DELETE("/data", deps.AccountHandler.ResetData)

	return engine
}
