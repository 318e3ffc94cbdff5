package http

import (
	"time"

	"todo_api/internal/http/handlers"
	"todo_api/internal/http/middleware"
	"todo_api/internal/service"
	"todo_api/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps bundles what the HTTP layer needs; everything is built once in main.
type Deps struct {
	Tasks          *service.TaskService
	Hub            *ws.Hub
	Limiter        *middleware.RateLimiter
	RateLimit      int
	RateWindow     time.Duration
	AllowedOrigins []string
	Version        string
}

// NewRouter builds the engine with the standard middleware chain and all routes.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())
	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	h := handlers.NewHandler(d.Tasks)

	pingers := map[string]handlers.Pinger{}
	if d.Limiter != nil && d.Limiter.Redis() {
		pingers["redis"] = d.Limiter
	}
	healthHandler := handlers.NewHealthHandler(d.Tasks, d.Version, pingers)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if d.Hub != nil {
		r.GET("/ws/events", ws.HandleEvents(d.Hub, d.AllowedOrigins))
	}

	var limit []gin.HandlerFunc
	if d.Limiter != nil && d.RateLimit > 0 {
		limit = append(limit, d.Limiter.Middleware(d.RateLimit, d.RateWindow))
	}

	// API v1 routes
	v1 := r.Group("/api/v1", limit...)
	registerTaskRoutes(v1.Group("/todotask"), h)

	// Unversioned paths kept for existing clients
	api := r.Group("/api", limit...)
	registerTaskRoutes(api.Group("/todotask"), h)
}

func registerTaskRoutes(tasks *gin.RouterGroup, h *handlers.Handler) {
	tasks.GET("", h.ListTasks)
	tasks.DELETE("", h.DeleteAllTasks)
	tasks.GET("/search/:id", h.GetTask)
	tasks.POST("/create", h.CreateTask)

	tasks.PATCH("/:id/update", h.UpdateTask)
	tasks.PATCH("/:id/set_completion", h.SetCompletion)
	tasks.PATCH("/:id/setdone", h.SetDone)
	tasks.DELETE("/:id/delete", h.DeleteTask)

	// Date-relative queries against the reference task :id
	tasks.GET("/:id/task-same-day", h.SameDayTasks)
	tasks.GET("/:id/task-next-day", h.NextDayTasks)
	tasks.GET("/:id/task-this-week", h.ThisWeekTasks)
}
