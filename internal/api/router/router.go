package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bnu-planner/config"
	"bnu-planner/internal/api/handler"
	"bnu-planner/internal/api/middleware"
)

// Deps 路由需要的外部依赖；limiter 为 nil 时导出不限流
type Deps struct {
	Metrics  middleware.RequestObserver
	Exporter http.Handler // /metrics
	Limiter  middleware.Limiter
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, deps Deps, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	// ── 健康检查与指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Exporter != nil {
		r.GET("/metrics", gin.WrapH(deps.Exporter))
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 学期与校历
		v1.GET("/semester", h.Calendar.GetSemester)
		v1.GET("/events", h.Calendar.ListEvents)
		v1.GET("/days/:date", h.Calendar.GetDay)
		v1.GET("/months/:year/:month", h.Calendar.GetMonth)
		v1.GET("/weeks/:week", h.Calendar.GetWeek)

		// 课程模块
		courses := v1.Group("/courses")
		{
			courses.GET("", h.Course.ListCourses)
			courses.POST("", h.Course.CreateCourse)
			courses.GET("/palette", h.Course.GetPalette)
			courses.POST("/import", h.Course.ImportICS)
			courses.DELETE("/:id", h.Course.DeleteCourse)
		}

		// 备注模块
		notes := v1.Group("/notes")
		{
			notes.GET("/:date", h.Note.GetNote)
			notes.PUT("/:date", h.Note.SetNote)
		}

		// 导出模块（截图导出开销大，按 IP 限流）
		export := v1.Group("/export")
		export.Use(middleware.RateLimit(deps.Limiter, cfg.Export.RateLimit, cfg.Export.RateLimitWindow, logger))
		{
			export.GET("/pdf", h.Export.ExportPDF)
			export.GET("/png", h.Export.ExportPNG)
			export.GET("/xlsx", h.Export.ExportXLSX)
			export.GET("/ics", h.Export.ExportICS)
		}

		// 服务端渲染视图（截图器访问）
		v1.GET("/view/month/:year/:month", h.View.MonthView)
	}

	return r
}
