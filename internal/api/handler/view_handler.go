package handler

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"bnu-planner/internal/calendar"
	"bnu-planner/internal/dto"
	"bnu-planner/internal/service"
	"bnu-planner/pkg/response"
)

//go:embed templates/month.html
var templateFS embed.FS

var monthTemplate = template.Must(
	template.New("month.html").
		Funcs(template.FuncMap{"deref": func(p *int) int { return *p }}).
		ParseFS(templateFS, "templates/month.html"),
)

// monthPage 月视图页面数据
type monthPage struct {
	School        string
	Semester      string
	WeekdayLabels []string
	View          *dto.MonthView
}

// ViewHandler 服务端渲染的月视图，供截图导出使用
type ViewHandler struct {
	daySvc service.DayService
}

// NewViewHandler 创建 ViewHandler
func NewViewHandler(daySvc service.DayService) *ViewHandler {
	return &ViewHandler{daySvc: daySvc}
}

// MonthView 渲染月视图页面；根元素 #calendar-view 带 data-ready="true"
// GET /api/v1/view/month/:year/:month
func (h *ViewHandler) MonthView(c *gin.Context) {
	year, ok := intParam(c, "year")
	if !ok {
		return
	}
	month, ok := intParam(c, "month")
	if !ok {
		return
	}

	view, err := h.daySvc.ResolveMonth(c.Request.Context(), year, time.Month(month))
	if err != nil {
		if errors.Is(err, service.ErrMonthOutOfRange) {
			response.NotFound(c, response.CodeNotFound, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	sem := h.daySvc.Semester()
	labels := make([]string, 0, 7)
	for d := calendar.Monday; d <= calendar.Sunday; d++ {
		labels = append(labels, d.Label())
	}

	c.Render(http.StatusOK, render.HTML{
		Template: monthTemplate,
		Name:     "month.html",
		Data: monthPage{
			School:        sem.School,
			Semester:      sem.Name,
			WeekdayLabels: labels,
			View:          view,
		},
	})
}
