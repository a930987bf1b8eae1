package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"bnu-planner/internal/calendar"
	"bnu-planner/internal/model"
	"bnu-planner/internal/service"
	"bnu-planner/pkg/response"
)

// CalendarHandler 校历浏览 HTTP 处理器：学期、事项、日/周/月视图
type CalendarHandler struct {
	daySvc   service.DayService
	eventSvc service.EventService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(daySvc service.DayService, eventSvc service.EventService) *CalendarHandler {
	return &CalendarHandler{daySvc: daySvc, eventSvc: eventSvc}
}

// GetSemester 学期定义
// GET /api/v1/semester
func (h *CalendarHandler) GetSemester(c *gin.Context) {
	response.OK(c, h.daySvc.Semester())
}

// ListEvents 校历事项列表，可按类别筛选
// GET /api/v1/events?category=holiday
func (h *CalendarHandler) ListEvents(c *gin.Context) {
	events, err := h.eventSvc.List(c.Request.Context(), model.EventCategory(c.Query("category")))
	if err != nil {
		if errors.Is(err, service.ErrUnknownCategory) {
			response.BadRequest(c, response.CodeBadRequest, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": events})
}

// GetDay 单日详情
// GET /api/v1/days/:date
func (h *CalendarHandler) GetDay(c *gin.Context) {
	date, err := calendar.ParseDateKey(c.Param("date"))
	if err != nil {
		response.BadRequest(c, response.CodeBadRequest, service.ErrInvalidDateKey.Error())
		return
	}

	response.OK(c, h.daySvc.ResolveDay(c.Request.Context(), date))
}

// GetMonth 月视图
// GET /api/v1/months/:year/:month
func (h *CalendarHandler) GetMonth(c *gin.Context) {
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
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, view)
}

// GetWeek 周视图
// GET /api/v1/weeks/:week
func (h *CalendarHandler) GetWeek(c *gin.Context) {
	week, ok := intParam(c, "week")
	if !ok {
		return
	}

	view, err := h.daySvc.ResolveWeek(c.Request.Context(), week)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, view)
}

func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMonthOutOfRange), errors.Is(err, service.ErrWeekOutOfRange):
		response.NotFound(c, response.CodeNotFound, err.Error())
	default:
		response.InternalError(c)
	}
}
