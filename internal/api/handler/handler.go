package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"bnu-planner/internal/service"
	pkgerrors "bnu-planner/pkg/errors"
	"bnu-planner/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Calendar *CalendarHandler
	Course   *CourseHandler
	Note     *NoteHandler
	Export   *ExportHandler
	View     *ViewHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Calendar: NewCalendarHandler(svc.Day, svc.Event),
		Course:   NewCourseHandler(svc.Course, svc.Import),
		Note:     NewNoteHandler(svc.Note),
		Export:   NewExportHandler(svc.Export),
		View:     NewViewHandler(svc.Day),
	}
}

// ── 公共辅助 ──

// writeValidation 校验错误原样提示用户；返回 false 表示不是校验错误
func writeValidation(c *gin.Context, err error) bool {
	var verr *pkgerrors.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	response.ValidationFailed(c, verr.Field, verr.Message)
	return true
}

// intParam 解析路径中的整数参数
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		response.BadRequest(c, response.CodeBadRequest, name+" 必须是整数")
		return 0, false
	}
	return v, true
}

// intQuery 解析查询串中的必填整数参数
func intQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		response.BadRequest(c, response.CodeBadRequest, name+" 不能为空")
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(c, response.CodeBadRequest, name+" 必须是整数")
		return 0, false
	}
	return v, true
}
