package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"bnu-planner/internal/dto"
	"bnu-planner/internal/service"
	"bnu-planner/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
	importSvc service.ImportService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService, importSvc service.ImportService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc, importSvc: importSvc}
}

// ListCourses 课程列表（添加顺序）
// GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses := h.courseSvc.List(c.Request.Context())
	response.OK(c, gin.H{"list": dto.NewCourseResponses(courses)})
}

// CreateCourse 新增课程
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeBadRequest, "请求格式错误")
		return
	}

	course, err := h.courseSvc.Add(c.Request.Context(), req.ToDraft())
	if err != nil {
		if writeValidation(c, err) {
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, dto.NewCourseResponse(*course))
}

// DeleteCourse 删除课程；ID 不存在时同样返回成功
// DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.courseSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// GetPalette 课程调色板
// GET /api/v1/courses/palette
func (h *CourseHandler) GetPalette(c *gin.Context) {
	response.OK(c, gin.H{"list": h.courseSvc.Palette()})
}

// ImportICS 从 ICS 文件批量导入课程
// POST /api/v1/courses/import
//
//   - 文件上传: multipart/form-data, field="file"
func (h *CourseHandler) ImportICS(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, response.CodeBadRequest, "请上传 ICS 文件")
		return
	}
	defer file.Close()

	result, err := h.importSvc.ImportICS(c.Request.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrICSParseFailed), errors.Is(err, service.ErrICSEmpty):
			response.BadRequest(c, response.CodeBadRequest, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}
