package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"bnu-planner/internal/dto"
	"bnu-planner/internal/service"
	"bnu-planner/pkg/response"
)

// NoteHandler 每日备注 HTTP 处理器
type NoteHandler struct {
	noteSvc service.NoteService
}

// NewNoteHandler 创建 NoteHandler
func NewNoteHandler(noteSvc service.NoteService) *NoteHandler {
	return &NoteHandler{noteSvc: noteSvc}
}

// GetNote 读取备注
// GET /api/v1/notes/:date
func (h *NoteHandler) GetNote(c *gin.Context) {
	date := c.Param("date")
	content, err := h.noteSvc.Get(c.Request.Context(), date)
	if err != nil {
		h.handleNoteError(c, err)
		return
	}

	response.OK(c, dto.NoteResponse{Date: date, Content: content})
}

// SetNote 写入备注，空内容即删除
// PUT /api/v1/notes/:date
func (h *NoteHandler) SetNote(c *gin.Context) {
	var req dto.SetNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeBadRequest, "请求格式错误")
		return
	}

	date := c.Param("date")
	if err := h.noteSvc.Set(c.Request.Context(), date, req.Content); err != nil {
		h.handleNoteError(c, err)
		return
	}

	content, _ := h.noteSvc.Get(c.Request.Context(), date)
	response.OK(c, dto.NoteResponse{Date: date, Content: content})
}

func (h *NoteHandler) handleNoteError(c *gin.Context, err error) {
	if writeValidation(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrInvalidDateKey):
		response.BadRequest(c, response.CodeBadRequest, err.Error())
	default:
		response.InternalError(c)
	}
}
