package handler

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"bnu-planner/internal/service"
	pkgerrors "bnu-planner/pkg/errors"
	"bnu-planner/pkg/response"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypePNG  = "image/png"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

type monthExportFunc func(ctx context.Context, year int, month time.Month) (*bytes.Buffer, string, error)

// ExportPDF 导出月视图 PDF
// GET /api/v1/export/pdf?year=2026&month=3
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	h.exportMonth(c, h.exportSvc.MonthPDF, contentTypePDF)
}

// ExportPNG 导出月视图 PNG
// GET /api/v1/export/png?year=2026&month=3
func (h *ExportHandler) ExportPNG(c *gin.Context) {
	h.exportMonth(c, h.exportSvc.MonthPNG, contentTypePNG)
}

// ExportXLSX 导出学期总览工作簿
// GET /api/v1/export/xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	buf, filename, err := h.exportSvc.SemesterXLSX(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.Attachment(c, filename, contentTypeXLSX, buf.Bytes())
}

// ExportICS 导出课程与校历事项为 iCalendar
// GET /api/v1/export/ics
func (h *ExportHandler) ExportICS(c *gin.Context) {
	buf, filename, err := h.exportSvc.CalendarICS(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.Attachment(c, filename, contentTypeICS, buf.Bytes())
}

func (h *ExportHandler) exportMonth(c *gin.Context, export monthExportFunc, contentType string) {
	year, ok := intQuery(c, "year")
	if !ok {
		return
	}
	month, ok := intQuery(c, "month")
	if !ok {
		return
	}

	buf, filename, err := export(c.Request.Context(), year, time.Month(month))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.Attachment(c, filename, contentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMonthOutOfRange):
		response.NotFound(c, response.CodeNotFound, err.Error())
	case pkgerrors.IsExport(err):
		_ = c.Error(err)
		response.ExportFailed(c)
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
