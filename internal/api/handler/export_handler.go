package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"traincenter/backend/internal/service"
	"traincenter/backend/pkg/response"
)

const (
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

// ExportCourseSchedule 导出课程排课表 (Excel)
// GET /api/v1/export/courses/:id/schedule
func (h *ExportHandler) ExportCourseSchedule(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportCourseSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeAttachment(c, filename, contentTypeXLSX)
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// ExportInstructorCalendar 导出讲师授课日历 (ICS)
// GET /api/v1/export/instructors/:id/calendar
func (h *ExportHandler) ExportInstructorCalendar(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportInstructorCalendar(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeAttachment(c, filename, contentTypeICS)
	c.Data(http.StatusOK, contentTypeICS, buf.Bytes())
}

// writeAttachment 设置文件下载响应头（文件名含中文，RFC 5987 编码）
func writeAttachment(c *gin.Context, filename, contentType string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", contentType)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12001, "课程不存在")
	case errors.Is(err, service.ErrInstructorNotFound):
		response.NotFound(c, 13001, "讲师不存在")
	case errors.Is(err, service.ErrExportNoEntries):
		response.BadRequest(c, 15001, "暂无排课记录可导出")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
