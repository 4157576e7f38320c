package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"traincenter/backend/internal/model"
	pkgerrors "traincenter/backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses    map[string]*model.Course
	competency *mockCompetencyRepo // GetByID 需要预载能力项
}

func newMockCourseRepo(competency *mockCompetencyRepo) *mockCourseRepo {
	return &mockCourseRepo{
		courses:    make(map[string]*model.Course),
		competency: competency,
	}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		course.CourseID = "course-" + course.Name
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	comps, _ := m.competency.ListByCourse(ctx, id)
	cp.Competencies = comps
	return &cp, nil
}

func (m *mockCourseRepo) List(_ context.Context, offset, limit int) ([]model.Course, int64, error) {
	var result []model.Course
	for _, c := range m.courses {
		result = append(result, *c)
	}
	return result, int64(len(result)), nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	old, ok := m.courses[course.CourseID]
	if !ok || old.Version != course.Version {
		return pkgerrors.ErrOptimisticLock
	}
	course.Version++
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.courses, id)
	return nil
}

// ── Mock CompetencyRepository ──

type mockCompetencyRepo struct {
	competencies map[string]*model.Competency
	seq          int // 模拟 created_at 先后
}

func newMockCompetencyRepo() *mockCompetencyRepo {
	return &mockCompetencyRepo{competencies: make(map[string]*model.Competency)}
}

func (m *mockCompetencyRepo) Create(_ context.Context, comp *model.Competency) error {
	if comp.CompetencyID == "" {
		comp.CompetencyID = "comp-" + comp.Name
	}
	m.seq++
	comp.CreatedAt = time.Unix(int64(m.seq), 0)
	m.competencies[comp.CompetencyID] = comp
	return nil
}

func (m *mockCompetencyRepo) BatchCreate(ctx context.Context, comps []model.Competency) error {
	for i := range comps {
		if err := m.Create(ctx, &comps[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockCompetencyRepo) GetByID(_ context.Context, id string) (*model.Competency, error) {
	if c, ok := m.competencies[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompetencyRepo) ListByCourse(_ context.Context, courseID string) ([]model.Competency, error) {
	var result []model.Competency
	for _, c := range m.competencies {
		if c.CourseID == courseID {
			result = append(result, *c)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Sequence != result[j].Sequence {
			return result[i].Sequence < result[j].Sequence
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockCompetencyRepo) Update(_ context.Context, comp *model.Competency) error {
	m.competencies[comp.CompetencyID] = comp
	return nil
}

func (m *mockCompetencyRepo) Delete(_ context.Context, id string) error {
	delete(m.competencies, id)
	return nil
}

// ── Mock InstructorRepository ──

type mockInstructorRepo struct {
	instructors    map[string]*model.Instructor
	qualifications []model.InstructorQualification
	qualSeq        int
}

func newMockInstructorRepo() *mockInstructorRepo {
	return &mockInstructorRepo{instructors: make(map[string]*model.Instructor)}
}

func (m *mockInstructorRepo) Create(_ context.Context, instructor *model.Instructor) error {
	if instructor.InstructorID == "" {
		instructor.InstructorID = "inst-" + instructor.Name
	}
	m.instructors[instructor.InstructorID] = instructor
	return nil
}

func (m *mockInstructorRepo) GetByID(_ context.Context, id string) (*model.Instructor, error) {
	if i, ok := m.instructors[id]; ok {
		return i, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInstructorRepo) List(_ context.Context, offset, limit int) ([]model.Instructor, int64, error) {
	var result []model.Instructor
	for _, i := range m.instructors {
		result = append(result, *i)
	}
	return result, int64(len(result)), nil
}

func (m *mockInstructorRepo) Update(_ context.Context, instructor *model.Instructor) error {
	old, ok := m.instructors[instructor.InstructorID]
	if !ok || old.Version != instructor.Version {
		return pkgerrors.ErrOptimisticLock
	}
	instructor.Version++
	m.instructors[instructor.InstructorID] = instructor
	return nil
}

func (m *mockInstructorRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.instructors, id)
	return nil
}

// addQualification 测试辅助：按添加顺序模拟 created_at
func (m *mockInstructorRepo) addQualification(instructorID, competencyID, proficiency string) {
	m.qualSeq++
	m.qualifications = append(m.qualifications, model.InstructorQualification{
		QualificationID: fmt.Sprintf("qual-%d", m.qualSeq),
		InstructorID:    instructorID,
		CompetencyID:    competencyID,
		Proficiency:     proficiency,
		BaseModel:       model.BaseModel{CreatedAt: time.Unix(int64(m.qualSeq), 0)},
	})
}

func (m *mockInstructorRepo) ListQualified(_ context.Context, competencyID string) ([]model.InstructorQualification, error) {
	var result []model.InstructorQualification
	for _, q := range m.qualifications {
		if q.CompetencyID != competencyID {
			continue
		}
		inst, ok := m.instructors[q.InstructorID]
		if !ok || !inst.IsActive {
			continue
		}
		q.Instructor = inst
		result = append(result, q)
	}
	sort.SliceStable(result, func(i, j int) bool {
		ri, rj := model.ProficiencyRank(result[i].Proficiency), model.ProficiencyRank(result[j].Proficiency)
		if ri != rj {
			return ri < rj
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockInstructorRepo) ReplaceQualifications(_ context.Context, instructorID string, qualifications []model.InstructorQualification) error {
	kept := m.qualifications[:0]
	for _, q := range m.qualifications {
		if q.InstructorID != instructorID {
			kept = append(kept, q)
		}
	}
	m.qualifications = kept
	for _, q := range qualifications {
		m.qualSeq++
		q.CreatedAt = time.Unix(int64(m.qualSeq), 0)
		m.qualifications = append(m.qualifications, q)
	}
	return nil
}

// ── Mock ScheduleEntryRepository ──

type mockScheduleEntryRepo struct {
	entries []*model.ScheduleEntry
	seq     int
	// failOnCreate 模拟协作方写入失败
	failOnCreate error
}

func newMockScheduleEntryRepo() *mockScheduleEntryRepo {
	return &mockScheduleEntryRepo{}
}

func (m *mockScheduleEntryRepo) Create(_ context.Context, entry *model.ScheduleEntry) error {
	if m.failOnCreate != nil {
		return m.failOnCreate
	}
	m.seq++
	if entry.ScheduleEntryID == "" {
		entry.ScheduleEntryID = fmt.Sprintf("entry-%d", m.seq)
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockScheduleEntryRepo) GetByID(_ context.Context, id string) (*model.ScheduleEntry, error) {
	for _, e := range m.entries {
		if e.ScheduleEntryID == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleEntryRepo) ListByCourse(_ context.Context, courseID string) ([]model.ScheduleEntry, error) {
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if e.CourseID == courseID {
			result = append(result, *e)
		}
	}
	sortEntries(result)
	return result, nil
}

func (m *mockScheduleEntryRepo) ListByInstructor(_ context.Context, instructorID string) ([]model.ScheduleEntry, error) {
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if e.InstructorID == instructorID {
			result = append(result, *e)
		}
	}
	sortEntries(result)
	return result, nil
}

func (m *mockScheduleEntryRepo) HasOverlap(_ context.Context, instructorID string, date time.Time, start, end string) (bool, error) {
	for _, e := range m.entries {
		if e.InstructorID != instructorID || e.Status == model.EntryStatusCancelled {
			continue
		}
		if !e.EntryDate.Equal(date) {
			continue
		}
		// 半开区间重叠：相邻不算
		if e.StartTime < end && e.EndTime > start {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockScheduleEntryRepo) Cancel(_ context.Context, id string, cancelledBy string) error {
	for _, e := range m.entries {
		if e.ScheduleEntryID == id {
			e.Status = model.EntryStatusCancelled
			e.UpdatedBy = &cancelledBy
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockScheduleEntryRepo) DeleteByCourse(_ context.Context, courseID string) error {
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.CourseID != courseID {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	return nil
}

func sortEntries(entries []model.ScheduleEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].EntryDate.Equal(entries[j].EntryDate) {
			return entries[i].EntryDate.Before(entries[j].EntryDate)
		}
		return entries[i].StartTime < entries[j].StartTime
	})
}

// ── Mock ConflictRecordRepository ──

type mockConflictRecordRepo struct {
	records []*model.ConflictRecord
	seq     int
}

func newMockConflictRecordRepo() *mockConflictRecordRepo {
	return &mockConflictRecordRepo{}
}

func (m *mockConflictRecordRepo) Create(_ context.Context, record *model.ConflictRecord) error {
	m.seq++
	if record.ConflictRecordID == "" {
		record.ConflictRecordID = fmt.Sprintf("conflict-%d", m.seq)
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockConflictRecordRepo) ListByCourse(_ context.Context, courseID string) ([]model.ConflictRecord, error) {
	var result []model.ConflictRecord
	for _, r := range m.records {
		if r.CourseID == courseID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockConflictRecordRepo) DeleteByCourse(_ context.Context, courseID string) error {
	kept := m.records[:0]
	for _, r := range m.records {
		if r.CourseID != courseID {
			kept = append(kept, r)
		}
	}
	m.records = kept
	return nil
}
