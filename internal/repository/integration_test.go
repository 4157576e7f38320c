//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	pkgerrors "traincenter/backend/pkg/errors"

	"traincenter/backend/internal/model"
	"traincenter/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=traincenter password=traincenter_password dbname=traincenter_test sslmode=disable TimeZone=Asia/Shanghai"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Competency{},
		&model.Instructor{},
		&model.InstructorQualification{},
		&model.ScheduleEntry{},
		&model.ConflictRecord{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

func cleanTables(t *testing.T) {
	t.Helper()
	for _, table := range []string{
		"conflict_records", "schedule_entries", "instructor_qualifications",
		"instructors", "competencies", "courses", "users",
	} {
		if err := testDB.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("清理表 %s 失败: %v", table, err)
		}
	}
}

func seedCourseWithCompetency(t *testing.T, repo *repository.Repository) (*model.Course, *model.Competency) {
	t.Helper()
	ctx := context.Background()

	course := &model.Course{
		Name:      "Go 后端研修班",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Weekdays:  model.IntArray{1, 3},
		Shift:     model.ShiftMorning,
	}
	if err := repo.Course.Create(ctx, course); err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}

	competency := &model.Competency{
		CourseID:      course.CourseID,
		Name:          "并发编程",
		RequiredHours: 8,
		Sequence:      1,
	}
	if err := repo.Competency.Create(ctx, competency); err != nil {
		t.Fatalf("创建能力项失败: %v", err)
	}
	return course, competency
}

// ═══════════════════════════════════════════════════════════
// ScheduleEntryRepository.HasOverlap
// ═══════════════════════════════════════════════════════════

func TestScheduleEntryRepo_HasOverlap(t *testing.T) {
	cleanTables(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	course, competency := seedCourseWithCompetency(t, repo)

	instructor := &model.Instructor{Name: "王老师", Email: "wang@traincenter.local", IsActive: true}
	if err := repo.Instructor.Create(ctx, instructor); err != nil {
		t.Fatalf("创建讲师失败: %v", err)
	}

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entry := &model.ScheduleEntry{
		CourseID:     course.CourseID,
		CompetencyID: competency.CompetencyID,
		InstructorID: instructor.InstructorID,
		EntryDate:    date,
		StartTime:    "09:00",
		EndTime:      "11:00",
		Status:       model.EntryStatusScheduled,
	}
	if err := repo.ScheduleEntry.Create(ctx, entry); err != nil {
		t.Fatalf("创建排课失败: %v", err)
	}

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"部分重叠", "10:00", "12:00", true},
		{"完全包含", "09:30", "10:30", true},
		{"被包含", "08:00", "13:00", true},
		{"相邻不重叠", "08:00", "09:00", false},
		{"完全错开", "13:00", "17:00", false},
	}
	for _, tc := range cases {
		got, err := repo.ScheduleEntry.HasOverlap(ctx, instructor.InstructorID, date, tc.start, tc.end)
		if err != nil {
			t.Fatalf("%s: HasOverlap 失败: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: 期望 %v，实际 %v", tc.name, tc.want, got)
		}
	}

	// 取消后不再参与占用检测
	if err := repo.ScheduleEntry.Cancel(ctx, entry.ScheduleEntryID, "admin-1"); err != nil {
		t.Fatalf("取消排课失败: %v", err)
	}
	got, err := repo.ScheduleEntry.HasOverlap(ctx, instructor.InstructorID, date, "10:00", "12:00")
	if err != nil {
		t.Fatalf("HasOverlap 失败: %v", err)
	}
	if got {
		t.Error("已取消排课不应参与占用检测")
	}
}

// ═══════════════════════════════════════════════════════════
// InstructorRepository.ListQualified
// ═══════════════════════════════════════════════════════════

func TestInstructorRepo_ListQualified_OrderedByProficiency(t *testing.T) {
	cleanTables(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	_, competency := seedCourseWithCompetency(t, repo)

	seed := []struct {
		name        string
		active      bool
		proficiency string
	}{
		{"基础讲师", true, model.ProficiencyBasic},
		{"专家讲师", true, model.ProficiencyExpert},
		{"离职专家", false, model.ProficiencyExpert},
		{"进阶讲师", true, model.ProficiencyAdvanced},
	}
	for _, s := range seed {
		instructor := &model.Instructor{Name: s.name, Email: s.name + "@traincenter.local", IsActive: s.active}
		if err := repo.Instructor.Create(ctx, instructor); err != nil {
			t.Fatalf("创建讲师失败: %v", err)
		}
		q := &model.InstructorQualification{
			InstructorID: instructor.InstructorID,
			CompetencyID: competency.CompetencyID,
			Proficiency:  s.proficiency,
		}
		if err := testDB.Create(q).Error; err != nil {
			t.Fatalf("创建资格失败: %v", err)
		}
	}

	quals, err := repo.Instructor.ListQualified(ctx, competency.CompetencyID)
	if err != nil {
		t.Fatalf("ListQualified 失败: %v", err)
	}
	if len(quals) != 3 {
		t.Fatalf("期望 3 名在职讲师，实际 %d", len(quals))
	}
	wantOrder := []string{"专家讲师", "进阶讲师", "基础讲师"}
	for i, want := range wantOrder {
		if quals[i].Instructor == nil || quals[i].Instructor.Name != want {
			t.Errorf("第 %d 位期望 %s", i+1, want)
		}
	}
}

// ═══════════════════════════════════════════════════════════
// 乐观锁
// ═══════════════════════════════════════════════════════════

func TestCourseRepo_Update_OptimisticLock(t *testing.T) {
	cleanTables(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	course, _ := seedCourseWithCompetency(t, repo)

	stale := *course
	course.Name = "Go 后端研修班（改）"
	if err := repo.Course.Update(ctx, course); err != nil {
		t.Fatalf("首次更新应成功: %v", err)
	}

	stale.Name = "过期写入"
	if err := repo.Course.Update(ctx, &stale); err != pkgerrors.ErrOptimisticLock {
		t.Errorf("期望 ErrOptimisticLock，实际: %v", err)
	}
}
