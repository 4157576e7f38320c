package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"traincenter/backend/internal/dto"
	"traincenter/backend/internal/model"
)

func setupTestCourseService() (CourseService, *testRepos) {
	repos := newTestRepos()
	svc := NewCourseService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestCourseService_Create_Success(t *testing.T) {
	svc, _ := setupTestCourseService()

	req := &dto.CreateCourseRequest{
		Name:      "安全生产培训",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-15",
		Weekdays:  []int{1, 3},
		Shift:     model.ShiftAfternoon,
		Competencies: []dto.CompetencyRequest{
			{Name: "消防基础", RequiredHours: 10, Sequence: 1},
			{Name: "应急疏散", RequiredHours: 4, Sequence: 2},
		},
	}

	resp, err := svc.Create(context.Background(), req, "admin-1")
	if err != nil {
		t.Fatalf("创建课程应成功: %v", err)
	}
	if resp.Shift != model.ShiftAfternoon {
		t.Errorf("期望 shift=afternoon，实际=%s", resp.Shift)
	}
	if len(resp.Competencies) != 2 {
		t.Fatalf("期望 2 个能力项，实际=%d", len(resp.Competencies))
	}
	// ceil(10/4) = 3
	if resp.Competencies[0].SessionsRequired != 3 {
		t.Errorf("10 学时期望 3 课节，实际=%d", resp.Competencies[0].SessionsRequired)
	}
}

func TestCourseService_Create_DefaultShiftMorning(t *testing.T) {
	svc, _ := setupTestCourseService()

	resp, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
		Name:      "消防培训",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-15",
		Weekdays:  []int{1},
	}, "admin-1")
	if err != nil {
		t.Fatalf("创建课程应成功: %v", err)
	}
	if resp.Shift != model.ShiftMorning {
		t.Errorf("未指定班段应默认上午，实际=%s", resp.Shift)
	}
}

func TestCourseService_Create_InvalidDate(t *testing.T) {
	svc, _ := setupTestCourseService()

	_, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
		Name:      "消防培训",
		StartDate: "01/01/2024",
		EndDate:   "2024-01-15",
		Weekdays:  []int{1},
	}, "admin-1")
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("期望 ErrInvalidDateRange，实际=%v", err)
	}
}

func TestCourseService_Create_InvalidWeekdays(t *testing.T) {
	svc, _ := setupTestCourseService()

	for _, weekdays := range [][]int{{}, {0}, {8}} {
		_, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
			Name:      "消防培训",
			StartDate: "2024-01-01",
			EndDate:   "2024-01-15",
			Weekdays:  weekdays,
		}, "admin-1")
		if !errors.Is(err, ErrInvalidWeekdays) {
			t.Errorf("星期集合 %v 期望 ErrInvalidWeekdays，实际=%v", weekdays, err)
		}
	}
}

func TestCourseService_Update_PartialFields(t *testing.T) {
	svc, repos := setupTestCourseService()
	seedCourse(repos, 8)

	newName := "新安全生产培训"
	resp, err := svc.Update(context.Background(), "course-1", &dto.UpdateCourseRequest{
		Name: &newName,
	}, "admin-1")
	if err != nil {
		t.Fatalf("更新课程应成功: %v", err)
	}
	if resp.Name != newName {
		t.Errorf("期望名称更新为 %s，实际=%s", newName, resp.Name)
	}
	// 未提供的字段保持不变
	if resp.StartDate != "2024-01-01" || resp.Shift != model.ShiftMorning {
		t.Errorf("未更新字段不应变化: %+v", resp)
	}
}

func TestCourseService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestCourseService()

	name := "x"
	_, err := svc.Update(context.Background(), "nonexistent", &dto.UpdateCourseRequest{Name: &name}, "admin-1")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("期望 ErrCourseNotFound，实际=%v", err)
	}
}

func TestCourseService_AddCompetency(t *testing.T) {
	svc, repos := setupTestCourseService()
	seedCourse(repos)

	resp, err := svc.AddCompetency(context.Background(), "course-1", &dto.CompetencyRequest{
		Name: "急救处置", RequiredHours: 5, Sequence: 1,
	}, "admin-1")
	if err != nil {
		t.Fatalf("追加能力项应成功: %v", err)
	}
	// ceil(5/4) = 2
	if resp.SessionsRequired != 2 {
		t.Errorf("5 学时期望 2 课节，实际=%d", resp.SessionsRequired)
	}
}

func TestCourseService_RemoveCompetency_WrongCourse(t *testing.T) {
	svc, repos := setupTestCourseService()
	seedCourse(repos, 4)
	comps, _ := repos.competency.ListByCourse(context.Background(), "course-1")

	err := svc.RemoveCompetency(context.Background(), "course-other", comps[0].CompetencyID)
	if !errors.Is(err, ErrCompetencyNotFound) {
		t.Fatalf("跨课程删除应返回 ErrCompetencyNotFound，实际=%v", err)
	}
}

func TestCourseService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestCourseService()

	if err := svc.Delete(context.Background(), "nonexistent", "admin-1"); !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("期望 ErrCourseNotFound，实际=%v", err)
	}
}
