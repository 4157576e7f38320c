package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"traincenter/backend/internal/dto"
	"traincenter/backend/internal/model"
)

func setupTestInstructorService() (InstructorService, *testRepos) {
	repos := newTestRepos()
	svc := NewInstructorService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestInstructorService_Create_Success(t *testing.T) {
	svc, _ := setupTestInstructorService()

	resp, err := svc.Create(context.Background(), &dto.CreateInstructorRequest{
		Name: "王专家", Email: "wang@example.com",
	}, "admin-1")
	if err != nil {
		t.Fatalf("创建讲师应成功: %v", err)
	}
	if !resp.IsActive {
		t.Error("新建讲师应默认在职")
	}
}

func TestInstructorService_Update_Deactivate(t *testing.T) {
	svc, repos := setupTestInstructorService()
	seedCourse(repos, 4)
	comps, _ := repos.competency.ListByCourse(context.Background(), "course-1")
	inst := seedInstructor(repos, "王专家", comps[0].CompetencyID, model.ProficiencyExpert)

	inactive := false
	resp, err := svc.Update(context.Background(), inst.InstructorID, &dto.UpdateInstructorRequest{
		IsActive: &inactive,
	}, "admin-1")
	if err != nil {
		t.Fatalf("更新讲师应成功: %v", err)
	}
	if resp.IsActive {
		t.Error("期望讲师已停用")
	}

	// 停用后不再出现在候选名单中
	quals, _ := repos.instructor.ListQualified(context.Background(), comps[0].CompetencyID)
	if len(quals) != 0 {
		t.Errorf("停用讲师不应出现在候选名单，实际=%d", len(quals))
	}
}

func TestInstructorService_SetQualifications_Replace(t *testing.T) {
	svc, repos := setupTestInstructorService()
	seedCourse(repos, 4, 4)
	comps, _ := repos.competency.ListByCourse(context.Background(), "course-1")
	inst := seedInstructor(repos, "王专家", comps[0].CompetencyID, model.ProficiencyExpert)

	// 替换为仅第二个能力项
	_, err := svc.SetQualifications(context.Background(), inst.InstructorID, &dto.SetQualificationsRequest{
		Qualifications: []dto.QualificationRequest{
			{CompetencyID: comps[1].CompetencyID, Proficiency: model.ProficiencyAdvanced},
		},
	}, "admin-1")
	if err != nil {
		t.Fatalf("替换任教资格应成功: %v", err)
	}

	if quals, _ := repos.instructor.ListQualified(context.Background(), comps[0].CompetencyID); len(quals) != 0 {
		t.Error("旧资格应被整体替换移除")
	}
	quals, _ := repos.instructor.ListQualified(context.Background(), comps[1].CompetencyID)
	if len(quals) != 1 || quals[0].Proficiency != model.ProficiencyAdvanced {
		t.Errorf("新资格应生效，实际=%+v", quals)
	}
}

func TestInstructorService_SetQualifications_CompetencyNotFound(t *testing.T) {
	svc, repos := setupTestInstructorService()
	seedCourse(repos, 4)
	comps, _ := repos.competency.ListByCourse(context.Background(), "course-1")
	inst := seedInstructor(repos, "王专家", comps[0].CompetencyID, model.ProficiencyExpert)

	_, err := svc.SetQualifications(context.Background(), inst.InstructorID, &dto.SetQualificationsRequest{
		Qualifications: []dto.QualificationRequest{
			{CompetencyID: "nonexistent", Proficiency: model.ProficiencyBasic},
		},
	}, "admin-1")
	if !errors.Is(err, ErrCompetencyNotFound) {
		t.Fatalf("期望 ErrCompetencyNotFound，实际=%v", err)
	}
}

func TestInstructorService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestInstructorService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrInstructorNotFound) {
		t.Fatalf("期望 ErrInstructorNotFound，实际=%v", err)
	}
}
