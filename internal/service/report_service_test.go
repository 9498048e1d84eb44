package service

import (
	"testing"

	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/google/uuid"
)

func TestBuildReportAggregation(t *testing.T) {
	teacherA := model.User{ID: uuid.New(), Name: "Budi", Role: model.RoleTeacher}
	teacherB := model.User{ID: uuid.New(), Name: "Siti", Role: model.RoleTeacher}

	studentX := model.StudentWithRelations{Student: model.Student{ID: uuid.New(), Name: "Ana", RemainingHours: 4.5}}
	studentY := model.StudentWithRelations{Student: model.Student{ID: uuid.New(), Name: "Rio", RemainingHours: 10}}

	classes := []model.ClassWithRelations{
		{
			Class:   model.Class{StudentID: studentX.ID, TeacherID: teacherA.ID, Duration: 1.5, Status: model.StatusCompleted},
			Student: &studentX.Student, Teacher: &teacherA,
		},
		{
			Class:   model.Class{StudentID: studentX.ID, TeacherID: teacherA.ID, Duration: 2.0, Status: model.StatusCompleted},
			Student: &studentX.Student, Teacher: &teacherA,
		},
		{
			Class:   model.Class{StudentID: studentX.ID, TeacherID: teacherB.ID, Duration: 1.0, Status: model.StatusCancelled},
			Student: &studentX.Student, Teacher: &teacherB,
		},
		{
			Class:   model.Class{StudentID: studentY.ID, TeacherID: teacherB.ID, Duration: 1.0, Status: model.StatusScheduled},
			Student: &studentY.Student, Teacher: &teacherB,
		},
	}

	report := BuildReport(classes, []model.StudentWithRelations{studentX, studentY})

	if len(report.Teachers) != 2 {
		t.Fatalf("expected 2 teacher rows, got %d", len(report.Teachers))
	}
	// Sorted by name: Budi before Siti.
	budi := report.Teachers[0]
	if budi.TeacherName != "Budi" || budi.TotalClasses != 2 || budi.CompletedClasses != 2 || budi.CompletedHours != 3.5 {
		t.Errorf("unexpected row for Budi: %+v", budi)
	}
	siti := report.Teachers[1]
	if siti.TeacherName != "Siti" || siti.TotalClasses != 2 || siti.CompletedClasses != 0 || siti.CompletedHours != 0 {
		t.Errorf("unexpected row for Siti: %+v", siti)
	}

	if len(report.Students) != 2 {
		t.Fatalf("expected 2 student rows, got %d", len(report.Students))
	}
	ana := report.Students[0]
	if ana.StudentName != "Ana" || ana.TotalClasses != 3 || ana.CompletedClasses != 2 || ana.CompletedHours != 3.5 {
		t.Errorf("unexpected row for Ana: %+v", ana)
	}
	if ana.RemainingHours != 4.5 {
		t.Errorf("expected Ana remaining 4.5, got %.2f", ana.RemainingHours)
	}
	rio := report.Students[1]
	if rio.StudentName != "Rio" || rio.TotalClasses != 1 || rio.CompletedClasses != 0 {
		t.Errorf("unexpected row for Rio: %+v", rio)
	}
}

func TestBuildReportKeepsIdleStudentsVisible(t *testing.T) {
	idle := model.StudentWithRelations{Student: model.Student{ID: uuid.New(), Name: "Dina", RemainingHours: 8}}

	report := BuildReport(nil, []model.StudentWithRelations{idle})

	if len(report.Students) != 1 {
		t.Fatalf("expected 1 student row, got %d", len(report.Students))
	}
	row := report.Students[0]
	if row.TotalClasses != 0 || row.RemainingHours != 8 {
		t.Errorf("unexpected idle row: %+v", row)
	}
	if len(report.Teachers) != 0 {
		t.Errorf("expected no teacher rows, got %d", len(report.Teachers))
	}
}
