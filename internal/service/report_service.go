package service

import (
	"context"
	"sort"
	"time"

	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/eduadmin/eduadmin-backend/internal/repository"
	"github.com/google/uuid"
)

// ReportService builds activity reports over the class history.
type ReportService struct {
	classRepo   *repository.ClassRepository
	studentRepo *repository.StudentRepository
}

// NewReportService creates a new ReportService.
func NewReportService(classRepo *repository.ClassRepository, studentRepo *repository.StudentRepository) *ReportService {
	return &ReportService{classRepo: classRepo, studentRepo: studentRepo}
}

// Build fetches classes in the optional date range and groups them per
// teacher and per student.
func (s *ReportService) Build(ctx context.Context, from, to *time.Time) (*model.Report, error) {
	classes, err := s.classRepo.List(ctx, from, to)
	if err != nil {
		return nil, err
	}

	students, err := s.studentRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	report := BuildReport(classes, students)
	report.From = from
	report.To = to
	return report, nil
}

// BuildReport aggregates class rows per teacher and per student. Completed
// hours sum the durations of completed classes only; scheduled and cancelled
// classes count toward totals but not completion. Students with no classes
// in range still get a row so their balance stays visible.
func BuildReport(classes []model.ClassWithRelations, students []model.StudentWithRelations) *model.Report {
	teacherRows := map[uuid.UUID]*model.TeacherReportRow{}
	studentRows := map[uuid.UUID]*model.StudentReportRow{}

	for i := range students {
		st := &students[i]
		studentRows[st.ID] = &model.StudentReportRow{
			StudentID:      st.ID,
			StudentName:    st.Name,
			RemainingHours: st.RemainingHours,
		}
	}

	for i := range classes {
		c := &classes[i]

		tr, ok := teacherRows[c.TeacherID]
		if !ok {
			tr = &model.TeacherReportRow{TeacherID: c.TeacherID}
			if c.Teacher != nil {
				tr.TeacherName = c.Teacher.Name
			}
			teacherRows[c.TeacherID] = tr
		}
		tr.TotalClasses++
		if c.Status == model.StatusCompleted {
			tr.CompletedClasses++
			tr.CompletedHours += c.Duration
		}

		sr, ok := studentRows[c.StudentID]
		if !ok {
			// Classes of deactivated students still count in the report.
			sr = &model.StudentReportRow{StudentID: c.StudentID}
			if c.Student != nil {
				sr.StudentName = c.Student.Name
				sr.RemainingHours = c.Student.RemainingHours
			}
			studentRows[c.StudentID] = sr
		}
		sr.TotalClasses++
		if c.Status == model.StatusCompleted {
			sr.CompletedClasses++
			sr.CompletedHours += c.Duration
		}
	}

	report := &model.Report{
		Teachers: make([]model.TeacherReportRow, 0, len(teacherRows)),
		Students: make([]model.StudentReportRow, 0, len(studentRows)),
	}
	for _, tr := range teacherRows {
		report.Teachers = append(report.Teachers, *tr)
	}
	for _, sr := range studentRows {
		report.Students = append(report.Students, *sr)
	}
	sort.Slice(report.Teachers, func(i, j int) bool {
		return report.Teachers[i].TeacherName < report.Teachers[j].TeacherName
	})
	sort.Slice(report.Students, func(i, j int) bool {
		return report.Students[i].StudentName < report.Students[j].StudentName
	})
	return report
}
