package model

import (
	"time"

	"github.com/google/uuid"
)

// DashboardSummary is the admin landing page snapshot. Every field is
// recomputed from live data on each request.
type DashboardSummary struct {
	TotalStudents  int `json:"total_students"`
	TotalTeachers  int `json:"total_teachers"`
	TodayClasses   int `json:"today_classes"`
	OngoingClasses int `json:"ongoing_classes"`
}

// TeacherReportRow aggregates class activity for one teacher.
type TeacherReportRow struct {
	TeacherID        uuid.UUID `json:"teacher_id"`
	TeacherName      string    `json:"teacher_name"`
	TotalClasses     int       `json:"total_classes"`
	CompletedClasses int       `json:"completed_classes"`
	CompletedHours   float64   `json:"completed_hours"`
}

// StudentReportRow aggregates class activity and the current hour balance
// for one student.
type StudentReportRow struct {
	StudentID        uuid.UUID `json:"student_id"`
	StudentName      string    `json:"student_name"`
	TotalClasses     int       `json:"total_classes"`
	CompletedClasses int       `json:"completed_classes"`
	CompletedHours   float64   `json:"completed_hours"`
	RemainingHours   float64   `json:"remaining_hours"`
}

// Report is the activity report over an optional date range, grouped per
// teacher and per student.
type Report struct {
	From     *time.Time         `json:"from,omitempty"`
	To       *time.Time         `json:"to,omitempty"`
	Teachers []TeacherReportRow `json:"teachers"`
	Students []StudentReportRow `json:"students"`
}
