package model

import (
	"time"

	"github.com/google/uuid"
)

// StudentLevel represents the student's proficiency level.
type StudentLevel string

const (
	LevelBeginner     StudentLevel = "beginner"
	LevelIntermediate StudentLevel = "intermediate"
	LevelAdvanced     StudentLevel = "advanced"
)

// Student represents a learner enrolled at the center. TotalHours is granted
// at enrollment from the selected package; RemainingHours is the unconsumed
// balance maintained by the hours ledger. Students are soft-deleted via
// IsActive.
type Student struct {
	ID                uuid.UUID    `json:"id"`
	Name              string       `json:"name"`
	Email             *string      `json:"email"`
	Age               *int         `json:"age"`
	Level             StudentLevel `json:"level"`
	PackageID         *uuid.UUID   `json:"package_id"`
	AssignedTeacherID *uuid.UUID   `json:"assigned_teacher_id"`
	TotalHours        float64      `json:"total_hours"`
	RemainingHours    float64      `json:"remaining_hours"`
	IsActive          bool         `json:"is_active"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// StudentWithRelations carries a student together with its left-joined
// package and assigned teacher. A missing relation is nil, never an error.
type StudentWithRelations struct {
	Student
	Package         *Package `json:"package,omitempty"`
	AssignedTeacher *User    `json:"assigned_teacher,omitempty"`
}

// CreateStudentRequest is the payload for enrolling a new student.
// TotalHours/RemainingHours are not accepted from the client; they are
// pre-populated from the selected package.
type CreateStudentRequest struct {
	Name              string       `json:"name" binding:"required,min=2,max=100"`
	Email             *string      `json:"email" binding:"omitempty,email,max=100"`
	Age               *int         `json:"age" binding:"omitempty,min=3,max=100"`
	Level             StudentLevel `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	PackageID         *uuid.UUID   `json:"package_id" binding:"omitempty"`
	AssignedTeacherID *uuid.UUID   `json:"assigned_teacher_id" binding:"omitempty"`
}

// UpdateStudentRequest is the payload for updating an existing student.
// Hour balances are excluded: only the ledger mutates them.
type UpdateStudentRequest struct {
	Name              string       `json:"name" binding:"required,min=2,max=100"`
	Email             *string      `json:"email" binding:"omitempty,email,max=100"`
	Age               *int         `json:"age" binding:"omitempty,min=3,max=100"`
	Level             StudentLevel `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	PackageID         *uuid.UUID   `json:"package_id" binding:"omitempty"`
	AssignedTeacherID *uuid.UUID   `json:"assigned_teacher_id" binding:"omitempty"`
}
