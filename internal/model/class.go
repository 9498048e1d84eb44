package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassStatus represents the lifecycle state of a scheduled class.
type ClassStatus string

const (
	StatusScheduled   ClassStatus = "scheduled"
	StatusOngoing     ClassStatus = "ongoing"
	StatusCompleted   ClassStatus = "completed"
	StatusCancelled   ClassStatus = "cancelled"
	StatusRescheduled ClassStatus = "rescheduled"
)

// classTransitions is the explicit lifecycle graph. Completed and cancelled
// are terminal.
var classTransitions = map[ClassStatus][]ClassStatus{
	StatusScheduled:   {StatusOngoing, StatusCancelled, StatusRescheduled},
	StatusOngoing:     {StatusCompleted, StatusCancelled},
	StatusRescheduled: {StatusScheduled},
	StatusCompleted:   {},
	StatusCancelled:   {},
}

// IsValidStatus reports whether s is a known class status.
func IsValidStatus(s ClassStatus) bool {
	_, ok := classTransitions[s]
	return ok
}

// CanTransition reports whether moving from one status to another is allowed
// by the lifecycle graph. Self-transitions are not allowed.
func CanTransition(from, to ClassStatus) bool {
	for _, next := range classTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether no further transitions are possible.
func IsTerminalStatus(s ClassStatus) bool {
	return len(classTransitions[s]) == 0
}

// Class represents one scheduled teaching session between a student and a
// teacher. Duration is in hours (e.g. 1.5). Classes are hard-deleted.
type Class struct {
	ID        uuid.UUID   `json:"id"`
	StudentID uuid.UUID   `json:"student_id"`
	TeacherID uuid.UUID   `json:"teacher_id"`
	Subject   *string     `json:"subject"`
	StartTime time.Time   `json:"start_time"`
	EndTime   time.Time   `json:"end_time"`
	Duration  float64     `json:"duration"`
	ZoomLink  *string     `json:"zoom_link"`
	Status    ClassStatus `json:"status"`
	Notes     *string     `json:"notes"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ClassWithRelations carries a class together with its left-joined student
// and teacher. A missing relation is nil, never an error.
type ClassWithRelations struct {
	Class
	Student *Student `json:"student,omitempty"`
	Teacher *User    `json:"teacher,omitempty"`
}

// CreateClassRequest is the payload for scheduling a new class. EndTime must
// be strictly after StartTime; this is enforced server-side, not trusted from
// the client. Duration defaults to 1.0 hour when omitted.
type CreateClassRequest struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
	TeacherID uuid.UUID `json:"teacher_id" binding:"required"`
	Subject   *string   `json:"subject" binding:"omitempty,max=100"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required,gtfield=StartTime"`
	Duration  *float64  `json:"duration" binding:"omitempty,gt=0,lte=9.99"`
	ZoomLink  *string   `json:"zoom_link" binding:"omitempty,url"`
	Notes     *string   `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateClassRequest is the payload for editing class details. Status is
// deliberately absent: lifecycle changes go through the transition endpoint.
type UpdateClassRequest struct {
	Subject   *string   `json:"subject" binding:"omitempty,max=100"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required,gtfield=StartTime"`
	ZoomLink  *string   `json:"zoom_link" binding:"omitempty,url"`
	Notes     *string   `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateClassStatusRequest is the payload for a lifecycle transition.
type UpdateClassStatusRequest struct {
	Status ClassStatus `json:"status" binding:"required,oneof=scheduled ongoing completed cancelled rescheduled"`
}
