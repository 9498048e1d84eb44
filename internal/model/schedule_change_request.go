package model

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents the resolution state of a schedule change request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// ScheduleChangeRequest is a proposed reschedule of an existing class.
// Approval rewrites the class's time range; rejection leaves it untouched.
type ScheduleChangeRequest struct {
	ID              uuid.UUID     `json:"id"`
	ClassID         uuid.UUID     `json:"class_id"`
	RequestedBy     uuid.UUID     `json:"requested_by"`
	OldStartTime    time.Time     `json:"old_start_time"`
	OldEndTime      time.Time     `json:"old_end_time"`
	NewStartTime    time.Time     `json:"new_start_time"`
	NewEndTime      time.Time     `json:"new_end_time"`
	Reason          *string       `json:"reason"`
	Status          RequestStatus `json:"status"`
	TeacherResponse *string       `json:"teacher_response"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// CreateScheduleChangeRequest is the payload for proposing a reschedule.
// The requester is taken from the caller's token, never from the body.
type CreateScheduleChangeRequest struct {
	ClassID      uuid.UUID `json:"class_id" binding:"required"`
	NewStartTime time.Time `json:"new_start_time" binding:"required"`
	NewEndTime   time.Time `json:"new_end_time" binding:"required,gtfield=NewStartTime"`
	Reason       *string   `json:"reason" binding:"omitempty,max=1000"`
}

// ResolveScheduleChangeRequest is the payload for approving or rejecting a
// pending request.
type ResolveScheduleChangeRequest struct {
	Status          RequestStatus `json:"status" binding:"required,oneof=approved rejected"`
	TeacherResponse *string       `json:"teacher_response" binding:"omitempty,max=1000"`
}
