package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/eduadmin/eduadmin-backend/internal/config"
	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/eduadmin/eduadmin-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Class scheduling errors.
var (
	ErrInvalidTimeRange  = errors.New("end time must be after start time")
	ErrTeacherRequired   = errors.New("referenced user is not a teacher")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// ScheduleEventType identifies a class lifecycle event on the live stream.
type ScheduleEventType string

const (
	EventClassCreated       ScheduleEventType = "class_created"
	EventClassStatusChanged ScheduleEventType = "class_status_changed"
	EventClassDeleted       ScheduleEventType = "class_deleted"
)

// ScheduleEvent is published to Redis for every class lifecycle change and
// relayed to live schedule WebSocket subscribers.
type ScheduleEvent struct {
	Type      ScheduleEventType `json:"type"`
	ClassID   uuid.UUID         `json:"class_id"`
	StudentID uuid.UUID         `json:"student_id"`
	TeacherID uuid.UUID         `json:"teacher_id"`
	Status    model.ClassStatus `json:"status"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time"`
	At        time.Time         `json:"at"`
}

// ClassService handles class scheduling, the status lifecycle, and the hours
// ledger orchestration.
type ClassService struct {
	classRepo *repository.ClassRepository
	userRepo  *repository.UserRepository
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewClassService creates a new ClassService.
func NewClassService(classRepo *repository.ClassRepository, userRepo *repository.UserRepository, rdb *redis.Client, log zerolog.Logger) *ClassService {
	return &ClassService{
		classRepo: classRepo,
		userRepo:  userRepo,
		rdb:       rdb,
		log:       log.With().Str("component", "class_service").Logger(),
	}
}

// GetByID retrieves a class with relations.
func (s *ClassService) GetByID(ctx context.Context, id uuid.UUID) (*model.ClassWithRelations, error) {
	return s.classRepo.GetByID(ctx, id)
}

// ListForRole retrieves classes visible to the caller: admins see all,
// teachers only their own.
func (s *ClassService) ListForRole(ctx context.Context, claims *Claims, from, to *time.Time) ([]model.ClassWithRelations, error) {
	if claims.Role == model.RoleTeacher {
		return s.classRepo.ListByTeacher(ctx, claims.UserID, from, to)
	}
	return s.classRepo.List(ctx, from, to)
}

// Create schedules a new class and debits the student's hours in one
// transaction. The time range is re-validated server-side and the teacher
// reference must point at a teacher-role user.
func (s *ClassService) Create(ctx context.Context, c *model.Class) error {
	if !c.EndTime.After(c.StartTime) {
		return ErrInvalidTimeRange
	}
	if c.Duration <= 0 {
		c.Duration = 1.0
	}

	if err := s.requireTeacher(ctx, c.TeacherID); err != nil {
		return err
	}

	if err := s.classRepo.Create(ctx, c); err != nil {
		return err
	}

	s.publish(ctx, ScheduleEvent{
		Type:      EventClassCreated,
		ClassID:   c.ID,
		StudentID: c.StudentID,
		TeacherID: c.TeacherID,
		Status:    c.Status,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		At:        time.Now().UTC(),
	})
	return nil
}

// UpdateDetails modifies a class's schedule details (not its status or
// duration).
func (s *ClassService) UpdateDetails(ctx context.Context, c *model.Class) error {
	if !c.EndTime.After(c.StartTime) {
		return ErrInvalidTimeRange
	}
	return s.classRepo.UpdateDetails(ctx, c)
}

// Transition moves a class along the lifecycle graph, restoring the
// student's hours when the transition releases them.
func (s *ClassService) Transition(ctx context.Context, id uuid.UUID, to model.ClassStatus) (*model.ClassWithRelations, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !model.CanTransition(class.Status, to) {
		return nil, ErrInvalidTransition
	}

	restore := hoursReleasedByTransition(to, class.Duration)
	if err := s.classRepo.UpdateStatus(ctx, id, class.Status, to, class.StudentID, restore); err != nil {
		return nil, err
	}

	s.publish(ctx, ScheduleEvent{
		Type:      EventClassStatusChanged,
		ClassID:   class.ID,
		StudentID: class.StudentID,
		TeacherID: class.TeacherID,
		Status:    to,
		StartTime: class.StartTime,
		EndTime:   class.EndTime,
		At:        time.Now().UTC(),
	})

	return s.classRepo.GetByID(ctx, id)
}

// Delete hard-deletes a class. Hours reserved by a class that never ran are
// credited back; completed consumption and already-credited cancellations
// are left alone.
func (s *ClassService) Delete(ctx context.Context, id uuid.UUID) error {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	restore := hoursReleasedByDelete(class.Status, class.Duration)
	if err := s.classRepo.Delete(ctx, id, class.Status, class.StudentID, restore); err != nil {
		return err
	}

	s.publish(ctx, ScheduleEvent{
		Type:      EventClassDeleted,
		ClassID:   class.ID,
		StudentID: class.StudentID,
		TeacherID: class.TeacherID,
		Status:    class.Status,
		StartTime: class.StartTime,
		EndTime:   class.EndTime,
		At:        time.Now().UTC(),
	})
	return nil
}

func (s *ClassService) requireTeacher(ctx context.Context, teacherID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, teacherID)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}
	if user.Role != model.RoleTeacher {
		return ErrTeacherRequired
	}
	return nil
}

// publish sends a schedule event to the live stream channel. Delivery is
// best effort: a Redis outage must not fail the write that already
// committed.
func (s *ClassService) publish(ctx context.Context, event ScheduleEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.ScheduleEventChannel(), payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("type", string(event.Type)).Msg("Schedule event publish failed")
	}
}

// hoursReleasedByTransition returns the hours credited back to the student
// when a class moves to the given status. Only cancellation releases the
// reservation; completion consumes it.
func hoursReleasedByTransition(to model.ClassStatus, duration float64) float64 {
	if to == model.StatusCancelled {
		return duration
	}
	return 0
}

// hoursReleasedByDelete returns the hours credited back when a class is
// hard-deleted. Terminal classes release nothing: completed ones consumed
// their hours and cancelled ones were credited at cancellation time.
func hoursReleasedByDelete(status model.ClassStatus, duration float64) float64 {
	if model.IsTerminalStatus(status) {
		return 0
	}
	return duration
}
