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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrNotClassOwner is returned when a teacher acts on a request for a class
// they do not teach.
var ErrNotClassOwner = errors.New("class belongs to another teacher")

// RequestService handles schedule change request business logic.
type RequestService struct {
	requestRepo *repository.RequestRepository
	classRepo   *repository.ClassRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(requestRepo *repository.RequestRepository, classRepo *repository.ClassRepository, rdb *redis.Client, log zerolog.Logger) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		classRepo:   classRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "request_service").Logger(),
	}
}

// GetByID retrieves a schedule change request.
func (s *RequestService) GetByID(ctx context.Context, id uuid.UUID) (*model.ScheduleChangeRequest, error) {
	return s.requestRepo.GetByID(ctx, id)
}

// ListForRole retrieves requests visible to the caller: admins see all,
// teachers only requests touching their own classes.
func (s *RequestService) ListForRole(ctx context.Context, claims *Claims) ([]model.ScheduleChangeRequest, error) {
	if claims.Role == model.RoleTeacher {
		return s.requestRepo.ListByTeacher(ctx, claims.UserID)
	}
	return s.requestRepo.List(ctx)
}

// Create proposes a reschedule of an existing class. The class's current
// time range is captured as the old range at proposal time. Teachers may
// only propose changes for their own classes.
func (s *RequestService) Create(ctx context.Context, claims *Claims, req *model.CreateScheduleChangeRequest) (*model.ScheduleChangeRequest, error) {
	if !req.NewEndTime.After(req.NewStartTime) {
		return nil, ErrInvalidTimeRange
	}

	class, err := s.classRepo.GetByID(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	if claims.Role == model.RoleTeacher && class.TeacherID != claims.UserID {
		return nil, ErrNotClassOwner
	}
	if model.IsTerminalStatus(class.Status) || class.Status == model.StatusOngoing {
		return nil, repository.ErrClassNotReschedulable
	}

	q := &model.ScheduleChangeRequest{
		ClassID:      class.ID,
		RequestedBy:  claims.UserID,
		OldStartTime: class.StartTime,
		OldEndTime:   class.EndTime,
		NewStartTime: req.NewStartTime,
		NewEndTime:   req.NewEndTime,
		Reason:       req.Reason,
	}
	if err := s.requestRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Resolve approves or rejects a pending request. Admins may resolve any
// request; a teacher may only resolve requests for their own classes.
// Approval rewrites the class schedule and emits a live event.
func (s *RequestService) Resolve(ctx context.Context, claims *Claims, id uuid.UUID, status model.RequestStatus, teacherResponse *string) (*model.ScheduleChangeRequest, error) {
	q, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	class, err := s.classRepo.GetByID(ctx, q.ClassID)
	if err != nil {
		return nil, err
	}
	if claims.Role == model.RoleTeacher && class.TeacherID != claims.UserID {
		return nil, ErrNotClassOwner
	}

	if err := s.requestRepo.Resolve(ctx, q, status, teacherResponse); err != nil {
		return nil, err
	}

	if status == model.RequestApproved {
		s.publishReschedule(ctx, class, q)
	}

	return s.requestRepo.GetByID(ctx, id)
}

func (s *RequestService) publishReschedule(ctx context.Context, class *model.ClassWithRelations, q *model.ScheduleChangeRequest) {
	event := ScheduleEvent{
		Type:      EventClassStatusChanged,
		ClassID:   class.ID,
		StudentID: class.StudentID,
		TeacherID: class.TeacherID,
		Status:    model.StatusRescheduled,
		StartTime: q.NewStartTime,
		EndTime:   q.NewEndTime,
		At:        time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.ScheduleEventChannel(), payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("class_id", class.ID.String()).Msg("Reschedule event publish failed")
	}
}
