package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/eduadmin/eduadmin-backend/internal/middleware"
	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/eduadmin/eduadmin-backend/internal/repository"
	"github.com/eduadmin/eduadmin-backend/internal/response"
	"github.com/eduadmin/eduadmin-backend/internal/service"
	"github.com/eduadmin/eduadmin-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClassHandler handles class scheduling endpoints.
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// List godoc
// GET /api/v1/classes?from=...&to=...
// Admins see every class; teachers only their own. The optional range
// filters on start_time, RFC 3339.
func (h *ClassHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	from, ok := parseTimeQuery(c, "start_date")
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "end_date")
	if !ok {
		return
	}

	classes, err := h.classService.ListForRole(c.Request.Context(), claims, from, to)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// Get godoc
// GET /api/v1/classes/:id
func (h *ClassHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	class, err := h.classService.GetByID(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// Create godoc
// POST /api/v1/classes
// Books a class and debits the student's hours in the same transaction.
// A student without enough remaining hours rejects the booking.
func (h *ClassHandler) Create(c *gin.Context) {
	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class := &model.Class{
		StudentID: req.StudentID,
		TeacherID: req.TeacherID,
		Subject:   req.Subject,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		ZoomLink:  req.ZoomLink,
		Notes:     req.Notes,
	}
	if req.Duration != nil {
		class.Duration = *req.Duration
	}

	if err := h.classService.Create(c.Request.Context(), class); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTimeRange):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidTimeRange)
		case errors.Is(err, service.ErrTeacherRequired):
			response.Fail(c, http.StatusBadRequest, response.ErrTeacherRequired)
		case errors.Is(err, repository.ErrInsufficientHours):
			response.Fail(c, http.StatusConflict, response.ErrInsufficientHours)
		case isNotFound(err):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// Update godoc
// PUT /api/v1/classes/:id
// Schedule details only. Status moves through the transition endpoint and
// duration is fixed at booking time.
func (h *ClassHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class := &model.Class{
		ID:        id,
		Subject:   req.Subject,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		ZoomLink:  req.ZoomLink,
		Notes:     req.Notes,
	}
	if err := h.classService.UpdateDetails(c.Request.Context(), class); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTimeRange):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidTimeRange)
		case isNotFound(err):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	updated, err := h.classService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class": updated})
}

// UpdateStatus godoc
// PATCH /api/v1/classes/:id/status
// Moves the class along the lifecycle graph. Cancelling restores the
// student's hours, capped at their package total.
func (h *ClassHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateClassStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.Transition(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, repository.ErrStaleStatus):
			response.Fail(c, http.StatusConflict, response.ErrInvalidTransition)
		case isNotFound(err):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// Delete godoc
// DELETE /api/v1/classes/:id
// Hard delete. Reserved hours of a class that never ran are credited back.
func (h *ClassHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.classService.Delete(c.Request.Context(), id); err != nil {
		if isNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.NoContent(c)
}

// parseTimeQuery reads an optional RFC 3339 query param. It writes the
// error response itself and reports ok=false when the value is malformed.
func parseTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{name: "must be an RFC 3339 timestamp"})
		return nil, false
	}
	return &t, true
}
