package handler

import (
	"errors"
	"net/http"

	"github.com/eduadmin/eduadmin-backend/internal/middleware"
	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/eduadmin/eduadmin-backend/internal/repository"
	"github.com/eduadmin/eduadmin-backend/internal/response"
	"github.com/eduadmin/eduadmin-backend/internal/service"
	"github.com/eduadmin/eduadmin-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestHandler handles schedule change request endpoints.
type RequestHandler struct {
	requestService *service.RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(requestService *service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// List godoc
// GET /api/v1/schedule-change-requests
// Admins see every request; teachers only requests touching their classes.
func (h *RequestHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	requests, err := h.requestService.ListForRole(c.Request.Context(), claims)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

// Create godoc
// POST /api/v1/schedule-change-requests
// Proposes a reschedule. The class's current time range is recorded as the
// old range at proposal time.
func (h *RequestHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateScheduleChangeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	created, err := h.requestService.Create(c.Request.Context(), claims, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTimeRange):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidTimeRange)
		case errors.Is(err, service.ErrNotClassOwner):
			response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		case errors.Is(err, repository.ErrClassNotReschedulable):
			response.Fail(c, http.StatusConflict, response.ErrClassNotReschedule)
		case isNotFound(err):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"request": created})
}

// Resolve godoc
// PATCH /api/v1/schedule-change-requests/:id
// Approves or rejects a pending request. Approval rewrites the class's
// schedule atomically with the resolution.
func (h *RequestHandler) Resolve(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ResolveScheduleChangeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	resolved, err := h.requestService.Resolve(c.Request.Context(), claims, id, req.Status, req.TeacherResponse)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotClassOwner):
			response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		case errors.Is(err, repository.ErrRequestResolved):
			response.Fail(c, http.StatusConflict, response.ErrRequestResolved)
		case errors.Is(err, repository.ErrClassNotReschedulable):
			response.Fail(c, http.StatusConflict, response.ErrClassNotReschedule)
		case isNotFound(err):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": resolved})
}
