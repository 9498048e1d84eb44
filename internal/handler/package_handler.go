package handler

import (
	"errors"
	"net/http"

	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/eduadmin/eduadmin-backend/internal/repository"
	"github.com/eduadmin/eduadmin-backend/internal/response"
	"github.com/eduadmin/eduadmin-backend/internal/service"
	"github.com/eduadmin/eduadmin-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PackageHandler handles learning package endpoints.
type PackageHandler struct {
	packageService *service.PackageService
}

// NewPackageHandler creates a new PackageHandler.
func NewPackageHandler(packageService *service.PackageService) *PackageHandler {
	return &PackageHandler{packageService: packageService}
}

// List godoc
// GET /api/v1/packages
// Active packages only, smallest bundle first.
func (h *PackageHandler) List(c *gin.Context) {
	packages, err := h.packageService.ListActive(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"packages": packages})
}

// Get godoc
// GET /api/v1/packages/:id
func (h *PackageHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	pkg, err := h.packageService.GetByID(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"package": pkg})
}

// Create godoc
// POST /api/v1/packages
func (h *PackageHandler) Create(c *gin.Context) {
	var req model.CreatePackageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	pkg := &model.Package{
		Name:        req.Name,
		Hours:       req.Hours,
		Price:       req.Price,
		Description: req.Description,
	}
	if err := h.packageService.Create(c.Request.Context(), pkg); err != nil {
		if errors.Is(err, repository.ErrDuplicatePackageName) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"package": pkg})
}

// Update godoc
// PUT /api/v1/packages/:id
// Changing the hour count never rewrites balances of enrolled students.
func (h *PackageHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreatePackageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	pkg := &model.Package{
		ID:          id,
		Name:        req.Name,
		Hours:       req.Hours,
		Price:       req.Price,
		Description: req.Description,
	}
	if err := h.packageService.Update(c.Request.Context(), pkg); err != nil {
		switch {
		case isNotFound(err):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, repository.ErrDuplicatePackageName):
			response.Fail(c, http.StatusConflict, response.ErrConflict)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	updated, err := h.packageService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"package": updated})
}

// Delete godoc
// DELETE /api/v1/packages/:id
// Soft delete; enrolled students keep their balances and the reference.
func (h *PackageHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.packageService.Deactivate(c.Request.Context(), id); err != nil {
		if isNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.NoContent(c)
}
