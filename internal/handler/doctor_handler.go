package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthrec/healthcare-api/internal/database/repository"
	"github.com/healthrec/healthcare-api/internal/database/service"
)

// DoctorHandler handles HTTP requests for the shared doctor pool
type DoctorHandler struct {
	service service.DoctorService
	logger  *slog.Logger
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(service service.DoctorService, logger *slog.Logger) *DoctorHandler {
	return &DoctorHandler{
		service: service,
		logger:  logger,
	}
}

// Request DTOs
type CreateDoctorRequest struct {
	Name           string `json:"name" binding:"required,max=120"`
	Specialization string `json:"specialization" binding:"required,max=120"`
}

type UpdateDoctorRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=120"`
	Specialization *string `json:"specialization" binding:"omitempty,max=120"`
}

// List returns all doctors, newest first
func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.service.List()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, doctors)
}

// Get returns a single doctor
func (h *DoctorHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	doctor, err := h.service.Get(id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, doctor)
}

// Create adds a doctor to the shared pool
func (h *DoctorHandler) Create(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid doctor payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. Name and specialization required."})
		return
	}

	doctor, err := h.service.Create(service.DoctorInput{
		Name:           req.Name,
		Specialization: req.Specialization,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, doctor)
}

// Update modifies a doctor. PUT and PATCH share the handler; absent fields
// are left untouched either way.
func (h *DoctorHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid doctor payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	doctor, err := h.service.Update(id, service.DoctorUpdate{
		Name:           req.Name,
		Specialization: req.Specialization,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, doctor)
}

// Delete removes a doctor, unless mappings still reference it
func (h *DoctorHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses
func (h *DoctorHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrDoctorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
	case errors.Is(err, repository.ErrDoctorProtected):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete doctor. Please delete all associated patient-doctor mappings first."})
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
