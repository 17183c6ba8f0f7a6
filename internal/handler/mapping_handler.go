package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthrec/healthcare-api/internal/database/repository"
	"github.com/healthrec/healthcare-api/internal/database/service"
)

// MappingHandler handles HTTP requests for patient-doctor mappings
type MappingHandler struct {
	service service.MappingService
	logger  *slog.Logger
}

// NewMappingHandler creates a new mapping handler
func NewMappingHandler(service service.MappingService, logger *slog.Logger) *MappingHandler {
	return &MappingHandler{
		service: service,
		logger:  logger,
	}
}

// CreateMappingRequest references patient and doctor by primary key
type CreateMappingRequest struct {
	Patient uint `json:"patient" binding:"required"`
	Doctor  uint `json:"doctor" binding:"required"`
}

// List returns mappings for the requesting user's patients, newest first,
// with patient and doctor details inlined
func (h *MappingHandler) List(c *gin.Context) {
	mappings, err := h.service.List(currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, mappings)
}

// Create assigns a doctor to one of the requesting user's patients
func (h *MappingHandler) Create(c *gin.Context) {
	var req CreateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid mapping payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. Patient and doctor IDs required."})
		return
	}

	mapping, err := h.service.Create(currentUserID(c), req.Patient, req.Doctor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mapping)
}

// DoctorsForPatient returns the distinct doctors mapped to one of the
// requesting user's patients. The :id parameter is a patient ID.
func (h *MappingHandler) DoctorsForPatient(c *gin.Context) {
	patientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	doctors, err := h.service.DoctorsForPatient(currentUserID(c), patientID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, doctors)
}

// Delete removes a mapping belonging to one of the requesting user's
// patients. The :id parameter is a mapping ID.
func (h *MappingHandler) Delete(c *gin.Context) {
	mappingID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(currentUserID(c), mappingID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses
func (h *MappingHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotPatientOwner):
		c.JSON(http.StatusBadRequest, gin.H{"error": "You can only assign doctors to your own patients."})
	case errors.Is(err, repository.ErrMappingDuplicate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "This doctor is already assigned to this patient."})
	case errors.Is(err, repository.ErrDoctorNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Doctor not found."})
	case errors.Is(err, repository.ErrPatientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
	case errors.Is(err, repository.ErrMappingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Mapping not found"})
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
