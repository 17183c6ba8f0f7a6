package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/healthrec/healthcare-api/internal/database/repository"
	"github.com/healthrec/healthcare-api/internal/database/service"
)

// PatientHandler handles HTTP requests for patient records
type PatientHandler struct {
	service service.PatientService
	logger  *slog.Logger
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(service service.PatientService, logger *slog.Logger) *PatientHandler {
	return &PatientHandler{
		service: service,
		logger:  logger,
	}
}

// Request DTOs
type CreatePatientRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Age     *int   `json:"age" binding:"required,gte=0"`
	Gender  string `json:"gender" binding:"required,oneof=male female other"`
	Address string `json:"address"`
}

type UpdatePatientRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=120"`
	Age     *int    `json:"age" binding:"omitempty,gte=0"`
	Gender  *string `json:"gender" binding:"omitempty,oneof=male female other"`
	Address *string `json:"address"`
}

// List returns the requesting user's patients, newest first
func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.service.List(currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, patients)
}

// Get returns a single patient owned by the requesting user
func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	patient, err := h.service.Get(currentUserID(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, patient)
}

// Create adds a patient record owned by the requesting user
func (h *PatientHandler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid patient payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. Name, non-negative age, and gender (male/female/other) required."})
		return
	}

	patient, err := h.service.Create(currentUserID(c), service.PatientInput{
		Name:    req.Name,
		Age:     *req.Age,
		Gender:  req.Gender,
		Address: req.Address,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, patient)
}

// Update modifies a patient owned by the requesting user. PUT and PATCH
// share the handler; absent fields are left untouched either way.
func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid patient payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	patient, err := h.service.Update(currentUserID(c), id, service.PatientUpdate{
		Name:    req.Name,
		Age:     req.Age,
		Gender:  req.Gender,
		Address: req.Address,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, patient)
}

// Delete removes a patient owned by the requesting user, unless mappings
// still reference it
func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(currentUserID(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses
func (h *PatientHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrPatientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
	case errors.Is(err, repository.ErrPatientProtected):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete patient. Please delete all associated patient-doctor mappings first."})
	case errors.Is(err, service.ErrInvalidGender), errors.Is(err, service.ErrInvalidAge):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentUserID returns the authenticated user's ID set by the auth middleware
func currentUserID(c *gin.Context) uint {
	return c.GetUint("userID")
}

// parseIDParam parses the :id path parameter, responding 404 when it is not
// a positive integer so malformed IDs look like missing resources
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return uint(id), true
}
