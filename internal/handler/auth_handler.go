package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthrec/healthcare-api/internal/database/repository"
	"github.com/healthrec/healthcare-api/internal/database/service"
	"github.com/healthrec/healthcare-api/internal/middleware"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	service     service.AuthService
	rateLimiter middleware.LoginRateLimiter
	logger      *slog.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service service.AuthService, rateLimiter middleware.LoginRateLimiter, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service:     service,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// Request/Response DTOs
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=150"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh" binding:"required"`
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid registration request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. Name, email, and password (min 8 chars) required."})
		return
	}

	user, err := h.service.Register(req.Name, req.Email, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	// Password (and everything else) stays out of the response.
	c.JSON(http.StatusCreated, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid login request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. Email and password required."})
		return
	}

	allowed, err := h.rateLimiter.Allow(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("❌ [Handler] Rate limiter check failed", "error", err)
	}
	if !allowed {
		h.logger.Warn("⚠️ [Handler] Login rate limit hit", "email", req.Email)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many failed login attempts. Please try again later."})
		return
	}

	tokens, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			if rlErr := h.rateLimiter.RecordFailure(c.Request.Context(), req.Email); rlErr != nil {
				h.logger.Error("❌ [Handler] Failed to record login failure", "error", rlErr)
			}
		}
		h.handleServiceError(c, err)
		return
	}

	if err := h.rateLimiter.Reset(c.Request.Context(), req.Email); err != nil {
		h.logger.Error("❌ [Handler] Failed to reset login counter", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"access":  tokens.AccessToken,
		"refresh": tokens.RefreshToken,
	})
}

// RefreshToken handles token refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid refresh request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token required"})
		return
	}

	tokens, err := h.service.RefreshToken(req.RefreshToken)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":  tokens.AccessToken,
		"refresh": tokens.RefreshToken,
	})
}

// Logout handles user logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid logout request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token required"})
		return
	}

	if err := h.service.Logout(req.RefreshToken); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// handleServiceError maps service errors to HTTP responses
func (h *AuthHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A user with this email already exists."})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, repository.ErrTokenNotFound), errors.Is(err, repository.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
