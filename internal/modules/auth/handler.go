package auth

import (
	"errors"
	"net/http"

	"lrbook/internal/middleware"
	"lrbook/internal/pkg/response"
	"lrbook/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.GetMe)
}

// Login authenticates an agent.
// @Summary		Agent login
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"email and password"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	agent, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		case errors.Is(err, ErrAgentInactive):
			response.Error(c, http.StatusForbidden, "AGENT_INACTIVE", "Agent account is deactivated")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"agent": ToAgentResponse(agent),
		"token": token,
	})
}

// GetMe returns the authenticated agent.
// @Summary		Current agent
// @Tags		Auth
// @Security	BearerAuth
// @Router		/auth/me [GET]
func (h *Handler) GetMe(c *gin.Context) {
	id, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	agent, err := h.service.GetCurrentAgent(c.Request.Context(), id.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Agent not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load agent")
		return
	}

	response.Success(c, http.StatusOK, ToAgentResponse(agent))
}
