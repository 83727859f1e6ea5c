package admin

import (
	"errors"
	"net/http"

	"lrbook/internal/modules/auth"
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

// RegisterRoutes expects a group already restricted to admins.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/agents", h.ListAgents)
	admin.GET("/agents/:id", h.GetAgent)
	admin.POST("/agents", h.CreateAgent)
	admin.PUT("/agents/:id", h.UpdateAgent)
	admin.DELETE("/agents/:id", h.DeactivateAgent)
}

func (h *Handler) ListAgents(c *gin.Context) {
	agents, err := h.service.ListAgents(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]auth.AgentResponse, 0, len(agents))
	for i := range agents {
		out = append(out, auth.ToAgentResponse(&agents[i]))
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) GetAgent(c *gin.Context) {
	agent, err := h.service.GetAgent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, auth.ToAgentResponse(agent))
}

// CreateAgent registers a new agent or admin.
// @Summary		Create agent
// @Tags		Admin - Agents
// @Security	BearerAuth
// @Param		request	body	CreateAgentRequest	true	"agent data"
// @Success		201	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}
// @Router		/agents [POST]
func (h *Handler) CreateAgent(c *gin.Context) {
	var req CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	agent, err := h.service.CreateAgent(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, auth.ToAgentResponse(agent))
}

func (h *Handler) UpdateAgent(c *gin.Context) {
	var req UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	agent, err := h.service.UpdateAgent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, auth.ToAgentResponse(agent))
}

func (h *Handler) DeactivateAgent(c *gin.Context) {
	if err := h.service.DeactivateAgent(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id"), "is_active": false})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Agent not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
	case errors.Is(err, ErrLocationLocked):
		response.Error(c, http.StatusConflict, "LOCATION_LOCKED", "Agent location is already assigned and cannot be changed")
	case errors.Is(err, ErrInvalidRole), errors.Is(err, ErrPasswordTooShort):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Agent operation failed")
	}
}
