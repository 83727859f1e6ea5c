package report

import (
	"net/http"

	"lrbook/internal/domain"
	"lrbook/internal/middleware"
	"lrbook/internal/modules/booking"
	"lrbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/summary", h.Summary)
}

// Summary returns booking counts and revenue for a date range.
// @Summary		Booking summary
// @Tags		Reports
// @Security	BearerAuth
// @Param		date_from	query	string	false	"YYYY-MM-DD"
// @Param		date_to		query	string	false	"YYYY-MM-DD, inclusive"
// @Param		from_code	query	string	false	"origin code"
// @Router		/reports/summary [GET]
func (h *Handler) Summary(c *gin.Context) {
	agent, _ := middleware.Identity(c)

	f, err := booking.ParseFilter(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	summary, err := h.service.Summary(c.Request.Context(), agent, f)
	if domain.IsValidation(err) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build report")
		return
	}
	response.Success(c, http.StatusOK, summary)
}
