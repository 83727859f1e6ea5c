package booking

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"lrbook/internal/domain"
	"lrbook/internal/middleware"
	"lrbook/internal/pkg/response"
	"lrbook/internal/repository"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.ListBookings)
	rg.GET("/bookings/lr/:lr", h.GetByLRNumber)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.GET("/bookings/:id/receipt.pdf", h.GetReceipt)
	rg.PATCH("/bookings/:id/status", h.UpdateStatus)
}

// CreateBooking creates a booking for the authenticated agent.
// @Summary		Create booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		request	body	CreateBookingRequest	true	"booking submission"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}	"VALIDATION_ERROR"
// @Failure		422	{object}	map[string]interface{}	"FROM_LOCATION_UNRESOLVED"
// @Router		/bookings [POST]
func (h *Handler) CreateBooking(c *gin.Context) {
	agent, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), agent, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

// ListBookings lists bookings visible to the caller.
// @Summary		List bookings
// @Tags		Bookings
// @Security	BearerAuth
// @Param		status		query	string	false	"status"
// @Param		lr_type		query	string	false	"paid | to_pay | on_account"
// @Param		from_code	query	string	false	"origin code"
// @Param		to_code		query	string	false	"destination code"
// @Param		date_from	query	string	false	"YYYY-MM-DD"
// @Param		date_to		query	string	false	"YYYY-MM-DD, inclusive"
// @Param		q			query	string	false	"LR number or party name"
// @Param		limit		query	int		false	"default 50, max 200"
// @Param		offset		query	int		false	"offset"
// @Router		/bookings [GET]
func (h *Handler) ListBookings(c *gin.Context) {
	agent, _ := middleware.Identity(c)

	f, err := ParseFilter(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	items, total, err := h.service.ListBookings(c.Request.Context(), agent, f)
	if err != nil {
		h.fail(c, err)
		return
	}
	limit := f.Limit
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	response.Page(c, items, total, limit, f.Offset)
}

func (h *Handler) GetBooking(c *gin.Context) {
	agent, _ := middleware.Identity(c)
	b, err := h.service.GetBooking(c.Request.Context(), agent, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) GetByLRNumber(c *gin.Context) {
	agent, _ := middleware.Identity(c)
	b, err := h.service.GetByLRNumber(c.Request.Context(), agent, c.Param("lr"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) GetReceipt(c *gin.Context) {
	agent, _ := middleware.Identity(c)
	b, err := h.service.GetBooking(c.Request.Context(), agent, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	pdfBytes, filename, err := BuildReceiptPDF(b)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "RECEIPT_FAILED", "Failed to build receipt")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// UpdateStatus moves a booking to the next lifecycle status.
// @Summary		Update booking status
// @Tags		Bookings
// @Security	BearerAuth
// @Param		request	body	UpdateStatusRequest	true	"new status"
// @Failure		409	{object}	map[string]interface{}	"INVALID_STATUS_TRANSITION"
// @Router		/bookings/{id}/status [PATCH]
func (h *Handler) UpdateStatus(c *gin.Context) {
	agent, _ := middleware.Identity(c)

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), agent, c.Param("id"), domain.BookingStatus(req.Status))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// ParseFilter reads the shared booking query parameters. date_to is
// inclusive of the whole day.
func ParseFilter(c *gin.Context) (domain.BookingFilter, error) {
	f := domain.BookingFilter{
		Status:   domain.BookingStatus(c.Query("status")),
		LRType:   domain.LRType(c.Query("lr_type")),
		FromCode: c.Query("from_code"),
		ToCode:   c.Query("to_code"),
		Query:    c.Query("q"),
	}

	if v := c.Query("date_from"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, domain.NewValidationError("date_from", "must be YYYY-MM-DD")
		}
		f.DateFrom = &d
	}
	if v := c.Query("date_to"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, domain.NewValidationError("date_to", "must be YYYY-MM-DD")
		}
		end := d.AddDate(0, 0, 1)
		f.DateTo = &end
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, domain.NewValidationError("limit", "must be a positive number")
		}
		f.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, domain.NewValidationError("offset", "must be a positive number")
		}
		f.Offset = n
	}
	return f, nil
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrFromLocationUnresolved):
		response.Error(c, http.StatusUnprocessableEntity, "FROM_LOCATION_UNRESOLVED", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Booking belongs to another agent")
	case errors.Is(err, ErrLRNumberExhausted):
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "LR_NUMBER_EXHAUSTED", "Could not assign a unique LR number, please retry")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Booking operation failed")
	}
}
