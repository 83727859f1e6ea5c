package customer

import (
	"errors"
	"net/http"
	"strconv"

	"lrbook/internal/domain"
	"lrbook/internal/pkg/response"
	"lrbook/internal/pkg/validator"
	"lrbook/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected, admin *gin.RouterGroup) {
	protected.GET("/customers", h.List)
	protected.GET("/customers/:id", h.Get)
	protected.POST("/customers", h.Create)
	admin.PUT("/customers/:id", h.Update)
	admin.DELETE("/customers/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	customers, err := h.service.List(c.Request.Context(), c.Query("search"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, customers)
}

func (h *Handler) Get(c *gin.Context) {
	cust, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, cust)
}

// Create registers a customer.
// @Summary		Create customer
// @Tags		Master data
// @Param		request	body	CustomerRequest	true	"customer"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}	"CUSTOMER_EXISTS or VALIDATION_ERROR"
// @Router		/customers [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid customer fields", errs)
		return
	}
	cust, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cust)
}

func (h *Handler) Update(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid customer fields", errs)
		return
	}
	cust, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, cust)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrCustomerExists):
		response.Error(c, http.StatusBadRequest, "CUSTOMER_EXISTS", "Customer with this phone or GST number already exists")
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Customer not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Customer operation failed")
	}
}
