package catalog

import (
	"errors"
	"net/http"

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

// RegisterRoutes mounts the read routes on protected and the writes on admin.
func (h *Handler) RegisterRoutes(protected, admin *gin.RouterGroup) {
	protected.GET("/cities", h.ListCities)
	admin.POST("/cities", h.CreateCity)
	admin.PUT("/cities/:id", h.UpdateCity)
	admin.DELETE("/cities/:id", h.DeleteCity)

	protected.GET("/locations", h.ListLocations)
	protected.GET("/locations/:id", h.GetLocation)
	admin.POST("/locations", h.CreateLocation)
	admin.PUT("/locations/:id", h.UpdateLocation)
	admin.DELETE("/locations/:id", h.DeleteLocation)
}

func (h *Handler) ListCities(c *gin.Context) {
	cities, err := h.service.ListCities(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, cities)
}

func (h *Handler) CreateCity(c *gin.Context) {
	var req CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Code must be exactly 3 letters", errs)
		return
	}
	city, err := h.service.CreateCity(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, city)
}

func (h *Handler) UpdateCity(c *gin.Context) {
	var req CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Code must be exactly 3 letters", errs)
		return
	}
	city, err := h.service.UpdateCity(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, city)
}

func (h *Handler) DeleteCity(c *gin.Context) {
	if err := h.service.DeleteCity(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

// ListLocations searches locations by name or code.
// @Summary		List locations
// @Tags		Master data
// @Param		search	query	string	false	"name or code substring"
// @Param		status	query	string	false	"active | inactive"
// @Param		city_id	query	string	false	"city id"
// @Router		/locations [GET]
func (h *Handler) ListLocations(c *gin.Context) {
	locations, err := h.service.ListLocations(c.Request.Context(), domain.LocationFilter{
		Search: c.Query("search"),
		Status: domain.LocationStatus(c.Query("status")),
		CityID: c.Query("city_id"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, locations)
}

func (h *Handler) GetLocation(c *gin.Context) {
	loc, err := h.service.GetLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, loc)
}

func (h *Handler) CreateLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Code must be exactly 3 letters", errs)
		return
	}
	loc, err := h.service.CreateLocation(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, loc)
}

func (h *Handler) UpdateLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Code must be exactly 3 letters", errs)
		return
	}
	loc, err := h.service.UpdateLocation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, loc)
}

func (h *Handler) DeleteLocation(c *gin.Context) {
	if err := h.service.DeleteLocation(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrCityNotFound):
		response.Error(c, http.StatusBadRequest, "CITY_NOT_FOUND", "Referenced city does not exist")
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Record not found")
	case errors.Is(err, ErrCodeExists):
		response.Error(c, http.StatusConflict, "CODE_EXISTS", "Code is already in use")
	case errors.Is(err, ErrCityInUse):
		response.Error(c, http.StatusConflict, "CITY_IN_USE", "City still has locations")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Master data operation failed")
	}
}
