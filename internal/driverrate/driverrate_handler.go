package driverrate

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	driverrateerrors "fleetpay/internal/driverrate/errors"
	"fleetpay/internal/shared/apperror"
	"fleetpay/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")

	var req CreateDriverRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	id := c.Param("id")

	var req UpdateDriverRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), companyID, actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetByID(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListByDriver(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.ListByDriver(c.Request.Context(), companyID, c.Param("driverId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// ResolveAt answers "which rate applies to this driver on this day" for
// operator tooling; computation goes through Service.Resolve directly.
func (h *Handler) ResolveAt(c *gin.Context) {
	companyID := c.GetString("company_id")
	driverID := c.Param("driverId")

	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		h.writeServiceError(c, driverrateerrors.ErrInvalidDateFormat)
		return
	}

	rate, err := h.service.Resolve(c.Request.Context(), companyID, driverID, day)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToResponse(*rate), nil)
}
