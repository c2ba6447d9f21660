package payrun

import (
	"net/http"

	"github.com/gin-gonic/gin"

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

// Materialize runs the batch computation for a date range. The endpoint is
// idempotent: repeating the request skips drivers that already have a run.
func (h *Handler) Materialize(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")

	var req MaterializePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.MaterializePeriod(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPeriod(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetPeriod(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListPeriods(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.ListPeriods(c.Request.Context(), companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) LockPeriod(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")

	resp, err := h.service.LockPeriod(c.Request.Context(), companyID, actorID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListRunsByPeriod(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.ListRunsByPeriod(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetRun(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetRun(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ApproveRun(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")

	resp, err := h.service.ApproveRun(c.Request.Context(), companyID, actorID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AddAdjustment(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")

	var req AddAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.AddAdjustment(c.Request.Context(), companyID, actorID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ExportRunCSV(c *gin.Context) {
	companyID := c.GetString("company_id")
	runID := c.Param("id")

	data, err := h.service.ExportRunCSV(c.Request.Context(), companyID, runID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="pay-run-`+runID+`.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}
