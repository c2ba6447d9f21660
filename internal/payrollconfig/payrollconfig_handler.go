package payrollconfig

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

func (h *Handler) CreateConfig(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CreateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CreateConfig(c.Request.Context(), companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateConfig(c.Request.Context(), companyID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByWarehouse(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetByWarehouse(c.Request.Context(), companyID, c.Param("warehouseId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AddWeightRule(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CreateWeightRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.AddWeightRule(c.Request.Context(), companyID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) AddPenaltyRule(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CreatePenaltyRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.AddPenaltyRule(c.Request.Context(), companyID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) AddBonusRule(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CreateBonusRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.AddBonusRule(c.Request.Context(), companyID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) RemoveWeightRule(c *gin.Context) {
	companyID := c.GetString("company_id")

	if err := h.service.RemoveWeightRule(c.Request.Context(), companyID, c.Param("id"), c.Param("ruleId")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) RemovePenaltyRule(c *gin.Context) {
	companyID := c.GetString("company_id")

	if err := h.service.RemovePenaltyRule(c.Request.Context(), companyID, c.Param("id"), c.Param("ruleId")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) RemoveBonusRule(c *gin.Context) {
	companyID := c.GetString("company_id")

	if err := h.service.RemoveBonusRule(c.Request.Context(), companyID, c.Param("id"), c.Param("ruleId")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
