package payrun

import (
	"github.com/shopspring/decimal"
)

type MaterializePeriodRequest struct {
	StartDate    string  `json:"start_date" binding:"required"`
	EndDate      string  `json:"end_date" binding:"required"`
	WarehouseID  *string `json:"warehouse_id" binding:"omitempty,uuid"`
	ZoneID       *string `json:"zone_id" binding:"omitempty,uuid"`
	RecomputeAll bool    `json:"recompute_all"`
	Notes        *string `json:"notes" binding:"omitempty,max=500"`
}

type AddAdjustmentRequest struct {
	Type   string          `json:"type" binding:"required,oneof=BONUS DEDUCTION CORRECTION REIMBURSEMENT"`
	Reason string          `json:"reason" binding:"required,max=200"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type PayPeriodResponse struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	WarehouseID *string `json:"warehouse_id,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes,omitempty"`
	LockedAt    *string `json:"locked_at,omitempty"`
	LockedBy    *string `json:"locked_by,omitempty"`
	CreatedBy   string  `json:"created_by"`
}

type PayRunLineResponse struct {
	ID          string          `json:"id"`
	SourceType  string          `json:"source_type"`
	SourceID    string          `json:"source_id"`
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	RouteDate   *string         `json:"route_date,omitempty"`
	ZoneID      *string         `json:"zone_id,omitempty"`
}

type AdjustmentResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Reason    string          `json:"reason"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedBy string          `json:"created_by"`
}

type PayRunResponse struct {
	ID          string          `json:"id"`
	PayPeriodID string          `json:"pay_period_id"`
	DriverID    string          `json:"driver_id"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
	Adjustments decimal.Decimal `json:"adjustments"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	Status      string          `json:"status"`
	ApprovedAt  *string         `json:"approved_at,omitempty"`
	ApprovedBy  *string         `json:"approved_by,omitempty"`

	Lines             []PayRunLineResponse `json:"lines"`
	AdjustmentEntries []AdjustmentResponse `json:"adjustment_entries"`
}

// DriverRunSummary is one row of the materialization report. Failures are
// collected, never fatal for the batch.
type DriverRunSummary struct {
	DriverID    string          `json:"driver_id"`
	Status      string          `json:"status"` // computed | skipped | failed
	GrossAmount decimal.Decimal `json:"gross_amount"`
	Adjustments decimal.Decimal `json:"adjustments"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	Error       string          `json:"error,omitempty"`
}

// UnclassifiedRouteGroup reports routes excluded from computation because
// their warehouse requires a zone and the route has none, grouped by
// warehouse and day.
type UnclassifiedRouteGroup struct {
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	RouteDate     string `json:"route_date"`
	Count         int    `json:"count"`
}

type MaterializePeriodResponse struct {
	Period       PayPeriodResponse        `json:"period"`
	Drivers      []DriverRunSummary       `json:"drivers"`
	Unclassified []UnclassifiedRouteGroup `json:"unclassified_routes,omitempty"`
	Computed     int                      `json:"computed"`
	Skipped      int                      `json:"skipped"`
	Failed       int                      `json:"failed"`
}

func mapPeriodToResponse(period PayPeriod) PayPeriodResponse {
	resp := PayPeriodResponse{
		ID:        period.ID.String(),
		CompanyID: period.CompanyID.String(),
		StartDate: period.StartDate.Format("2006-01-02"),
		EndDate:   period.EndDate.Format("2006-01-02"),
		Status:    period.Status,
		Notes:     period.Notes,
		CreatedBy: period.CreatedBy.String(),
	}
	if period.WarehouseID != nil {
		v := period.WarehouseID.String()
		resp.WarehouseID = &v
	}
	if period.LockedAt != nil {
		v := period.LockedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		resp.LockedAt = &v
	}
	if period.LockedBy != nil {
		v := period.LockedBy.String()
		resp.LockedBy = &v
	}
	return resp
}

func mapRunToResponse(run PayRun) PayRunResponse {
	resp := PayRunResponse{
		ID:                run.ID.String(),
		PayPeriodID:       run.PayPeriodID.String(),
		DriverID:          run.DriverID.String(),
		GrossAmount:       run.GrossAmount,
		Adjustments:       run.Adjustments,
		NetAmount:         run.NetAmount,
		Status:            run.Status,
		Lines:             make([]PayRunLineResponse, len(run.Lines)),
		AdjustmentEntries: make([]AdjustmentResponse, len(run.AdjustmentEntries)),
	}
	if run.ApprovedAt != nil {
		v := run.ApprovedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		resp.ApprovedAt = &v
	}
	if run.ApprovedBy != nil {
		v := run.ApprovedBy.String()
		resp.ApprovedBy = &v
	}

	for i, line := range run.Lines {
		lr := PayRunLineResponse{
			ID:          line.ID.String(),
			SourceType:  line.SourceType,
			SourceID:    line.SourceID,
			Description: line.Description,
			Qty:         line.Qty,
			Rate:        line.Rate,
			Amount:      line.Amount,
		}
		if line.RouteDate != nil {
			v := line.RouteDate.Format("2006-01-02")
			lr.RouteDate = &v
		}
		if line.ZoneID != nil {
			v := line.ZoneID.String()
			lr.ZoneID = &v
		}
		resp.Lines[i] = lr
	}

	for i, adj := range run.AdjustmentEntries {
		resp.AdjustmentEntries[i] = AdjustmentResponse{
			ID:        adj.ID.String(),
			Type:      adj.Type,
			Reason:    adj.Reason,
			Amount:    adj.Amount,
			CreatedBy: adj.CreatedBy.String(),
		}
	}

	return resp
}

func mapRunsToListResponse(runs []PayRun) []PayRunResponse {
	resp := make([]PayRunResponse, len(runs))
	for i, run := range runs {
		resp[i] = mapRunToResponse(run)
	}
	return resp
}
