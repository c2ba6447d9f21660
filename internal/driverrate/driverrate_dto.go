package driverrate

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateDriverRateRequest struct {
	DriverID               string           `json:"driver_id" binding:"required,uuid"`
	RateType               string           `json:"rate_type" binding:"required,oneof=PER_ROUTE PER_STOP PER_PACKAGE PER_MILE HOURLY MIXED"`
	BaseAmount             decimal.Decimal  `json:"base_amount"`
	MinPayPerRoute         *decimal.Decimal `json:"min_pay_per_route"`
	OverStopBonusThreshold *int             `json:"over_stop_bonus_threshold"`
	OverStopBonusPerStop   *decimal.Decimal `json:"over_stop_bonus_per_stop"`
	FailedStopPenalty      *decimal.Decimal `json:"failed_stop_penalty"`
	RescueStopRate         *decimal.Decimal `json:"rescue_stop_rate"`
	NightDeliveryBonus     *decimal.Decimal `json:"night_delivery_bonus"`
	EffectiveFrom          string           `json:"effective_from" binding:"required"`
	EffectiveTo            *string          `json:"effective_to"`
}

type UpdateDriverRateRequest struct {
	RateType               string           `json:"rate_type" binding:"required,oneof=PER_ROUTE PER_STOP PER_PACKAGE PER_MILE HOURLY MIXED"`
	BaseAmount             decimal.Decimal  `json:"base_amount"`
	MinPayPerRoute         *decimal.Decimal `json:"min_pay_per_route"`
	OverStopBonusThreshold *int             `json:"over_stop_bonus_threshold"`
	OverStopBonusPerStop   *decimal.Decimal `json:"over_stop_bonus_per_stop"`
	FailedStopPenalty      *decimal.Decimal `json:"failed_stop_penalty"`
	RescueStopRate         *decimal.Decimal `json:"rescue_stop_rate"`
	NightDeliveryBonus     *decimal.Decimal `json:"night_delivery_bonus"`
	EffectiveFrom          string           `json:"effective_from" binding:"required"`
	EffectiveTo            *string          `json:"effective_to"`
}

type DriverRateResponse struct {
	ID                     string           `json:"id"`
	CompanyID              string           `json:"company_id"`
	DriverID               string           `json:"driver_id"`
	RateType               string           `json:"rate_type"`
	BaseAmount             decimal.Decimal  `json:"base_amount"`
	MinPayPerRoute         *decimal.Decimal `json:"min_pay_per_route,omitempty"`
	OverStopBonusThreshold *int             `json:"over_stop_bonus_threshold,omitempty"`
	OverStopBonusPerStop   *decimal.Decimal `json:"over_stop_bonus_per_stop,omitempty"`
	FailedStopPenalty      *decimal.Decimal `json:"failed_stop_penalty,omitempty"`
	RescueStopRate         *decimal.Decimal `json:"rescue_stop_rate,omitempty"`
	NightDeliveryBonus     *decimal.Decimal `json:"night_delivery_bonus,omitempty"`
	EffectiveFrom          string           `json:"effective_from"`
	EffectiveTo            *string          `json:"effective_to,omitempty"`
	CreatedBy              string           `json:"created_by"`
}

func mapToResponse(rate DriverRate) DriverRateResponse {
	resp := DriverRateResponse{
		ID:                     rate.ID.String(),
		CompanyID:              rate.CompanyID.String(),
		DriverID:               rate.DriverID.String(),
		RateType:               rate.RateType,
		BaseAmount:             rate.BaseAmount,
		MinPayPerRoute:         rate.MinPayPerRoute,
		OverStopBonusThreshold: rate.OverStopBonusThreshold,
		OverStopBonusPerStop:   rate.OverStopBonusPerStop,
		FailedStopPenalty:      rate.FailedStopPenalty,
		RescueStopRate:         rate.RescueStopRate,
		NightDeliveryBonus:     rate.NightDeliveryBonus,
		EffectiveFrom:          rate.EffectiveFrom.Format("2006-01-02"),
		CreatedBy:              rate.CreatedBy.String(),
	}

	if rate.EffectiveTo != nil {
		v := rate.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &v
	}

	return resp
}

func mapToListResponse(rates []DriverRate) []DriverRateResponse {
	resp := make([]DriverRateResponse, len(rates))
	for i, rate := range rates {
		resp[i] = mapToResponse(rate)
	}
	return resp
}

func (r DriverRateResponse) EffectiveFromDate() (time.Time, error) {
	return time.Parse("2006-01-02", r.EffectiveFrom)
}
