package payrunerrors

import (
	"net/http"

	"fleetpay/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidWarehouseID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid warehouse id",
		http.StatusBadRequest,
	)
	ErrInvalidZoneID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid zone id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid pay period id",
		http.StatusBadRequest,
	)
	ErrInvalidRunID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid pay run id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrZeroAdjustment = apperror.New(
		apperror.CodeInvalidInput,
		"adjustment amount cannot be zero",
		http.StatusBadRequest,
	)
	ErrPeriodNotFound = apperror.New(
		apperror.CodeNotFound,
		"pay period not found",
		http.StatusNotFound,
	)
	ErrRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"pay run not found",
		http.StatusNotFound,
	)
	ErrPeriodLocked = apperror.New(
		apperror.CodeConflict,
		"pay period is locked; no further computation is allowed",
		http.StatusConflict,
	)
	ErrPeriodNotOpen = apperror.New(
		apperror.CodeInvalidState,
		"pay period can only be locked while status is OPEN",
		http.StatusConflict,
	)
	ErrRunAlreadyApproved = apperror.New(
		apperror.CodeInvalidState,
		"pay run is already approved",
		http.StatusConflict,
	)
	ErrRunApprovedNoAdjustment = apperror.New(
		apperror.CodeInvalidState,
		"adjustments cannot be added to an approved pay run",
		http.StatusConflict,
	)
)
