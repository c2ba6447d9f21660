package driverrateerrors

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
	ErrInvalidDriverID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid driver id",
		http.StatusBadRequest,
	)
	ErrInvalidRateID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid rate id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"effective_from must be before or equal effective_to",
		http.StatusBadRequest,
	)
	ErrInvalidRateType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid rate type",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"rate amounts cannot be negative",
		http.StatusBadRequest,
	)
	ErrRateNotFound = apperror.New(
		apperror.CodeNotFound,
		"driver rate not found",
		http.StatusNotFound,
	)
	ErrNoRateForDate = apperror.New(
		apperror.CodeNotFound,
		"no driver rate covers the requested date; create a rate covering the period",
		http.StatusNotFound,
	)
	ErrSameDayBoundary = apperror.New(
		apperror.CodeConflict,
		"cannot start a new rate on the same day as another rate that has no room to shrink",
		http.StatusConflict,
	)
	ErrFutureRateExists = apperror.New(
		apperror.CodeConflict,
		"a future or same-day rate already exists for this driver; edit it first",
		http.StatusConflict,
	)
)
