package payrollconfigerrors

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
	ErrInvalidWarehouseID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid warehouse id",
		http.StatusBadRequest,
	)
	ErrInvalidConfigID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll config id",
		http.StatusBadRequest,
	)
	ErrInvalidRuleID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid rule id",
		http.StatusBadRequest,
	)
	ErrInvalidPenaltyType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid penalty type",
		http.StatusBadRequest,
	)
	ErrInvalidBonusType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid bonus type",
		http.StatusBadRequest,
	)
	ErrInvalidWeightRange = apperror.New(
		apperror.CodeInvalidInput,
		"min_weight must be below max_weight",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"rule amounts cannot be negative",
		http.StatusBadRequest,
	)
	ErrConfigNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll config not found for warehouse",
		http.StatusNotFound,
	)
	ErrRuleNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll rule not found",
		http.StatusNotFound,
	)
	ErrConfigAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a payroll config already exists for this warehouse",
		http.StatusConflict,
	)
	ErrDuplicatePenaltyRule = apperror.New(
		apperror.CodeConflict,
		"a penalty rule of this type already exists for this config",
		http.StatusConflict,
	)
	ErrDuplicateBonusRule = apperror.New(
		apperror.CodeConflict,
		"a bonus rule with this type and threshold already exists for this config",
		http.StatusConflict,
	)
)
