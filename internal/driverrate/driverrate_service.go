package driverrate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	driverrateerrors "fleetpay/internal/driverrate/errors"
)

//go:generate mockgen -source=driverrate_service.go -destination=mock/driverrate_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateDriverRateRequest) (DriverRateResponse, error)
	Update(ctx context.Context, companyID, actorID, id string, req UpdateDriverRateRequest) (DriverRateResponse, error)
	GetByID(ctx context.Context, companyID, id string) (DriverRateResponse, error)
	ListByDriver(ctx context.Context, companyID, driverID string) ([]DriverRateResponse, error)

	// Resolve returns the single rate in effect on the given day. Absence is
	// a hard failure: computation never assumes a default rate.
	Resolve(ctx context.Context, companyID, driverID string, day time.Time) (*DriverRate, error)
}

type service struct {
	db   *gorm.DB
	repo Repository
}

func NewService(db *gorm.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreateDriverRateRequest,
) (DriverRateResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return DriverRateResponse{}, driverrateerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return DriverRateResponse{}, driverrateerrors.ErrInvalidActorID
	}
	driverUUID, err := uuid.Parse(req.DriverID)
	if err != nil {
		return DriverRateResponse{}, driverrateerrors.ErrInvalidDriverID
	}

	candidate, err := parseInterval(req.EffectiveFrom, req.EffectiveTo)
	if err != nil {
		return DriverRateResponse{}, err
	}
	if err := validateTerms(req.BaseAmount, req.MinPayPerRoute, req.OverStopBonusPerStop,
		req.FailedStopPenalty, req.RescueStopRate, req.NightDeliveryBonus); err != nil {
		return DriverRateResponse{}, err
	}

	rate := &DriverRate{
		ID:                     uuid.New(),
		CompanyID:              companyUUID,
		DriverID:               driverUUID,
		RateType:               req.RateType,
		BaseAmount:             req.BaseAmount,
		MinPayPerRoute:         req.MinPayPerRoute,
		OverStopBonusThreshold: req.OverStopBonusThreshold,
		OverStopBonusPerStop:   req.OverStopBonusPerStop,
		FailedStopPenalty:      req.FailedStopPenalty,
		RescueStopRate:         req.RescueStopRate,
		NightDeliveryBonus:     req.NightDeliveryBonus,
		EffectiveFrom:          candidate.From,
		CreatedBy:              actorUUID,
	}
	if !candidate.OpenEnded() {
		to := candidate.To
		rate.EffectiveTo = &to
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if err := qtx.LockDriverTimeline(ctx, req.DriverID); err != nil {
			return err
		}

		others, err := qtx.FindOverlapping(ctx, companyID, req.DriverID, candidate.From, candidate.To, nil)
		if err != nil {
			return err
		}

		plan, err := PlanTimeline(candidate, others)
		if err != nil {
			return err
		}

		if err := applyTruncations(ctx, qtx, others, plan); err != nil {
			return err
		}

		return qtx.Create(ctx, rate)
	})
	if err != nil {
		return DriverRateResponse{}, err
	}

	return mapToResponse(*rate), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, actorID, id string,
	req UpdateDriverRateRequest,
) (DriverRateResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return DriverRateResponse{}, driverrateerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return DriverRateResponse{}, driverrateerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return DriverRateResponse{}, driverrateerrors.ErrInvalidRateID
	}

	candidate, err := parseInterval(req.EffectiveFrom, req.EffectiveTo)
	if err != nil {
		return DriverRateResponse{}, err
	}
	if err := validateTerms(req.BaseAmount, req.MinPayPerRoute, req.OverStopBonusPerStop,
		req.FailedStopPenalty, req.RescueStopRate, req.NightDeliveryBonus); err != nil {
		return DriverRateResponse{}, err
	}

	var updated DriverRate

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		target, err := qtx.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return driverrateerrors.ErrRateNotFound
			}
			return err
		}

		if err := qtx.LockDriverTimeline(ctx, target.DriverID.String()); err != nil {
			return err
		}

		others, err := qtx.FindOverlapping(
			ctx, companyID, target.DriverID.String(),
			candidate.From, candidate.To, &id,
		)
		if err != nil {
			return err
		}

		plan, err := PlanTimeline(candidate, others)
		if err != nil {
			return err
		}

		if err := applyTruncations(ctx, qtx, others, plan); err != nil {
			return err
		}

		target.RateType = req.RateType
		target.BaseAmount = req.BaseAmount
		target.MinPayPerRoute = req.MinPayPerRoute
		target.OverStopBonusThreshold = req.OverStopBonusThreshold
		target.OverStopBonusPerStop = req.OverStopBonusPerStop
		target.FailedStopPenalty = req.FailedStopPenalty
		target.RescueStopRate = req.RescueStopRate
		target.NightDeliveryBonus = req.NightDeliveryBonus
		target.EffectiveFrom = candidate.From
		target.EffectiveTo = nil
		if !candidate.OpenEnded() {
			to := candidate.To
			target.EffectiveTo = &to
		}

		if err := qtx.Save(ctx, target); err != nil {
			return err
		}

		updated = *target
		return nil
	})
	if err != nil {
		return DriverRateResponse{}, err
	}

	return mapToResponse(updated), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (DriverRateResponse, error) {
	rate, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DriverRateResponse{}, driverrateerrors.ErrRateNotFound
		}
		return DriverRateResponse{}, err
	}
	return mapToResponse(*rate), nil
}

func (s *service) ListByDriver(ctx context.Context, companyID, driverID string) ([]DriverRateResponse, error) {
	if _, err := uuid.Parse(driverID); err != nil {
		return nil, driverrateerrors.ErrInvalidDriverID
	}
	rates, err := s.repo.FindAllByDriver(ctx, companyID, driverID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rates), nil
}

func (s *service) Resolve(ctx context.Context, companyID, driverID string, day time.Time) (*DriverRate, error) {
	rate, err := s.repo.ResolveAt(ctx, companyID, driverID, Day(day))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, driverrateerrors.ErrNoRateForDate.WithDetail(
				fmt.Sprintf("driver %s on %s", driverID, Day(day).Format("2006-01-02")),
			)
		}
		return nil, err
	}
	return rate, nil
}

// applyTruncations writes the planned end dates back. The plan only ever
// references rates fetched in this transaction.
func applyTruncations(ctx context.Context, repo Repository, others []DriverRate, plan []Truncation) error {
	byID := make(map[uuid.UUID]*DriverRate, len(others))
	for i := range others {
		byID[others[i].ID] = &others[i]
	}

	for _, t := range plan {
		rate, ok := byID[t.RateID]
		if !ok {
			return fmt.Errorf("truncation references unknown rate %s", t.RateID)
		}
		newEnd := t.NewEnd
		rate.EffectiveTo = &newEnd
		if err := repo.Save(ctx, rate); err != nil {
			return err
		}
	}

	return nil
}

func parseInterval(from string, to *string) (Interval, error) {
	fromDay, err := time.Parse("2006-01-02", from)
	if err != nil {
		return Interval{}, driverrateerrors.ErrInvalidDateFormat
	}

	var toPtr *time.Time
	if to != nil && *to != "" {
		toDay, err := time.Parse("2006-01-02", *to)
		if err != nil {
			return Interval{}, driverrateerrors.ErrInvalidDateFormat
		}
		if toDay.Before(fromDay) {
			return Interval{}, driverrateerrors.ErrInvalidDateRange
		}
		toPtr = &toDay
	}

	return NewInterval(fromDay, toPtr), nil
}

func validateTerms(base decimal.Decimal, optional ...*decimal.Decimal) error {
	if base.IsNegative() {
		return driverrateerrors.ErrNegativeAmount
	}
	for _, v := range optional {
		if v != nil && v.IsNegative() {
			return driverrateerrors.ErrNegativeAmount
		}
	}
	return nil
}
