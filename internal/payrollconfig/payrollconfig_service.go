package payrollconfig

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	payrollconfigerrors "fleetpay/internal/payrollconfig/errors"
)

//go:generate mockgen -source=payrollconfig_service.go -destination=mock/payrollconfig_service_mock.go -package=mock
type Service interface {
	CreateConfig(ctx context.Context, companyID string, req CreateConfigRequest) (ConfigResponse, error)
	UpdateConfig(ctx context.Context, companyID, id string, req UpdateConfigRequest) (ConfigResponse, error)
	GetByWarehouse(ctx context.Context, companyID, warehouseID string) (ConfigResponse, error)

	AddWeightRule(ctx context.Context, companyID, configID string, req CreateWeightRuleRequest) (ConfigResponse, error)
	AddPenaltyRule(ctx context.Context, companyID, configID string, req CreatePenaltyRuleRequest) (ConfigResponse, error)
	AddBonusRule(ctx context.Context, companyID, configID string, req CreateBonusRuleRequest) (ConfigResponse, error)
	RemoveWeightRule(ctx context.Context, companyID, configID, ruleID string) error
	RemovePenaltyRule(ctx context.Context, companyID, configID, ruleID string) error
	RemoveBonusRule(ctx context.Context, companyID, configID, ruleID string) error

	// ResolveForWarehouse is the computation-side lookup: it returns the
	// entity with all rules preloaded, or nil when the warehouse has no
	// active config (payroll then runs with every adjustment disabled).
	ResolveForWarehouse(ctx context.Context, companyID, warehouseID string) (*PayrollConfig, error)
}

type service struct {
	db   *gorm.DB
	repo Repository
}

func NewService(db *gorm.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) CreateConfig(
	ctx context.Context,
	companyID string,
	req CreateConfigRequest,
) (ConfigResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ConfigResponse{}, payrollconfigerrors.ErrInvalidCompanyID
	}
	warehouseUUID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return ConfigResponse{}, payrollconfigerrors.ErrInvalidWarehouseID
	}
	if req.DefaultPenaltyAmount.IsNegative() ||
		(req.PenaltyCapPerWeek != nil && req.PenaltyCapPerWeek.IsNegative()) {
		return ConfigResponse{}, payrollconfigerrors.ErrNegativeAmount
	}

	cfg := &PayrollConfig{
		ID:                   uuid.New(),
		CompanyID:            companyUUID,
		WarehouseID:          warehouseUUID,
		EnableWeightExtra:    req.EnableWeightExtra,
		EnablePenalties:      req.EnablePenalties,
		EnableBonuses:        req.EnableBonuses,
		DefaultPenaltyAmount: req.DefaultPenaltyAmount,
		PenaltyCapPerWeek:    req.PenaltyCapPerWeek,
		IsActive:             true,
	}
	if req.IsActive != nil {
		cfg.IsActive = *req.IsActive
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if _, err := qtx.FindByWarehouse(ctx, companyID, req.WarehouseID); err == nil {
			return payrollconfigerrors.ErrConfigAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return qtx.CreateConfig(ctx, cfg)
	})
	if err != nil {
		return ConfigResponse{}, err
	}

	return mapToResponse(*cfg), nil
}

func (s *service) UpdateConfig(
	ctx context.Context,
	companyID, id string,
	req UpdateConfigRequest,
) (ConfigResponse, error) {
	if req.DefaultPenaltyAmount.IsNegative() ||
		(req.PenaltyCapPerWeek != nil && req.PenaltyCapPerWeek.IsNegative()) {
		return ConfigResponse{}, payrollconfigerrors.ErrNegativeAmount
	}

	var updated PayrollConfig

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		cfg, err := qtx.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return payrollconfigerrors.ErrConfigNotFound
			}
			return err
		}

		cfg.EnableWeightExtra = req.EnableWeightExtra
		cfg.EnablePenalties = req.EnablePenalties
		cfg.EnableBonuses = req.EnableBonuses
		cfg.DefaultPenaltyAmount = req.DefaultPenaltyAmount
		cfg.PenaltyCapPerWeek = req.PenaltyCapPerWeek
		if req.IsActive != nil {
			cfg.IsActive = *req.IsActive
		}

		if err := qtx.SaveConfig(ctx, cfg); err != nil {
			return err
		}

		updated = *cfg
		return nil
	})
	if err != nil {
		return ConfigResponse{}, err
	}

	return mapToResponse(updated), nil
}

func (s *service) GetByWarehouse(ctx context.Context, companyID, warehouseID string) (ConfigResponse, error) {
	cfg, err := s.repo.FindByWarehouse(ctx, companyID, warehouseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConfigResponse{}, payrollconfigerrors.ErrConfigNotFound
		}
		return ConfigResponse{}, err
	}
	return mapToResponse(*cfg), nil
}

func (s *service) AddWeightRule(
	ctx context.Context,
	companyID, configID string,
	req CreateWeightRuleRequest,
) (ConfigResponse, error) {
	if req.ExtraAmount.IsNegative() {
		return ConfigResponse{}, payrollconfigerrors.ErrNegativeAmount
	}
	if req.MaxWeight != nil && !req.MinWeight.LessThan(*req.MaxWeight) {
		return ConfigResponse{}, payrollconfigerrors.ErrInvalidWeightRange
	}

	return s.withConfig(ctx, companyID, configID, func(qtx Repository, cfg *PayrollConfig) error {
		rule := &WeightRule{
			ID:          uuid.New(),
			ConfigID:    cfg.ID,
			MinWeight:   req.MinWeight,
			MaxWeight:   req.MaxWeight,
			ExtraAmount: req.ExtraAmount,
			Priority:    req.Priority,
			IsActive:    boolOrDefault(req.IsActive, true),
		}
		return qtx.CreateWeightRule(ctx, rule)
	})
}

func (s *service) AddPenaltyRule(
	ctx context.Context,
	companyID, configID string,
	req CreatePenaltyRuleRequest,
) (ConfigResponse, error) {
	if !ValidPenaltyType(req.Type) {
		return ConfigResponse{}, payrollconfigerrors.ErrInvalidPenaltyType
	}
	if req.Amount.IsNegative() {
		return ConfigResponse{}, payrollconfigerrors.ErrNegativeAmount
	}

	return s.withConfig(ctx, companyID, configID, func(qtx Repository, cfg *PayrollConfig) error {
		count, err := qtx.CountPenaltyRules(ctx, configID, req.Type)
		if err != nil {
			return err
		}
		if count > 0 {
			return payrollconfigerrors.ErrDuplicatePenaltyRule
		}

		rule := &PenaltyRule{
			ID:                    uuid.New(),
			ConfigID:              cfg.ID,
			Type:                  req.Type,
			Amount:                req.Amount,
			ApplyPerOccurrence:    req.ApplyPerOccurrence,
			MaxOccurrencesPerWeek: req.MaxOccurrencesPerWeek,
			IsActive:              boolOrDefault(req.IsActive, true),
		}
		return qtx.CreatePenaltyRule(ctx, rule)
	})
}

func (s *service) AddBonusRule(
	ctx context.Context,
	companyID, configID string,
	req CreateBonusRuleRequest,
) (ConfigResponse, error) {
	if !ValidBonusType(req.Type) {
		return ConfigResponse{}, payrollconfigerrors.ErrInvalidBonusType
	}
	if req.Amount.IsNegative() {
		return ConfigResponse{}, payrollconfigerrors.ErrNegativeAmount
	}

	return s.withConfig(ctx, companyID, configID, func(qtx Repository, cfg *PayrollConfig) error {
		var threshold *string
		if req.Threshold != nil {
			v := req.Threshold.String()
			threshold = &v
		}

		count, err := qtx.CountBonusRules(ctx, configID, req.Type, threshold)
		if err != nil {
			return err
		}
		if count > 0 {
			return payrollconfigerrors.ErrDuplicateBonusRule
		}

		rule := &BonusRule{
			ID:        uuid.New(),
			ConfigID:  cfg.ID,
			Type:      req.Type,
			Threshold: req.Threshold,
			Amount:    req.Amount,
			IsActive:  boolOrDefault(req.IsActive, true),
		}
		return qtx.CreateBonusRule(ctx, rule)
	})
}

func (s *service) RemoveWeightRule(ctx context.Context, companyID, configID, ruleID string) error {
	_, err := s.withConfig(ctx, companyID, configID, func(qtx Repository, cfg *PayrollConfig) error {
		return qtx.DeleteWeightRule(ctx, configID, ruleID)
	})
	return err
}

func (s *service) RemovePenaltyRule(ctx context.Context, companyID, configID, ruleID string) error {
	_, err := s.withConfig(ctx, companyID, configID, func(qtx Repository, cfg *PayrollConfig) error {
		return qtx.DeletePenaltyRule(ctx, configID, ruleID)
	})
	return err
}

func (s *service) RemoveBonusRule(ctx context.Context, companyID, configID, ruleID string) error {
	_, err := s.withConfig(ctx, companyID, configID, func(qtx Repository, cfg *PayrollConfig) error {
		return qtx.DeleteBonusRule(ctx, configID, ruleID)
	})
	return err
}

func (s *service) ResolveForWarehouse(ctx context.Context, companyID, warehouseID string) (*PayrollConfig, error) {
	cfg, err := s.repo.FindByWarehouse(ctx, companyID, warehouseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !cfg.IsActive {
		return nil, nil
	}
	return cfg, nil
}

// withConfig loads the config inside a transaction, runs fn, and returns the
// reloaded config so rule mutations always answer with the current rule set.
func (s *service) withConfig(
	ctx context.Context,
	companyID, configID string,
	fn func(qtx Repository, cfg *PayrollConfig) error,
) (ConfigResponse, error) {
	if _, err := uuid.Parse(configID); err != nil {
		return ConfigResponse{}, payrollconfigerrors.ErrInvalidConfigID
	}

	var reloaded PayrollConfig

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		cfg, err := qtx.FindByIDAndCompany(ctx, companyID, configID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return payrollconfigerrors.ErrConfigNotFound
			}
			return err
		}

		if err := fn(qtx, cfg); err != nil {
			return err
		}

		after, err := qtx.FindByIDAndCompany(ctx, companyID, configID)
		if err != nil {
			return err
		}
		reloaded = *after
		return nil
	})
	if err != nil {
		return ConfigResponse{}, err
	}

	return mapToResponse(reloaded), nil
}

func boolOrDefault(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}
