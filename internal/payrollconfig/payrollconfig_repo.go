package payrollconfig

import (
	"context"

	"gorm.io/gorm"

	"fleetpay/internal/tenant"
)

//go:generate mockgen -source=payrollconfig_repo.go -destination=mock/payrollconfig_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateConfig(ctx context.Context, cfg *PayrollConfig) error
	SaveConfig(ctx context.Context, cfg *PayrollConfig) error
	FindByWarehouse(ctx context.Context, companyID, warehouseID string) (*PayrollConfig, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollConfig, error)

	CreateWeightRule(ctx context.Context, rule *WeightRule) error
	CreatePenaltyRule(ctx context.Context, rule *PenaltyRule) error
	CreateBonusRule(ctx context.Context, rule *BonusRule) error
	DeleteWeightRule(ctx context.Context, configID, ruleID string) error
	DeletePenaltyRule(ctx context.Context, configID, ruleID string) error
	DeleteBonusRule(ctx context.Context, configID, ruleID string) error

	CountPenaltyRules(ctx context.Context, configID, penaltyType string) (int64, error)
	CountBonusRules(ctx context.Context, configID, bonusType string, threshold *string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateConfig(ctx context.Context, cfg *PayrollConfig) error {
	return r.db.WithContext(ctx).Create(cfg).Error
}

func (r *repository) SaveConfig(ctx context.Context, cfg *PayrollConfig) error {
	return r.db.WithContext(ctx).Omit("WeightRules", "PenaltyRules", "BonusRules").Save(cfg).Error
}

func (r *repository) FindByWarehouse(ctx context.Context, companyID, warehouseID string) (*PayrollConfig, error) {
	var cfg PayrollConfig
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("WeightRules").
		Preload("PenaltyRules").
		Preload("BonusRules").
		First(&cfg, "warehouse_id = ?", warehouseID).Error
	return &cfg, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollConfig, error) {
	var cfg PayrollConfig
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("WeightRules").
		Preload("PenaltyRules").
		Preload("BonusRules").
		First(&cfg, "id = ?", id).Error
	return &cfg, err
}

func (r *repository) CreateWeightRule(ctx context.Context, rule *WeightRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) CreatePenaltyRule(ctx context.Context, rule *PenaltyRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) CreateBonusRule(ctx context.Context, rule *BonusRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) DeleteWeightRule(ctx context.Context, configID, ruleID string) error {
	return r.db.WithContext(ctx).
		Where("config_id = ?", configID).
		Delete(&WeightRule{}, "id = ?", ruleID).Error
}

func (r *repository) DeletePenaltyRule(ctx context.Context, configID, ruleID string) error {
	return r.db.WithContext(ctx).
		Where("config_id = ?", configID).
		Delete(&PenaltyRule{}, "id = ?", ruleID).Error
}

func (r *repository) DeleteBonusRule(ctx context.Context, configID, ruleID string) error {
	return r.db.WithContext(ctx).
		Where("config_id = ?", configID).
		Delete(&BonusRule{}, "id = ?", ruleID).Error
}

func (r *repository) CountPenaltyRules(ctx context.Context, configID, penaltyType string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PenaltyRule{}).
		Where("config_id = ? AND type = ?", configID, penaltyType).
		Count(&count).Error
	return count, err
}

func (r *repository) CountBonusRules(ctx context.Context, configID, bonusType string, threshold *string) (int64, error) {
	db := r.db.WithContext(ctx).
		Model(&BonusRule{}).
		Where("config_id = ? AND type = ?", configID, bonusType)

	if threshold == nil {
		db = db.Where("threshold IS NULL")
	} else {
		db = db.Where("threshold = ?", *threshold)
	}

	var count int64
	err := db.Count(&count).Error
	return count, err
}
