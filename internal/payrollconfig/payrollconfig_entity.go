package payrollconfig

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Penalty causes. Amounts are stored as positive magnitudes; the sign is
// applied at computation time.
const (
	PenaltyTypeFailedStop   = "FAILED_STOP"
	PenaltyTypeLateStart    = "LATE_START"
	PenaltyTypeMissedRoute  = "MISSED_ROUTE"
	PenaltyTypeDamagedGoods = "DAMAGED_GOODS"
)

const (
	BonusTypeRoutesCompleted = "ROUTES_COMPLETED"
	BonusTypeStopsDelivered  = "STOPS_DELIVERED"
	BonusTypeZeroFailedStops = "ZERO_FAILED_STOPS"
	BonusTypeNightRoutes     = "NIGHT_ROUTES"
)

// PayrollConfig is the per-warehouse switchboard for optional pay
// adjustments. Each toggle suppresses its evaluator entirely, independent of
// individual rule IsActive flags.
type PayrollConfig struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_config_warehouse"`

	EnableWeightExtra bool `gorm:"not null;default:false"`
	EnablePenalties   bool `gorm:"not null;default:false"`
	EnableBonuses     bool `gorm:"not null;default:false"`

	DefaultPenaltyAmount decimal.Decimal  `gorm:"type:numeric(12,2);not null;default:0"`
	PenaltyCapPerWeek    *decimal.Decimal `gorm:"type:numeric(12,2)"`
	IsActive             bool             `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time

	WeightRules  []WeightRule  `gorm:"foreignKey:ConfigID"`
	PenaltyRules []PenaltyRule `gorm:"foreignKey:ConfigID"`
	BonusRules   []BonusRule   `gorm:"foreignKey:ConfigID"`
}

// WeightRule pays ExtraAmount for a package whose weight falls in
// [MinWeight, MaxWeight). Rules are evaluated in priority order, lower
// first, first match wins.
type WeightRule struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConfigID uuid.UUID `gorm:"type:uuid;not null;index"`

	MinWeight   decimal.Decimal  `gorm:"type:numeric(8,2);not null"`
	MaxWeight   *decimal.Decimal `gorm:"type:numeric(8,2)"` // nil = open-ended
	ExtraAmount decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	Priority    int              `gorm:"not null;default:0"`
	IsActive    bool             `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PenaltyRule: at most one per (ConfigID, Type).
type PenaltyRule struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConfigID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_penalty_config_type"`

	Type                  string          `gorm:"type:varchar(30);not null;uniqueIndex:uq_penalty_config_type"`
	Amount                decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ApplyPerOccurrence    bool            `gorm:"not null;default:true"`
	MaxOccurrencesPerWeek *int
	IsActive              bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BonusRule: at most one per (ConfigID, Type, Threshold).
type BonusRule struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConfigID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_bonus_config_type_threshold"`

	Type      string           `gorm:"type:varchar(30);not null;uniqueIndex:uq_bonus_config_type_threshold"`
	Threshold *decimal.Decimal `gorm:"type:numeric(12,2);uniqueIndex:uq_bonus_config_type_threshold"`
	Amount    decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	IsActive  bool             `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func ValidPenaltyType(t string) bool {
	switch t {
	case PenaltyTypeFailedStop, PenaltyTypeLateStart, PenaltyTypeMissedRoute, PenaltyTypeDamagedGoods:
		return true
	}
	return false
}

func ValidBonusType(t string) bool {
	switch t {
	case BonusTypeRoutesCompleted, BonusTypeStopsDelivered, BonusTypeZeroFailedStops, BonusTypeNightRoutes:
		return true
	}
	return false
}
