package driverrate

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RateTypePerRoute   = "PER_ROUTE"
	RateTypePerStop    = "PER_STOP"
	RateTypePerPackage = "PER_PACKAGE"
	RateTypePerMile    = "PER_MILE"
	RateTypeHourly     = "HOURLY"
	RateTypeMixed      = "MIXED"
)

// DriverRate is one version of a driver's compensation formula. For a given
// driver the stored [EffectiveFrom, EffectiveTo] intervals never overlap:
// every calendar day has at most one applicable rate. Superseded versions are
// truncated, never deleted.
type DriverRate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	DriverID  uuid.UUID `gorm:"type:uuid;not null;index:idx_rate_driver_effective"`
	RateType  string    `gorm:"type:varchar(20);not null"`

	BaseAmount             decimal.Decimal  `gorm:"type:numeric(12,2);not null;default:0"`
	MinPayPerRoute         *decimal.Decimal `gorm:"type:numeric(12,2)"`
	OverStopBonusThreshold *int
	OverStopBonusPerStop   *decimal.Decimal `gorm:"type:numeric(12,2)"`
	FailedStopPenalty      *decimal.Decimal `gorm:"type:numeric(12,2)"`
	RescueStopRate         *decimal.Decimal `gorm:"type:numeric(12,2)"`
	NightDeliveryBonus     *decimal.Decimal `gorm:"type:numeric(12,2)"`

	EffectiveFrom time.Time  `gorm:"type:date;not null;index:idx_rate_driver_effective"`
	EffectiveTo   *time.Time `gorm:"type:date"` // nil means open-ended ("current")

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func ValidRateType(t string) bool {
	switch t {
	case RateTypePerRoute, RateTypePerStop, RateTypePerPackage,
		RateTypePerMile, RateTypeHourly, RateTypeMixed:
		return true
	}
	return false
}
