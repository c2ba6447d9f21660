package payrun

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PeriodStatusOpen   = "OPEN"
	PeriodStatusLocked = "LOCKED"

	RunStatusDraft    = "DRAFT"
	RunStatusApproved = "APPROVED"
)

// Pay line source types.
const (
	SourceTypeRoute   = "route"
	SourceTypeBonus   = "bonus"
	SourceTypePenalty = "penalty"
	SourceTypeWeight  = "weight"
	SourceTypeManual  = "manual"
)

// PayPeriod is the administrative date range payroll is computed over.
// Unique per (company, warehouse, start, end); created on first computation
// request for the range. Postgres unique indexes treat NULLs as distinct, so
// company-wide periods (NULL warehouse) are covered by a partial index of
// their own. OPEN -> LOCKED is the only transition and LOCKED is terminal:
// a locked period rejects all further computation.
type PayPeriod struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_period_scope;uniqueIndex:uq_period_company_range,where:warehouse_id IS NULL"`
	WarehouseID *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_period_scope"`

	StartDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_period_scope;uniqueIndex:uq_period_company_range"`
	EndDate   time.Time `gorm:"type:date;not null;uniqueIndex:uq_period_scope;uniqueIndex:uq_period_company_range"`

	Status    string    `gorm:"type:varchar(20);not null;default:'OPEN'"`
	Notes     *string   `gorm:"type:text"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`

	LockedAt *time.Time
	LockedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PayRun is one driver's computed payroll outcome within one period. The
// (PayPeriodID, DriverID) uniqueness constraint is the idempotency boundary
// for batch recomputation.
type PayRun struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	PayPeriodID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_run_period_driver"`
	DriverID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_run_period_driver"`

	GrossAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Adjustments decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	NetAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	Status       string    `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	CalculatedAt time.Time `gorm:"not null"`
	CalculatedBy uuid.UUID `gorm:"type:uuid;not null"`

	ApprovedAt *time.Time
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`

	Lines             []PayRunLine `gorm:"foreignKey:PayRunID;constraint:OnDelete:CASCADE"`
	AdjustmentEntries []Adjustment `gorm:"foreignKey:PayRunID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PayRunLine is one itemized contribution to a run's gross amount. Amount is
// derived as Qty x Rate except where a floor or cap replaced the product.
type PayRunLine struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PayRunID uuid.UUID `gorm:"type:uuid;not null;index"`

	SourceType  string `gorm:"type:varchar(20);not null"`
	SourceID    string `gorm:"type:varchar(60);not null"`
	Description string `gorm:"type:varchar(200);not null"`

	Qty    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	Rate   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Amount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	RouteDate *time.Time `gorm:"type:date"`
	ZoneID    *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
}

// Adjustment is an operator-entered correction layered on top of the
// computed gross. Recomputation never touches adjustments.
type Adjustment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PayRunID uuid.UUID `gorm:"type:uuid;not null;index"`

	Type   string          `gorm:"type:varchar(30);not null"`
	Reason string          `gorm:"type:varchar(200);not null"`
	Amount decimal.Decimal `gorm:"type:numeric(12,2);not null"` // signed

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
}
